package model

// DefaultCategory is used for transactions and sessions without a category.
const DefaultCategory = "Other"

// Transaction is a signed money movement; negative amounts are expenses.
type Transaction struct {
	Date Date `json:"date"`
	Base
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Source      string  `json:"source,omitempty"`
	Amount      float64 `json:"amount"`
}

// Expense reports whether the transaction spends money.
func (t Transaction) Expense() bool { return t.Amount < 0 }

// Budget maps a spending category to its monthly ceiling.
type Budget map[string]float64

// Total sums every category ceiling.
func (b Budget) Total() float64 {
	var total float64
	for _, v := range b {
		total += v
	}
	return total
}

// FinancialAid is a scholarship, loan, grant or similar support.
type FinancialAid struct {
	Deadline Date `json:"deadline"`
	Base
	Type     string  `json:"type" validate:"required,notblank"`
	Name     string  `json:"name" validate:"required,notblank"`
	Provider string  `json:"provider,omitempty"`
	Status   string  `json:"status,omitempty"`
	Amount   float64 `json:"amount" validate:"gte=0"`
}

// FeePayment is a tuition or other institutional fee.
type FeePayment struct {
	DueDate Date `json:"due_date"`
	PaidOn  Date `json:"paid_on"`
	Base
	Description string  `json:"description" validate:"required,notblank"`
	Status      string  `json:"status,omitempty"`
	Amount      float64 `json:"amount" validate:"gte=0"`
}

// FinancialGoal is a savings target.
type FinancialGoal struct {
	TargetDate     Date `json:"target_date"`
	CompletionDate Date `json:"completion_date"`
	Base
	Name          string     `json:"name" validate:"required,notblank"`
	Status        GoalStatus `json:"status"`
	TargetAmount  float64    `json:"target_amount" validate:"gt=0"`
	CurrentAmount float64    `json:"current_amount" validate:"gte=0"`
}
