package aggregate

import (
	"math"
	"time"

	"github.com/Veraticus/harmony/internal/model"
)

// MonthBounds returns the first instant of now's calendar month and of the
// following month, in UTC.
func MonthBounds(now time.Time) (start, end time.Time) {
	y, m, _ := now.Date()
	start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MonthlySpending sums the absolute value of expenses dated in now's calendar
// month, grouped by category.
func MonthlySpending(txns []model.Transaction, now time.Time) map[string]float64 {
	start, end := MonthBounds(now)
	return spendingBetween(txns, start, end)
}

func spendingBetween(txns []model.Transaction, start, end time.Time) map[string]float64 {
	expenses := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Expense() && t.Date.Within(start, end) {
			expenses = append(expenses, t)
		}
	}
	return AsMap(GroupSum(expenses,
		func(t model.Transaction) string { return t.Category },
		func(t model.Transaction) float64 { return math.Abs(t.Amount) },
	))
}

// BudgetAdherence scores how much of the total budget remains unspent, as a
// percentage clamped to [0, 100]. An empty or zero budget scores 0.
func BudgetAdherence(budget model.Budget, spending map[string]float64) float64 {
	total := budget.Total()
	if total <= 0 {
		return 0
	}
	var spent float64
	for _, v := range spending {
		spent += v
	}
	return clamp((1-spent/total)*100, 0, 100)
}

// OverBudget describes the category furthest over its ceiling.
type OverBudget struct {
	Category string
	Budget   float64
	Spent    float64
	// Percent is how far spending exceeds the ceiling, e.g. 60 for 160% of budget.
	Percent float64
}

// WorstOverBudget returns the category with the largest relative overspend.
func WorstOverBudget(budget model.Budget, spending map[string]float64) (OverBudget, bool) {
	var worst OverBudget
	found := false
	for category, limit := range budget {
		spent := spending[category]
		if limit <= 0 || spent <= limit {
			continue
		}
		pct := (spent - limit) / limit * 100
		if !found || pct > worst.Percent || (pct == worst.Percent && category < worst.Category) {
			worst = OverBudget{Category: category, Budget: limit, Spent: spent, Percent: pct}
			found = true
		}
	}
	return worst, found
}

// FinancialSummary is the headline view of a student's money.
type FinancialSummary struct {
	ExpensesByCategory []CategoryTotal `json:"expenses_by_category"`
	Balance            float64         `json:"balance"`
	MonthIncome        float64         `json:"month_income"`
	MonthExpenses      float64         `json:"month_expenses"`
	PreviousExpenses   float64         `json:"previous_month_expenses"`
	// ExpenseTrend is the percentage change in expenses from the previous
	// month; 0 when the previous month had none.
	ExpenseTrend    float64 `json:"expense_trend"`
	BudgetAdherence float64 `json:"budget_adherence"`
}

// Summarize builds a FinancialSummary for now's calendar month.
func Summarize(txns []model.Transaction, budget model.Budget, now time.Time) FinancialSummary {
	start, end := MonthBounds(now)
	prevStart := start.AddDate(0, -1, 0)

	var summary FinancialSummary
	for _, t := range txns {
		summary.Balance += t.Amount
		if t.Date.Within(start, end) {
			if t.Amount > 0 {
				summary.MonthIncome += t.Amount
			} else {
				summary.MonthExpenses += math.Abs(t.Amount)
			}
		} else if t.Expense() && t.Date.Within(prevStart, start) {
			summary.PreviousExpenses += math.Abs(t.Amount)
		}
	}

	if summary.PreviousExpenses > 0 {
		summary.ExpenseTrend = (summary.MonthExpenses - summary.PreviousExpenses) / summary.PreviousExpenses * 100
	}

	spending := spendingBetween(txns, start, end)
	summary.ExpensesByCategory = SortByTotalDesc(totalsFromMap(spending))
	summary.BudgetAdherence = BudgetAdherence(budget, spending)
	return summary
}

func totalsFromMap(m map[string]float64) []CategoryTotal {
	totals := make([]CategoryTotal, 0, len(m))
	for category, total := range m {
		totals = append(totals, CategoryTotal{Category: category, Total: total})
	}
	// map iteration is random; order by name before the stable total sort
	sortByCategory(totals)
	return totals
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
