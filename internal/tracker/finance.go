package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/harmony/internal/aggregate"
	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
	"github.com/Veraticus/harmony/internal/storage"
)

// TransactionFilter narrows a transaction listing. Zero fields match all.
type TransactionFilter struct {
	Start    model.Date
	End      model.Date
	Category string
}

func (f TransactionFilter) match(t model.Transaction) bool {
	if !f.Start.IsZero() && t.Date.Before(f.Start.Time) {
		return false
	}
	if !f.End.IsZero() && t.Date.After(f.End.Time) {
		return false
	}
	return f.Category == "" || strings.EqualFold(t.Category, f.Category)
}

// Finance manages transactions, budgets, aid, fees and savings goals.
type Finance struct {
	s            *session
	transactions *storage.Collection[model.Transaction, *model.Transaction]
	aid          *storage.Collection[model.FinancialAid, *model.FinancialAid]
	fees         *storage.Collection[model.FeePayment, *model.FeePayment]
	goals        *storage.Collection[model.FinancialGoal, *model.FinancialGoal]
	budget       *storage.Document[model.Budget]
}

func newFinance(s *session) *Finance {
	ns := service.NamespaceFinancial
	return &Finance{
		s:            s,
		transactions: newCollection[model.Transaction](s, ns, keyTransactions),
		aid:          newCollection[model.FinancialAid](s, ns, keyFinancialAid),
		fees:         newCollection[model.FeePayment](s, ns, keyFeePayments),
		goals:        newCollection[model.FinancialGoal](s, ns, keyFinancialGoals),
		budget: storage.NewDocument(s.store, s.id, ns, keyBudget, func() model.Budget {
			return model.Budget{}
		}),
	}
}

func (f *Finance) prepare(t model.Transaction) model.Transaction {
	if strings.TrimSpace(t.Category) == "" {
		t.Category = model.DefaultCategory
	}
	if t.Date.IsZero() {
		t.Date = f.s.today()
	}
	return t
}

// AddTransaction stores a transaction. Negative amounts are expenses; the
// category defaults to model.DefaultCategory and the date to today.
func (f *Finance) AddTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	added, err := f.transactions.Add(ctx, f.prepare(t))
	return added, f.s.changed(err)
}

// Import adds transactions whose ids are not stored yet and reports how many
// were added.
func (f *Finance) Import(ctx context.Context, txns []model.Transaction) (int, error) {
	added := 0
	_, err := f.transactions.Edit(ctx, func(existing []model.Transaction) ([]model.Transaction, error) {
		seen := make(map[string]bool, len(existing))
		for _, t := range existing {
			seen[t.ID] = true
		}
		for _, t := range txns {
			if t.ID != "" && seen[t.ID] {
				continue
			}
			if t.ID != "" {
				seen[t.ID] = true
			}
			existing = append(existing, f.prepare(t))
			added++
		}
		return existing, nil
	})
	if err != nil {
		return 0, err
	}
	if added > 0 {
		_ = f.s.changed(nil)
	}
	return added, nil
}

// Transactions lists transactions matching filter in stored order.
func (f *Finance) Transactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error) {
	all, err := f.transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Transaction, 0, len(all))
	for _, t := range all {
		if filter.match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// RecentTransactions returns up to limit transactions, newest first.
func (f *Finance) RecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	all, err := f.transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date.Time) {
			return all[i].Date.After(all[j].Date.Time)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Budget returns the monthly budget, empty when unset.
func (f *Finance) Budget(ctx context.Context) (model.Budget, error) {
	b, _, err := f.budget.Load(ctx)
	if b == nil {
		b = model.Budget{}
	}
	return b, err
}

// SetBudget replaces the monthly budget.
func (f *Finance) SetBudget(ctx context.Context, b model.Budget) error {
	for category, limit := range b {
		if strings.TrimSpace(category) == "" || limit < 0 {
			return fmt.Errorf("%w: budget for %q must be a non-negative amount", common.ErrInvalidInput, category)
		}
	}
	return f.s.changed(f.budget.Save(ctx, b))
}

// MonthlySpending returns this month's expenses per category.
func (f *Finance) MonthlySpending(ctx context.Context) (map[string]float64, error) {
	all, err := f.transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.MonthlySpending(all, f.s.now()), nil
}

// BudgetAdherence scores this month's spending against the budget.
func (f *Finance) BudgetAdherence(ctx context.Context) (float64, error) {
	b, err := f.Budget(ctx)
	if err != nil {
		return 0, err
	}
	spending, err := f.MonthlySpending(ctx)
	if err != nil {
		return 0, err
	}
	return aggregate.BudgetAdherence(b, spending), nil
}

// Summary returns balance, month totals and budget adherence.
func (f *Finance) Summary(ctx context.Context) (aggregate.FinancialSummary, error) {
	all, err := f.transactions.List(ctx)
	if err != nil {
		return aggregate.FinancialSummary{}, err
	}
	b, err := f.Budget(ctx)
	if err != nil {
		return aggregate.FinancialSummary{}, err
	}
	return aggregate.Summarize(all, b, f.s.now()), nil
}

// ExpensesByCategory totals every expense per category, largest first.
func (f *Finance) ExpensesByCategory(ctx context.Context) ([]aggregate.CategoryTotal, error) {
	all, err := f.transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	expenses := make([]model.Transaction, 0, len(all))
	for _, t := range all {
		if t.Expense() {
			expenses = append(expenses, t)
		}
	}
	return aggregate.SortByTotalDesc(aggregate.GroupSum(expenses,
		func(t model.Transaction) string { return t.Category },
		func(t model.Transaction) float64 { return -t.Amount },
	)), nil
}

// AddAid stores a financial aid record.
func (f *Finance) AddAid(ctx context.Context, aid model.FinancialAid) (model.FinancialAid, error) {
	added, err := f.aid.Add(ctx, aid)
	return added, f.s.changed(err)
}

// Aid lists financial aid records.
func (f *Finance) Aid(ctx context.Context) ([]model.FinancialAid, error) {
	return f.aid.List(ctx)
}

// AddFee stores a fee payment.
func (f *Finance) AddFee(ctx context.Context, fee model.FeePayment) (model.FeePayment, error) {
	added, err := f.fees.Add(ctx, fee)
	return added, f.s.changed(err)
}

// Fees lists fee payments ordered by due date.
func (f *Finance) Fees(ctx context.Context) ([]model.FeePayment, error) {
	fees, err := f.fees.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(fees, func(i, j int) bool {
		return fees[i].DueDate.Before(fees[j].DueDate.Time)
	})
	return fees, nil
}

// Goals lists savings goals.
func (f *Finance) Goals(ctx context.Context) ([]model.FinancialGoal, error) {
	return f.goals.List(ctx)
}

// AddGoal stores a savings goal in progress.
func (f *Finance) AddGoal(ctx context.Context, goal model.FinancialGoal) (model.FinancialGoal, error) {
	if goal.Status == "" {
		goal.Status = model.GoalInProgress
	}
	added, err := f.goals.Add(ctx, goal)
	return added, f.s.changed(err)
}

// UpdateGoalAmount sets the saved amount. Reaching the target marks the goal
// completed with today's date.
func (f *Finance) UpdateGoalAmount(ctx context.Context, id string, amount float64) (bool, error) {
	today := f.s.today()
	ok, err := f.goals.Mutate(ctx, id, func(g *model.FinancialGoal) error {
		g.CurrentAmount = amount
		if amount >= g.TargetAmount {
			g.Status = model.GoalCompleted
			g.CompletionDate = today
		}
		return nil
	})
	return ok, f.s.changed(err)
}

// DeleteGoal removes a savings goal.
func (f *Finance) DeleteGoal(ctx context.Context, id string) (bool, error) {
	ok, err := f.goals.Delete(ctx, id)
	return ok, f.s.changed(err)
}
