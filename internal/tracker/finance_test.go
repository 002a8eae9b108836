package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
)

func addTransactions(t *testing.T, finance *Finance, txns ...model.Transaction) {
	t.Helper()
	for _, txn := range txns {
		_, err := finance.AddTransaction(context.Background(), txn)
		require.NoError(t, err)
	}
}

func TestTransactions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	finance := f.student.Finance

	addTransactions(t, finance,
		model.Transaction{Amount: 15000, Category: "Stipend", Date: model.MustDate("2025-04-01")},
		model.Transaction{Amount: -450, Category: "Food", Date: model.MustDate("2025-04-05")},
		model.Transaction{Amount: -1200, Category: "Books", Date: model.MustDate("2025-03-20")},
		model.Transaction{Amount: -80},
	)

	all, err := finance.Transactions(ctx, TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, model.DefaultCategory, all[3].Category)
	assert.Equal(t, model.MustDate("2025-04-10"), all[3].Date)

	april, err := finance.Transactions(ctx, TransactionFilter{
		Start: model.MustDate("2025-04-01"),
		End:   model.MustDate("2025-04-05"),
	})
	require.NoError(t, err)
	assert.Len(t, april, 2)

	food, err := finance.Transactions(ctx, TransactionFilter{Category: "food"})
	require.NoError(t, err)
	assert.Len(t, food, 1)

	recent, err := finance.RecentTransactions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, model.DefaultCategory, recent[0].Category)
	assert.Equal(t, "Food", recent[1].Category)

	byCategory, err := finance.ExpensesByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, byCategory, 3)
	assert.Equal(t, "Books", byCategory[0].Category)
	assert.InDelta(t, 1200, byCategory[0].Total, 1e-9)

	assert.Len(t, f.changes, 4)
}

func TestBudgetAndSpending(t *testing.T) {
	ctx := context.Background()
	finance := newFixture(t).student.Finance

	adherence, err := finance.BudgetAdherence(ctx)
	require.NoError(t, err)
	assert.Zero(t, adherence)

	require.NoError(t, finance.SetBudget(ctx, model.Budget{"Food": 1000, "Transport": 1000}))
	budget, err := finance.Budget(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2000, budget.Total(), 1e-9)

	addTransactions(t, finance,
		model.Transaction{Amount: -500, Category: "Food", Date: model.MustDate("2025-04-02")},
		model.Transaction{Amount: -300, Category: "Food", Date: model.MustDate("2025-03-02")},
		model.Transaction{Amount: 5000, Category: "Allowance", Date: model.MustDate("2025-04-01")},
	)

	spending, err := finance.MonthlySpending(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Food": 500}, spending)

	adherence, err = finance.BudgetAdherence(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 75, adherence, 1e-9)

	summary, err := finance.Summary(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 4200, summary.Balance, 1e-9)
	assert.InDelta(t, 5000, summary.MonthIncome, 1e-9)
	assert.InDelta(t, 500, summary.MonthExpenses, 1e-9)

	err = finance.SetBudget(ctx, model.Budget{"Food": -1})
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestImportSkipsKnownIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	finance := f.student.Finance

	batch := []model.Transaction{
		{Base: model.Base{ID: "ofx:1"}, Amount: -100, Description: "Canteen"},
		{Base: model.Base{ID: "ofx:2"}, Amount: -40, Description: "Bus"},
		{Base: model.Base{ID: "ofx:2"}, Amount: -40, Description: "Bus"},
	}
	added, err := finance.Import(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = finance.Import(ctx, batch)
	require.NoError(t, err)
	assert.Zero(t, added)

	all, err := finance.Transactions(ctx, TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, model.DefaultCategory, all[0].Category)
	assert.Equal(t, fixedNow, all[0].CreatedAt)
	assert.Len(t, f.changes, 1)
}

func TestFinancialGoalsAndAid(t *testing.T) {
	ctx := context.Background()
	finance := newFixture(t).student.Finance

	goal, err := finance.AddGoal(ctx, model.FinancialGoal{Name: "Emergency fund", TargetAmount: 10000})
	require.NoError(t, err)

	ok, err := finance.UpdateGoalAmount(ctx, goal.ID, 12000)
	require.NoError(t, err)
	assert.True(t, ok)

	goals, err := finance.Goals(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.GoalCompleted, goals[0].Status)
	assert.Equal(t, model.MustDate("2025-04-10"), goals[0].CompletionDate)

	ok, err = finance.UpdateGoalAmount(ctx, "missing", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = finance.AddGoal(ctx, model.FinancialGoal{Name: "Laptop"})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = finance.AddAid(ctx, model.FinancialAid{Type: "Scholarship", Name: "INSPIRE", Amount: 80000})
	require.NoError(t, err)
	aid, err := finance.Aid(ctx)
	require.NoError(t, err)
	assert.Len(t, aid, 1)

	_, err = finance.AddFee(ctx, model.FeePayment{Description: "Semester 2", Amount: 45000, DueDate: model.MustDate("2025-07-01")})
	require.NoError(t, err)
	_, err = finance.AddFee(ctx, model.FeePayment{Description: "Hostel", Amount: 20000, DueDate: model.MustDate("2025-05-01")})
	require.NoError(t, err)
	fees, err := finance.Fees(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hostel", fees[0].Description)

	ok, err = finance.DeleteGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
