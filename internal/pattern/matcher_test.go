package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/harmony/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func TestDefaultRules(t *testing.T) {
	tests := []struct {
		description string
		want        string
		amount      float64
		wantOK      bool
	}{
		{description: "Swiggy order 8812", amount: -340, want: "Food", wantOK: true},
		{description: "Campus Canteen", amount: -45, want: "Food", wantOK: true},
		{description: "UBER TRIP", amount: -180, want: "Transport", wantOK: true},
		{description: "Xerox Shop", amount: -20, want: "Books", wantOK: true},
		{description: "AMAZON.IN", amount: -999, want: "Shopping", wantOK: true},
		{description: "Jio prepaid recharge", amount: -299, want: "Phone", wantOK: true},
		{description: "Hostel rent March", amount: -6000, want: "Rent", wantOK: true},
		{description: "SCHOLARSHIP CREDIT", amount: 5000, want: "Scholarship", wantOK: true},
		{description: "From papa", amount: 2000, want: "Income", wantOK: true},
		{description: "Swiggy refund", amount: 340, want: "Income", wantOK: true},
		{description: "Random shop", amount: -50, wantOK: false},
		{description: "viva voce prep", amount: -10, wantOK: false},
	}

	m := Default()
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, ok := m.Category(model.Transaction{Description: tt.description, Amount: tt.amount})
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchOrdersByPriority(t *testing.T) {
	m := NewMatcher([]Rule{
		{Name: "low", MerchantPattern: "amazon", Category: "Shopping", Priority: 1},
		{Name: "high", MerchantPattern: `amazon.*book`, IsRegex: true, Category: "Books", Priority: 10},
		{Name: "broken", MerchantPattern: `([`, IsRegex: true, Category: "Never", Priority: 100},
	})

	matches := m.Match(model.Transaction{Description: "Amazon Books", Amount: -300})
	if assert.Len(t, matches, 2) {
		assert.Equal(t, "high", matches[0].Name)
		assert.Equal(t, "low", matches[1].Name)
	}
	assert.Empty(t, m.Match(model.Transaction{Description: "Flipkart", Amount: -300}))
}

func TestAmountConditions(t *testing.T) {
	tests := []struct {
		value     *float64
		min       *float64
		max       *float64
		name      string
		condition string
		amount    float64
		want      bool
	}{
		{name: "any amount always matches", condition: AmountAny, amount: 100, want: true},
		{name: "empty condition matches", amount: 100, want: true},
		{name: "less than matches", condition: AmountLT, value: floatPtr(50), amount: -40, want: true},
		{name: "less than compares magnitude", condition: AmountLT, value: floatPtr(50), amount: -60, want: false},
		{name: "less equal exact", condition: AmountLE, value: floatPtr(50), amount: 50, want: true},
		{name: "equal", condition: AmountEQ, value: floatPtr(50), amount: -50, want: true},
		{name: "greater equal", condition: AmountGE, value: floatPtr(50), amount: 49.99, want: false},
		{name: "greater than", condition: AmountGT, value: floatPtr(50), amount: 51, want: true},
		{name: "missing value never matches", condition: AmountGT, amount: 51, want: false},
		{name: "range inside", condition: AmountRange, min: floatPtr(10), max: floatPtr(20), amount: -15, want: true},
		{name: "range above", condition: AmountRange, min: floatPtr(10), max: floatPtr(20), amount: 25, want: false},
		{name: "open range", condition: AmountRange, min: floatPtr(10), amount: 1e6, want: true},
		{name: "unknown condition", condition: "between", amount: 10, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher([]Rule{{
				Name:            tt.name,
				Category:        "X",
				AmountCondition: tt.condition,
				AmountValue:     tt.value,
				AmountMin:       tt.min,
				AmountMax:       tt.max,
			}})
			_, ok := m.Category(model.Transaction{Description: "anything", Amount: tt.amount})
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestCategorizeKeepsExplicitCategories(t *testing.T) {
	txns := []model.Transaction{
		{Description: "Zomato", Amount: -250},
		{Description: "Zomato", Amount: -250, Category: "Party"},
		{Description: "Metro card", Amount: -100, Category: model.DefaultCategory},
		{Description: "Unknown", Amount: -10},
	}

	changed := Default().Categorize(txns)

	assert.Equal(t, 2, changed)
	assert.Equal(t, "Food", txns[0].Category)
	assert.Equal(t, "Party", txns[1].Category)
	assert.Equal(t, "Transport", txns[2].Category)
	assert.Empty(t, txns[3].Category)
}
