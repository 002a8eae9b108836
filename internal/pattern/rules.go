// Package pattern assigns spending categories to transactions from merchant
// rules.
package pattern

// Amount conditions compare a rule's values with the transaction's
// magnitude, so rules read the same for expenses and income.
const (
	AmountAny   = "any"
	AmountLT    = "lt"
	AmountLE    = "le"
	AmountEQ    = "eq"
	AmountGE    = "ge"
	AmountGT    = "gt"
	AmountRange = "range"
)

// Directions a rule can be restricted to.
const (
	DirectionExpense = "expense"
	DirectionIncome  = "income"
)

// Rule maps matching transactions to a category.
type Rule struct {
	AmountValue *float64 `json:"amount_value,omitempty"`
	AmountMin   *float64 `json:"amount_min,omitempty"`
	AmountMax   *float64 `json:"amount_max,omitempty"`
	Name        string   `json:"name"`
	// MerchantPattern is matched against the lower-cased description: as a
	// regular expression when IsRegex is set, as a substring otherwise.
	MerchantPattern string `json:"merchant_pattern"`
	AmountCondition string `json:"amount_condition"`
	Direction       string `json:"direction,omitempty"`
	Category        string `json:"category"`
	Priority        int    `json:"priority"`
	IsRegex         bool   `json:"is_regex"`
}

// DefaultRules covers common student spending in India.
var DefaultRules = []Rule{
	{Name: "food delivery", MerchantPattern: `swiggy|zomato|dominos|eatsure`, IsRegex: true, Category: "Food", Direction: DirectionExpense, Priority: 20},
	{Name: "campus food", MerchantPattern: `canteen|mess|cafe|chai|tiffin|bakery`, IsRegex: true, Category: "Food", Direction: DirectionExpense, Priority: 15},
	{Name: "groceries", MerchantPattern: `bigbasket|blinkit|zepto|dmart|big bazaar|reliance fresh`, IsRegex: true, Category: "Groceries", Direction: DirectionExpense, Priority: 15},
	{Name: "rides", MerchantPattern: `uber|ola|rapido|metro|irctc|redbus|petrol|fuel`, IsRegex: true, Category: "Transport", Direction: DirectionExpense, Priority: 15},
	{Name: "books and printing", MerchantPattern: `xerox|stationery|book|print`, IsRegex: true, Category: "Books", Direction: DirectionExpense, Priority: 15},
	{Name: "subscriptions", MerchantPattern: `netflix|spotify|hotstar|prime video|youtube`, IsRegex: true, Category: "Entertainment", Direction: DirectionExpense, Priority: 15},
	{Name: "mobile recharge", MerchantPattern: `recharge|jio|airtel|vodafone|\bvi\b`, IsRegex: true, Category: "Phone", Direction: DirectionExpense, Priority: 10},
	{Name: "housing", MerchantPattern: `hostel|rent|\bpg\b`, IsRegex: true, Category: "Rent", Direction: DirectionExpense, Priority: 10},
	{Name: "tuition", MerchantPattern: `fee|tuition|exam form`, IsRegex: true, Category: "Fees", Direction: DirectionExpense, Priority: 10},
	{Name: "online shopping", MerchantPattern: `amazon|flipkart|myntra|meesho|ajio`, IsRegex: true, Category: "Shopping", Direction: DirectionExpense, Priority: 5},
	{Name: "scholarship", MerchantPattern: `scholarship|stipend|fellowship`, IsRegex: true, Category: "Scholarship", Direction: DirectionIncome, Priority: 20},
	{Name: "small transfers in", Direction: DirectionIncome, AmountCondition: AmountAny, Category: "Income", Priority: 0},
}
