package pattern

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/Veraticus/harmony/internal/model"
)

// Matcher evaluates rules against transactions.
type Matcher struct {
	compiled map[int]*regexp.Regexp
	rules    []Rule
}

// NewMatcher creates a matcher over rules. Rules with an invalid regular
// expression never match.
func NewMatcher(rules []Rule) *Matcher {
	m := &Matcher{
		rules:    append([]Rule(nil), rules...),
		compiled: make(map[int]*regexp.Regexp),
	}
	sort.SliceStable(m.rules, func(i, j int) bool { return m.rules[i].Priority > m.rules[j].Priority })

	for i, rule := range m.rules {
		if rule.IsRegex && rule.MerchantPattern != "" {
			if re, err := regexp.Compile(rule.MerchantPattern); err == nil {
				m.compiled[i] = re
			}
		}
	}
	return m
}

var defaultMatcher = sync.OnceValue(func() *Matcher { return NewMatcher(DefaultRules) })

// Default returns a shared matcher over DefaultRules.
func Default() *Matcher {
	return defaultMatcher()
}

// Match returns the rules matching txn, highest priority first.
func (m *Matcher) Match(txn model.Transaction) []Rule {
	var matches []Rule
	for i, rule := range m.rules {
		if m.matches(i, txn) {
			matches = append(matches, rule)
		}
	}
	return matches
}

// Category returns the category of the best matching rule.
func (m *Matcher) Category(txn model.Transaction) (string, bool) {
	for i, rule := range m.rules {
		if m.matches(i, txn) {
			return rule.Category, true
		}
	}
	return "", false
}

// Categorize fills the category of every uncategorized transaction that a
// rule matches and reports how many changed. Explicit categories are kept.
func (m *Matcher) Categorize(txns []model.Transaction) int {
	changed := 0
	for i := range txns {
		if txns[i].Category != "" && txns[i].Category != model.DefaultCategory {
			continue
		}
		if category, ok := m.Category(txns[i]); ok {
			txns[i].Category = category
			changed++
		}
	}
	return changed
}

func (m *Matcher) matches(i int, txn model.Transaction) bool {
	rule := m.rules[i]
	switch rule.Direction {
	case DirectionExpense:
		if !txn.Expense() {
			return false
		}
	case DirectionIncome:
		if txn.Amount <= 0 {
			return false
		}
	}
	return m.matchesMerchant(i, txn) && matchesAmount(rule, math.Abs(txn.Amount))
}

func (m *Matcher) matchesMerchant(i int, txn model.Transaction) bool {
	rule := m.rules[i]
	if rule.MerchantPattern == "" {
		return true
	}
	description := strings.ToLower(txn.Description)
	if rule.IsRegex {
		re, ok := m.compiled[i]
		return ok && re.MatchString(description)
	}
	return strings.Contains(description, strings.ToLower(rule.MerchantPattern))
}

func matchesAmount(rule Rule, amount float64) bool {
	switch rule.AmountCondition {
	case "", AmountAny:
		return true
	case AmountLT:
		return rule.AmountValue != nil && amount < *rule.AmountValue
	case AmountLE:
		return rule.AmountValue != nil && amount <= *rule.AmountValue
	case AmountEQ:
		return rule.AmountValue != nil && amount == *rule.AmountValue
	case AmountGE:
		return rule.AmountValue != nil && amount >= *rule.AmountValue
	case AmountGT:
		return rule.AmountValue != nil && amount > *rule.AmountValue
	case AmountRange:
		if rule.AmountMin != nil && amount < *rule.AmountMin {
			return false
		}
		if rule.AmountMax != nil && amount > *rule.AmountMax {
			return false
		}
		return true
	}
	return false
}
