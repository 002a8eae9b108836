package aggregate

import (
	"sort"

	"github.com/Veraticus/harmony/internal/model"
)

// CategoryTotal is one row of a grouped sum.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// GroupSum sums value over records grouped by category, in order of first
// appearance. Blank categories are grouped under model.DefaultCategory.
func GroupSum[T any](records []T, category func(T) string, value func(T) float64) []CategoryTotal {
	index := map[string]int{}
	totals := []CategoryTotal{}
	for _, rec := range records {
		cat := category(rec)
		if cat == "" {
			cat = model.DefaultCategory
		}
		i, ok := index[cat]
		if !ok {
			i = len(totals)
			index[cat] = i
			totals = append(totals, CategoryTotal{Category: cat})
		}
		totals[i].Total += value(rec)
	}
	return totals
}

// SortByTotalDesc orders totals largest first, keeping input order on ties.
func SortByTotalDesc(totals []CategoryTotal) []CategoryTotal {
	sorted := make([]CategoryTotal, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total > sorted[j].Total
	})
	return sorted
}

// AsMap converts grouped totals into a category map.
func AsMap(totals []CategoryTotal) map[string]float64 {
	m := make(map[string]float64, len(totals))
	for _, t := range totals {
		m[t.Category] += t.Total
	}
	return m
}

func sortByCategory(totals []CategoryTotal) {
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Category < totals[j].Category
	})
}
