package model

// Priority orders recommendations.
type Priority string

// Recommendation priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank maps high, medium and low to 3, 2 and 1.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Domain names one area of the dashboard.
type Domain string

// Dashboard domains.
const (
	DomainAcademic  Domain = "academic"
	DomainFinancial Domain = "financial"
	DomainWellness  Domain = "wellness"
	DomainCareer    Domain = "career"
)

// Recommendation is a single prioritized suggestion.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Domain      Domain   `json:"domain"`
}
