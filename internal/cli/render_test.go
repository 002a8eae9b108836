package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/harmony/internal/model"
)

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "₹1250.50", FormatRupees(1250.5))
	assert.Equal(t, "-₹40.00", FormatRupees(-40))
	assert.Equal(t, "₹0.00", FormatRupees(0))
}

func TestTable(t *testing.T) {
	out := Table([]string{"Course", "Credits"}, [][]string{
		{"CS201", "4"},
		{"Engineering Mathematics"},
	})
	lines := strings.Split(out, "\n")
	assert.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, out, "Course")
	assert.Contains(t, out, "Engineering Mathematics")

	// every row is as wide as the widest cell plus padding
	for _, line := range lines {
		assert.LessOrEqual(t, len("Engineering Mathematics"), len([]rune(line)))
	}
}

func TestRenderRecommendations(t *testing.T) {
	assert.Contains(t, RenderRecommendations(nil), "Nothing needs your attention")

	out := RenderRecommendations([]model.Recommendation{
		{Title: "Set Up Your Budget", Description: "Start with food and rent.", Priority: model.PriorityHigh, Domain: model.DomainFinancial},
		{Title: "Start Tracking Skills", Description: "List what you know.", Priority: model.PriorityLow, Domain: model.DomainCareer},
	})
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "Set Up Your Budget")
	assert.Contains(t, out, "(financial)")
	assert.Less(t, strings.Index(out, "Set Up Your Budget"), strings.Index(out, "Start Tracking Skills"))
}

func TestRenderItems(t *testing.T) {
	out := RenderItems([]model.Item{
		{"title": "Budget weekly", "description": "Plan on Sundays.", "source": ""},
	}, []string{"title", "description", "source"})
	assert.Contains(t, out, "1. Budget weekly")
	assert.Contains(t, out, "description: Plan on Sundays.")
	assert.NotContains(t, out, "source:")

	assert.Contains(t, RenderItems(nil, []string{"title"}), "No content")
}

func TestFormatPriority(t *testing.T) {
	tests := []struct {
		priority model.Priority
		want     string
	}{
		{priority: model.PriorityHigh, want: "HIGH"},
		{priority: model.PriorityMedium, want: "MEDIUM"},
		{priority: model.PriorityLow, want: "LOW"},
		{priority: "someday", want: "SOMEDAY"},
	}
	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			assert.Contains(t, FormatPriority(tt.priority), tt.want)
		})
	}
}

func TestFormatDomain(t *testing.T) {
	for _, d := range []model.Domain{model.DomainAcademic, model.DomainFinancial, model.DomainWellness, model.DomainCareer} {
		_, ok := domainColors[d]
		assert.True(t, ok, d)
		assert.Contains(t, FormatDomain(string(d)), string(d))
	}
	assert.Contains(t, FormatDomain("mental_health"), "mental health")
	assert.NotContains(t, FormatDomain("mental_health"), "_")
}
