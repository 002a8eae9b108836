package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/harmony/internal/model"
)

// FormatRupees formats an amount in rupees with two decimals.
func FormatRupees(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s₹%.2f", sign, amount)
}

// Table lays rows out in aligned columns under a bold header row. Short rows
// are padded with empty cells.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	renderRow := func(cells []string) string {
		rendered := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			rendered[i] = tableCellStyle.Width(w + 2).Render(cell)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}

	lines := []string{tableHeaderStyle.Render(renderRow(headers))}
	for _, row := range rows {
		lines = append(lines, renderRow(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderRecommendations lists recommendations with their priority and domain.
func RenderRecommendations(recs []model.Recommendation) string {
	if len(recs) == 0 {
		return FormatSuccess("Nothing needs your attention right now.")
	}
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s (%s)\n", FormatPriority(r.Priority), boldStyle.Render(r.Title), FormatDomain(string(r.Domain)))
		fmt.Fprintf(&b, "  %s\n", r.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderItems prints content items one block each, showing fields in order.
// The first field is the heading.
func RenderItems(items []model.Item, fields []string) string {
	if len(items) == 0 || len(fields) == 0 {
		return subtleStyle.Render("No content available.")
	}
	blocks := make([]string, 0, len(items))
	for i, item := range items {
		var b strings.Builder
		fmt.Fprintf(&b, "%d. %s", i+1, boldStyle.Render(item[fields[0]]))
		for _, f := range fields[1:] {
			if v := item[f]; v != "" {
				fmt.Fprintf(&b, "\n   %s %s", subtleStyle.Render(f+":"), v)
			}
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
