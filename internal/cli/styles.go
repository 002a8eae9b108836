// Package cli renders harmony's terminal output with lipgloss and handles
// interactive input.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/harmony/internal/model"
)

var (
	accentColor  = lipgloss.Color("#5B8DEF")
	goodColor    = lipgloss.Color("#3DBE8B")
	cautionColor = lipgloss.Color("#F2B544")
	alertColor   = lipgloss.Color("#E5534B")
	noteColor    = lipgloss.Color("#8FB8DE")
	mutedColor   = lipgloss.Color("#7D8590")
	borderColor  = lipgloss.Color("#3A3F4B")

	// domainColors tints each dashboard area consistently across commands.
	domainColors = map[model.Domain]lipgloss.Color{
		model.DomainAcademic:  accentColor,
		model.DomainFinancial: goodColor,
		model.DomainWellness:  lipgloss.Color("#C678DD"),
		model.DomainCareer:    cautionColor,
	}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(goodColor)
	warningStyle = lipgloss.NewStyle().Foreground(cautionColor)
	errorStyle   = lipgloss.NewStyle().Foreground(alertColor)
	infoStyle    = lipgloss.NewStyle().Foreground(noteColor)
	subtleStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(borderColor)

	tableCellStyle = lipgloss.NewStyle().PaddingRight(2)

	// priorityStyles marks how urgent a recommendation is.
	priorityStyles = map[model.Priority]lipgloss.Style{
		model.PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(alertColor),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(cautionColor),
		model.PriorityLow:    lipgloss.NewStyle().Foreground(mutedColor),
	}
)

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	HarmonyIcon  = "🎓"
	AdvisorIcon  = "💬"
	ChartIcon    = "📊"
	BookmarkIcon = "🔖"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return successStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return errorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return warningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return infoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return titleStyle.Render(HarmonyIcon + " " + title)
}

// FormatPrompt formats the label shown before interactive input.
func FormatPrompt(asker string) string {
	return promptStyle.Render(asker + " → ")
}

// FormatPriority renders an upper-case priority label. Unknown priorities
// render as low.
func FormatPriority(p model.Priority) string {
	style, ok := priorityStyles[p]
	if !ok {
		style = priorityStyles[model.PriorityLow]
	}
	return style.Render(strings.ToUpper(string(p)))
}

// FormatDomain renders a dashboard area name in its color. Names with
// underscores, such as advisor domains, are shown with spaces.
func FormatDomain(domain string) string {
	label := strings.ReplaceAll(domain, "_", " ")
	color, ok := domainColors[model.Domain(domain)]
	if !ok {
		return subtleStyle.Render(label)
	}
	return lipgloss.NewStyle().Foreground(color).Render(label)
}

// RenderBox renders content under a title inside a rounded border.
func RenderBox(title, content string) string {
	heading := titleStyle.UnsetMargins().Render(title)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}
