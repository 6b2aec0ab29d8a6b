// Package ui provides the terminal wizards for filing reports and
// drafting grievance letters.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette following the JanConnect web client.
var (
	Primary     = lipgloss.Color("#1D4ED8") // civic blue
	Accent      = lipgloss.Color("#F97316") // saffron
	Muted       = lipgloss.Color("#6B7280")
	Border      = lipgloss.Color("#374151")
	Destructive = lipgloss.Color("#E53935")
	Success     = lipgloss.Color("#22C55E")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	StepStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Destructive)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(1, 2)
)

// StepIndicator renders "Step 2 of 4: Location & Media".
func StepIndicator(current, total int, name string) string {
	return StepStyle.Render(fmt.Sprintf("Step %d of %d: %s", current+1, total, name))
}
