package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — muted, readable on light and dark terminals
var (
	Primary   = lipgloss.Color("#2563EB") // Blue
	Secondary = lipgloss.Color("#0D9488") // Teal
	Warning   = lipgloss.Color("#D97706") // Amber
	Success   = lipgloss.Color("#16A34A") // Green
	Error     = lipgloss.Color("#DC2626") // Red
	TextDim   = lipgloss.Color("#64748B") // Slate
	Border    = lipgloss.Color("#CBD5E1") // Light slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Pass = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Fail = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Warning)
)

// Components
var (
	BarFilled = lipgloss.NewStyle().
			Foreground(Secondary)

	BarEmpty = lipgloss.NewStyle().
			Foreground(Border)
)

// Verdict renders PASS or FAIL in the matching color.
func Verdict(passed bool) string {
	if passed {
		return Pass.Render("PASS")
	}
	return Fail.Render("FAIL")
}
