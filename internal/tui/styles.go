package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Static styles for chart elements.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	StandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	HitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	EqualStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Reverse(true).
			Bold(true)

	AxisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	DetailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	DetailTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#96CEB4")).
				Bold(true)
)

func init() {
	// On light terminals the pale action colors wash out; fall back to
	// the basic ANSI palette.
	if !termenv.HasDarkBackground() {
		StandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
		HitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		EqualStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	}
}
