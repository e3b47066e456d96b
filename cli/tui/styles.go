// Package tui provides the Bubble Tea interactive session screen.
//
// The screen is a pure presentation surface: every frame is rendered from a
// session store snapshot, and all mutation flows through the store's
// transition operations or the orchestrator. State transitions happen only
// in reaction to discrete messages, so they are totally ordered by the
// Bubble Tea event loop.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	primaryColor = lipgloss.Color("#D97706") // Amber, for sandstone instruments
	successColor = lipgloss.Color("#10B981") // Green
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#EF4444") // Red
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	accentColor  = lipgloss.Color("#3B82F6") // Blue
)

// Styles for the session screen.
var (
	// TitleStyle for the screen header.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// LabelStyle for field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(18)

	// ValueStyle for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// PendingStyle for the in-flight indicator.
	PendingStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// ErrorStyle for the last-error banner.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// BoxStyle for bordered containers.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2)

	// HelpStyle for the key help line.
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

// TierStyle returns the style for an accuracy tier badge.
func TierStyle(tier string) lipgloss.Style {
	switch tier {
	case "excellent":
		return lipgloss.NewStyle().Foreground(successColor)
	case "good":
		return lipgloss.NewStyle().Foreground(accentColor)
	case "acceptable":
		return lipgloss.NewStyle().Foreground(warningColor)
	default:
		return lipgloss.NewStyle().Foreground(errorColor)
	}
}
