package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#3B82F6") // Blue
	colorMuted     = lipgloss.Color("#6B7280") // Gray
)

var (
	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	statusStyle = lipgloss.NewStyle().
			Bold(true)

	countStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
