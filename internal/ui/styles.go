package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#B0B7C3"})

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.Color("12"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13")).
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Faint(true)

	emptyStyle = lipgloss.NewStyle().
			Italic(true).
			Faint(true)

	clearStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	checkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)
