package tui

import "github.com/charmbracelet/lipgloss"

var (
	Text    = lipgloss.Color("#cdd6f4")
	Muted   = lipgloss.Color("#a6adc8")
	Accent  = lipgloss.Color("#b4befe")
	Green   = lipgloss.Color("#a6e3a1")
	Red     = lipgloss.Color("#f38ba8")
	Surface = lipgloss.Color("#45475a")

	titleStyle    = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(Muted)
	questionStyle = lipgloss.NewStyle().Foreground(Text).Bold(true).MarginBottom(1)

	choiceStyle   = lipgloss.NewStyle().Foreground(Text).PaddingLeft(2)
	cursorStyle   = choiceStyle.Foreground(Accent).Bold(true)
	successStyle  = choiceStyle.Foreground(Green).Bold(true)
	errorStyle    = choiceStyle.Foreground(Red)
	feedbackStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface).
			Padding(0, 1).
			MarginTop(1)
	statusStyle = lipgloss.NewStyle().Foreground(Red).Italic(true)
)
