package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorAmber = lipgloss.Color("#f59e0b")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAmber)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	readyStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	failedStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	activeStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	progressBarFull  = lipgloss.NewStyle().Foreground(colorGreen)
	progressBarEmpty = lipgloss.NewStyle().Foreground(colorDim)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			MarginTop(1)
)

const (
	checkMark = "✓"
	pending   = "·"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
