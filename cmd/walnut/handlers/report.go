package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alivecomputer/setup/internal/provisioning"
)

// Report colors, one per event category.
var (
	colorActive  = lipgloss.Color("#60A5FA")
	colorSuccess = lipgloss.Color("#22C55E")
	colorError   = lipgloss.Color("#EF4444")
	colorDim     = lipgloss.Color("#6B7280")
	colorCommand = lipgloss.Color("#F5F5F4")
	colorTitle   = lipgloss.Color("#F59E0B")
)

var (
	activeStyle  = lipgloss.NewStyle().Foreground(colorActive)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	explainStyle = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	commandStyle = lipgloss.NewStyle().Foreground(colorCommand).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(colorTitle).Bold(true)
)

// linePrefix is printed before an entry of each category.
var linePrefix = map[provisioning.Category]string{
	provisioning.CategoryActive:  "▸ ",
	provisioning.CategorySuccess: "✓ ",
	provisioning.CategoryError:   "✗ ",
	provisioning.CategorySkip:    "  ",
	provisioning.CategoryExplain: "  ",
	provisioning.CategoryCommand: "  $ ",
	provisioning.CategoryInfo:    "",
}

func categoryStyle(c provisioning.Category) lipgloss.Style {
	switch c {
	case provisioning.CategoryActive:
		return activeStyle
	case provisioning.CategorySuccess:
		return successStyle
	case provisioning.CategoryError:
		return errorStyle
	case provisioning.CategorySkip:
		return dimStyle
	case provisioning.CategoryExplain:
		return explainStyle
	case provisioning.CategoryCommand:
		return commandStyle
	}
	return lipgloss.NewStyle()
}

// renderReport formats the event log of a run followed by every command
// the user still has to paste. Styles are only applied when styled is set.
func renderReport(result *provisioning.Result, styled bool) string {
	paint := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder

	for _, e := range result.Events {
		line := linePrefix[e.Category] + e.Text
		b.WriteString(paint(categoryStyle(e.Category), line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(paint(titleStyle, result.Headline()))
	b.WriteString("\n")

	commands := result.Fallbacks
	if len(commands) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(paint(dimStyle, "Copy all:"))
	b.WriteString("\n")
	for i, cmd := range commands {
		fmt.Fprintf(&b, "%s %s\n", paint(dimStyle, fmt.Sprintf("%2d.", i+1)), paint(commandStyle, cmd))
	}

	return b.String()
}
