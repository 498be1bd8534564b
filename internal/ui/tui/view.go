package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderPhases(&b, m)
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(titleStyle.Render("walnut"))
	b.WriteString(subtitleStyle.Render(" building " + m.World))
	b.WriteString("\n\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = max(m.Width-30, 10)
	}
	filled := min(int(float64(barWidth)*progress), barWidth)

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	fmt.Fprintf(b, "  %s %d%%\n\n", bar, int(progress*100))
}

func renderPhases(b *strings.Builder, m Model) {
	for _, row := range m.Phases {
		var icon string
		var style styleFunc
		switch {
		case row.Done:
			icon = checkMark
			style = sf(readyStyle)
		case row.Active:
			icon = currentSpinner(m.SpinnerFrame)
			style = sf(activeStyle)
		default:
			icon = pending
			style = sf(dimStyle)
		}
		fmt.Fprintf(b, "  %s %s\n", style(icon), style(row.Name))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	parts := []string{fmt.Sprintf("elapsed: %s", formatDuration(time.Since(m.StartTime)))}
	if m.LastStep != "" && !m.Done {
		parts = append(parts, m.LastStep)
	}
	if m.Canceled && !m.Done {
		parts = append(parts, "canceled")
	}
	if m.Failed > 0 {
		parts = append(parts, failedStyle.Render(fmt.Sprintf("%d to paste", m.Failed)))
	}
	b.WriteString(footerStyle.Render("  " + strings.Join(parts, "  |  ")))
	b.WriteString("\n")
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}
	if m.Total <= 0 {
		return 0
	}
	return float64(m.Current) / float64(m.Total)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
