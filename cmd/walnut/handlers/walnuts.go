package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alivecomputer/setup/internal/world"
)

// Factory function variables for walnuts - can be replaced in tests.
var (
	listWalnuts = world.List
	userHomeDir = os.UserHomeDir
)

// walnutStatus is the JSON form of one listed walnut.
type walnutStatus struct {
	Path  string   `json:"path"`
	Type  string   `json:"type,omitempty"`
	Goal  string   `json:"goal,omitempty"`
	Phase string   `json:"phase,omitempty"`
	Next  string   `json:"next,omitempty"`
	Tags  []string `json:"tags,omitempty"`
	Error string   `json:"error,omitempty"`
}

// Walnuts lists the walnuts of an existing World. An empty root means
// the ~/world shortcut.
func Walnuts(_ context.Context, root string, jsonOutput bool) error {
	if root == "" {
		home, err := userHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		root = filepath.Join(home, "world")
	}

	walnuts, err := listWalnuts(root)
	if err != nil {
		return err
	}

	statuses := make([]walnutStatus, 0, len(walnuts))
	for _, w := range walnuts {
		s := walnutStatus{
			Path:  w.Path,
			Type:  w.Key.Type,
			Goal:  w.Key.Goal,
			Phase: w.Now.Phase,
			Next:  w.Now.Next,
			Tags:  w.Key.Tags,
		}
		if w.Err != nil {
			s.Error = w.Err.Error()
		}
		statuses = append(statuses, s)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal walnuts: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(formatWalnuts(statuses))
	return nil
}

func formatWalnuts(statuses []walnutStatus) string {
	if len(statuses) == 0 {
		return "No walnuts found.\n"
	}

	width := len("PATH")
	for _, s := range statuses {
		width = max(width, len(s.Path))
	}

	var b strings.Builder
	header := lipgloss.NewStyle().Bold(true)
	fmt.Fprintf(&b, "%s\n", header.Render(fmt.Sprintf("%-*s  %-10s  %-8s  %s", width, "PATH", "TYPE", "PHASE", "NEXT")))
	for _, s := range statuses {
		if s.Error != "" {
			fmt.Fprintf(&b, "%-*s  %s\n", width, s.Path, errorStyle.Render("✗ "+s.Error))
			continue
		}
		fmt.Fprintf(&b, "%-*s  %-10s  %-8s  %s\n", width, s.Path, s.Type, s.Phase, s.Next)
	}
	return b.String()
}
