package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/alivecomputer/setup/cmd/walnut/handlers"
)

// Render returns the command that prints one generated document.
func Render() *cobra.Command {
	var opts handlers.RenderOptions

	cmd := &cobra.Command{
		Use:   "render DOCUMENT",
		Short: "Print a generated document without writing it",
		Long: `Print one of the documents a build would write.

Documents: ` + strings.Join(handlers.RenderableDocuments(), ", ") + `

Per-walnut documents (key, now, log, insights, tasks, agents) are rendered
for the Life walnut unless --walnut names another one.

Examples:
  # Preview CLAUDE.md
  walnut render identity

  # Preview a project's key document
  walnut render key --walnut Moonbeam

  # Render with a fixed timestamp
  walnut render now --at 2026-01-01T09:00:00Z`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: handlers.RenderableDocuments(),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Document = args[0]
			return handlers.Render(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: world.yaml)")
	cmd.Flags().StringVar(&opts.Walnut, "walnut", "", "Walnut name or path inside the World (default: life)")
	cmd.Flags().StringVar(&opts.At, "at", "", "Timestamp to render with, RFC 3339 (default: now)")

	return cmd
}
