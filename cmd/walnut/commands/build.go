package commands

import (
	"github.com/spf13/cobra"

	"github.com/alivecomputer/setup/cmd/walnut/handlers"
)

// Build returns the command that provisions a World.
//
// Optional flags:
//
//	--config, -c: Path to the World configuration (default: auto-detect world.yaml)
//	--name, --world, --theme: Override configuration values
//	--yes, -y: Skip the confirmation prompt
//	-v: Log progress to stderr (repeat for more detail)
//	--commands-file: Save the commands left to paste
//	--metrics-file: Save run metrics in Prometheus text format
func Build() *cobra.Command {
	var opts handlers.BuildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build your World",
		Long: `Build a World from world.yaml.

The build checks for Homebrew, Node.js and Claude Code, installs what is
missing, creates the World folders, writes CLAUDE.md and one walnut for
your life, each project and each person. Files that already exist are
never overwritten, so running it again is safe.

Nothing aborts the build. Every step that cannot be done automatically
prints the terminal command to do it by hand.

Examples:
  # Build from ./world.yaml
  walnut build

  # Build a bare World without a configuration file
  walnut build --name Ana --yes

  # Keep the commands you still need to run
  walnut build --commands-file commands.sh`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Build(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: world.yaml)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Your name (overrides the configuration)")
	cmd.Flags().StringVar(&opts.World, "world", "", "Where to build the World (default: ~/world)")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "Interface theme: light or dark")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Build without asking for confirmation")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Log progress to stderr (repeat for more detail)")
	cmd.Flags().StringVar(&opts.CommandsFile, "commands-file", "", "Write the commands left to paste to this file")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write run metrics to this file")

	return cmd
}
