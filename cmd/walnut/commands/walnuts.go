package commands

import (
	"github.com/spf13/cobra"

	"github.com/alivecomputer/setup/cmd/walnut/handlers"
)

// Walnuts returns the command that lists the walnuts of a World.
func Walnuts() *cobra.Command {
	var world string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "walnuts",
		Short: "List the walnuts of a World",
		Long: `List every walnut of an existing World with its type, phase and next action.

Examples:
  # List ~/world
  walnut walnuts

  # List another World as JSON
  walnut walnuts --world /data/world --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Walnuts(cmd.Context(), world, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&world, "world", "", "World root (default: ~/world)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
