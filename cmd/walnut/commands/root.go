// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the walnut CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "walnut",
		Short:         "Build your World of walnuts for AI agents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Build())
	cmd.AddCommand(Render())
	cmd.AddCommand(Walnuts())

	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
