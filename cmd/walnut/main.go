// Package main is the entry point for the walnut CLI.
//
// walnut builds a World: a folder of plain-text walnuts that every AI
// coding agent reads as shared memory. It checks the host for the tools
// the agent needs, scaffolds the World and writes the identity and walnut
// documents. Anything it cannot do is handed back as a command to paste.
//
// Commands: build, render, walnuts, version, completion.
//
// For detailed usage information, run:
//
//	walnut --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alivecomputer/setup/cmd/walnut/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Ctrl-C cancels the run: steps not yet started end as commands to paste.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
