package handlers

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/mattn/go-isatty"
)

// newLogger returns a logger writing to w at the given verbosity. Zero
// verbosity discards everything; the report on stdout is the output.
func newLogger(w io.Writer, verbosity int) logr.Logger {
	if verbosity <= 0 {
		return logr.Discard()
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{
		Verbosity:    verbosity - 1,
		LogTimestamp: true,
	}).WithName("walnut")
}

// isTerminal reports whether stdout is an interactive terminal.
func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
