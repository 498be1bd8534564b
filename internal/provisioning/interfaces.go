package provisioning

import (
	"context"
	"time"
)

// Bridge is the set of host operations a run needs. Every call may block
// and honors ctx where the host allows it.
type Bridge interface {
	// Probe reports whether tool is available on the host.
	Probe(ctx context.Context, tool string) bool

	// Run executes a command and waits for it to finish.
	Run(ctx context.Context, name string, args ...string) error

	// EnsureDirectories creates every directory in paths, parents included.
	// Existing directories are not an error.
	EnsureDirectories(ctx context.Context, paths []string) error

	// WriteIfMissing writes content to path unless a file already exists
	// there. It reports whether a write happened.
	WriteIfMissing(ctx context.Context, path, content string) (bool, error)

	// CreateSymlink creates link pointing at target. It returns false
	// without an error when something already exists at link.
	CreateSymlink(ctx context.Context, target, link string) (bool, error)

	// HomeDirectory returns the current user's home directory.
	HomeDirectory(ctx context.Context) (string, error)
}

// Action is the automated part of a step. The returned message replaces
// the default "done" success line when non-empty.
type Action func(ctx context.Context) (string, error)

// Recorder receives run measurements. Implemented by internal/metrics.
type Recorder interface {
	// StepFinished is called once per step with its outcome.
	StepFinished(phase string, outcome Outcome, duration time.Duration)

	// RunFinished is called once when the pipeline reaches Done.
	RunFinished(hasFallbacks bool, fallbacks int, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) StepFinished(string, Outcome, time.Duration) {}
func (nopRecorder) RunFinished(bool, int, time.Duration)        {}
