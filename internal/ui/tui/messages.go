// Package tui provides a Bubble Tea progress view for building a World.
package tui

import "github.com/alivecomputer/setup/internal/provisioning"

// PhaseMsg reports that the pipeline entered or finished a phase.
type PhaseMsg struct {
	Phase provisioning.Phase
	Done  bool
}

// StepMsg reports a resolved step.
type StepMsg struct {
	Label  string
	Failed bool
	Manual bool
}

// ProgressMsg reports the position in the step list.
type ProgressMsg struct {
	Current int
	Total   int
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// DoneMsg signals that the run is complete.
type DoneMsg struct {
	Result *provisioning.Result
}
