package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alivecomputer/setup/internal/provisioning"
)

// sender is the part of *tea.Program the observer needs.
type sender interface {
	Send(msg tea.Msg)
}

// Observer forwards run events to the progress view and to an inner
// observer.
type Observer struct {
	inner provisioning.Observer
	to    sender
}

// NewObserver creates an observer that sends progress to to. A nil inner
// observer discards log output.
func NewObserver(to sender, inner provisioning.Observer) *Observer {
	if inner == nil {
		inner = provisioning.NewDiscardObserver()
	}
	return &Observer{inner: inner, to: to}
}

// Printf implements provisioning.Logger.
func (o *Observer) Printf(format string, v ...any) {
	o.inner.Printf(format, v...)
}

// Event implements provisioning.Observer.
func (o *Observer) Event(event provisioning.Event) {
	o.inner.Event(event)

	switch event.Type {
	case provisioning.EventPhaseStarted:
		o.to.Send(PhaseMsg{Phase: provisioning.Phase(event.Phase)})
	case provisioning.EventPhaseCompleted:
		o.to.Send(PhaseMsg{Phase: provisioning.Phase(event.Phase), Done: true})
	case provisioning.EventStepSucceeded:
		o.to.Send(StepMsg{Label: event.Resource})
	case provisioning.EventStepFailed:
		o.to.Send(StepMsg{Label: event.Resource, Failed: true})
	case provisioning.EventStepManual:
		o.to.Send(StepMsg{Label: event.Resource, Manual: true})
	}
}

// Progress implements provisioning.Observer.
func (o *Observer) Progress(phase string, current, total int) {
	o.inner.Progress(phase, current, total)
	o.to.Send(ProgressMsg{Current: current, Total: total})
}

// WithFields implements provisioning.Observer.
func (o *Observer) WithFields(fields map[string]string) provisioning.Observer {
	return &Observer{inner: o.inner.WithFields(fields), to: o.to}
}
