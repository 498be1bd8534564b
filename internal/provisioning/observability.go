package provisioning

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/go-logr/logr"
)

// Logger is the minimal printf-style logging interface.
type Logger interface {
	Printf(format string, v ...any)
}

// Observer defines the interface for structured observability during a run.
// It never feeds the Event Log; the Event Log is the user-facing timeline,
// the Observer is the operator-facing one.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured run event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "system", "walnuts")
	Message   string            // Human-readable message
	Resource  string            // Step label or path if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of run event.
type EventType string

const (
	// EventPhaseStarted indicates a phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates every step of a phase has resolved.
	EventPhaseCompleted EventType = "phase.completed"

	// EventStepSucceeded indicates a step's action completed.
	EventStepSucceeded EventType = "step.succeeded"
	// EventStepFailed indicates a step fell back to a manual command.
	EventStepFailed EventType = "step.failed"
	// EventStepManual indicates a step that is never automated.
	EventStepManual EventType = "step.manual"

	// EventFileSkipped indicates a file operation was skipped or failed
	// inside a step that still succeeded.
	EventFileSkipped EventType = "file.skipped"

	// EventProgress indicates progress through the step list.
	EventProgress EventType = "progress"
)

// LogrObserver implements Observer on top of a logr.Logger.
type LogrObserver struct {
	logger logr.Logger
}

// NewLogrObserver creates an observer writing to logger.
func NewLogrObserver(logger logr.Logger) *LogrObserver {
	return &LogrObserver{logger: logger}
}

// NewDiscardObserver creates an observer that drops everything.
func NewDiscardObserver() *LogrObserver {
	return NewLogrObserver(logr.Discard())
}

// Printf implements Logger.
func (o *LogrObserver) Printf(format string, v ...any) {
	o.logger.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer. Step-level events are logged at V(1).
func (o *LogrObserver) Event(event Event) {
	kv := []any{"type", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	if !event.Timestamp.IsZero() {
		kv = append(kv, "at", event.Timestamp.UTC().Format(time.RFC3339))
	}
	for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
		kv = append(kv, k, event.Fields[k])
	}

	logger := o.logger
	switch event.Type {
	case EventPhaseStarted, EventPhaseCompleted, EventStepFailed:
	default:
		logger = logger.V(1)
	}
	logger.Info(event.Message, kv...)
}

// Progress implements Observer.
func (o *LogrObserver) Progress(phase string, current, total int) {
	if total == 0 {
		o.logger.V(1).Info("progress", "phase", phase, "current", current, "total", total)
		return
	}
	percentage := (current * 100) / total
	o.logger.V(1).Info("progress", "phase", phase, "current", current, "total", total, "percent", percentage)
}

// WithFields implements Observer.
func (o *LogrObserver) WithFields(fields map[string]string) Observer {
	kv := make([]any, 0, 2*len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		kv = append(kv, k, fields[k])
	}
	return &LogrObserver{logger: o.logger.WithValues(kv...)}
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase Phase) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   string(phase),
		Message: phase.Title(),
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase Phase, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   string(phase),
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogStepFailed logs the cause of a failed step. The Event Log only ever
// shows the fallback command.
func LogStepFailed(observer Observer, label string, err error) {
	observer.Event(Event{
		Type:     EventStepFailed,
		Resource: label,
		Message:  err.Error(),
	})
}

// LogFileSkipped logs a file that was kept or could not be written inside
// an otherwise successful step.
func LogFileSkipped(observer Observer, path string, err error) {
	observer.Event(Event{
		Type:     EventFileSkipped,
		Resource: path,
		Message:  err.Error(),
	})
}
