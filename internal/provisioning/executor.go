package provisioning

import (
	"context"
	"errors"
	"fmt"
)

// DefaultSkipMessage is shown when a failure carries no skip line of its own.
const DefaultSkipMessage = "couldn't do this automatically — copy this command instead:"

// Outcome is how a step resolved.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFallback Outcome = "fallback"
	OutcomeManual   Outcome = "manual"
)

// Executor runs step actions under the try-or-fallback contract: an action
// either succeeds or leaves a fallback command behind. Nothing escapes.
type Executor struct {
	log       *EventLog
	fallbacks *Fallbacks
	observer  Observer
	failed    bool
}

// NewExecutor creates an executor appending to log and fallbacks.
func NewExecutor(log *EventLog, fallbacks *Fallbacks, observer Observer) *Executor {
	if observer == nil {
		observer = NewDiscardObserver()
	}
	return &Executor{log: log, fallbacks: fallbacks, observer: observer}
}

// Execute logs label and explain, runs action once and reports how it went.
//
// On failure it logs a skip line and the fallback command and queues the
// command. A DependencyMissingError also queues the prerequisite's command
// first unless it is already queued. Panics and context errors count as
// failures. Execute never returns an error and never panics.
func (e *Executor) Execute(ctx context.Context, label, explain string, action Action, fallback string) Outcome {
	e.log.Append(label, CategoryActive)
	e.log.Append(explain, CategoryExplain)

	msg, err := invoke(ctx, action)
	if err == nil {
		if msg == "" {
			msg = "done"
		}
		e.log.Append(msg, CategorySuccess)
		e.observer.Event(Event{Type: EventStepSucceeded, Resource: label, Message: msg})
		return OutcomeSuccess
	}

	skip := DefaultSkipMessage
	var s skipper
	if errors.As(err, &s) && s.SkipMessage() != "" {
		skip = s.SkipMessage()
	}
	e.log.Append(skip, CategorySkip)

	var dep *DependencyMissingError
	if errors.As(err, &dep) && dep.Fallback != "" && !e.fallbacks.Contains(dep.Fallback) {
		e.queue(dep.Fallback)
	}
	e.queue(fallback)

	var manual *ManualStepError
	if errors.As(err, &manual) {
		e.observer.Event(Event{Type: EventStepManual, Resource: label, Message: fallback})
		return OutcomeManual
	}

	LogStepFailed(e.observer, label, err)
	e.failed = true
	return OutcomeFallback
}

// HasFallbacks reports whether any automated step has failed so far.
func (e *Executor) HasFallbacks() bool {
	return e.failed
}

func (e *Executor) queue(command string) {
	e.log.Append(command, CategoryCommand)
	e.fallbacks.Add(command)
}

// invoke runs action once, converting a panic into an error.
func invoke(ctx context.Context, action Action) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg, err = "", fmt.Errorf("action panicked: %v", r)
		}
	}()

	if action == nil {
		return "", errors.New("step has no action")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return action(ctx)
}
