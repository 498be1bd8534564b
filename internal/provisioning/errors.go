package provisioning

import (
	"errors"
	"fmt"
)

// ErrWriteConflict reports that a document was not written because the
// target already exists. It is never a step failure.
var ErrWriteConflict = errors.New("target already exists")

// skipper is implemented by failures that carry their own skip line.
type skipper interface {
	SkipMessage() string
}

// DependencyMissingError reports that an install was not attempted
// because the tool it relies on is absent.
type DependencyMissingError struct {
	Tool     string // tool that could not be installed
	Requires string // catalog tool that has to be installed first

	// Fallback is the prerequisite's own command. It is queued ahead of the
	// tool's command unless it is already queued.
	Fallback string
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("%s needs %s first", e.Tool, e.Requires)
}

// SkipMessage implements skipper.
func (e *DependencyMissingError) SkipMessage() string {
	return fmt.Sprintf("needs %s first. after installing %s, run:", e.Requires, e.Requires)
}

// ActionFailedError wraps the cause of a failed automated action.
type ActionFailedError struct {
	Action string
	Skip   string // skip line shown to the user; empty means the default
	Err    error
}

func (e *ActionFailedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *ActionFailedError) Unwrap() error {
	return e.Err
}

// SkipMessage implements skipper.
func (e *ActionFailedError) SkipMessage() string {
	return e.Skip
}

// LinkUnsupportedError reports that a symlink could not be created. The
// scaffolder answers it by copying the content instead.
type LinkUnsupportedError struct {
	Link string
	Err  error
}

func (e *LinkUnsupportedError) Error() string {
	return fmt.Sprintf("symlink %s: %v", e.Link, e.Err)
}

func (e *LinkUnsupportedError) Unwrap() error {
	return e.Err
}

// ManualStepError marks a step that is never automated. Its command is
// queued like any fallback, but it does not count as a failure.
type ManualStepError struct {
	Message string
}

func (e *ManualStepError) Error() string {
	return "manual step: " + e.Message
}

// SkipMessage implements skipper.
func (e *ManualStepError) SkipMessage() string {
	return e.Message
}
