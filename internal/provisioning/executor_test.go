package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor() (*Executor, *EventLog, *Fallbacks, *MockObserver) {
	log := &EventLog{}
	fallbacks := &Fallbacks{}
	obs := NewMockObserver()
	return NewExecutor(log, fallbacks, obs), log, fallbacks, obs
}

func TestExecute_Success(t *testing.T) {
	t.Parallel()
	e, log, fallbacks, _ := newTestExecutor()

	outcome := e.Execute(context.Background(), "writing settings.json...", "claude code configuration",
		func(context.Context) (string, error) { return "", nil }, "# create manually")

	assert.Equal(t, OutcomeSuccess, outcome)
	want := []Entry{
		{Text: "writing settings.json...", Category: CategoryActive},
		{Text: "claude code configuration", Category: CategoryExplain},
		{Text: "done", Category: CategorySuccess},
	}
	if diff := cmp.Diff(want, log.Entries()); diff != "" {
		t.Errorf("event log mismatch (-want +got):\n%s", diff)
	}
	assert.Zero(t, fallbacks.Len())
	assert.False(t, e.HasFallbacks())
}

func TestExecute_SuccessMessage(t *testing.T) {
	t.Parallel()
	e, log, _, _ := newTestExecutor()

	e.Execute(context.Background(), "checking node...", "explain",
		func(context.Context) (string, error) { return "node found", nil }, "brew install node")

	assert.Equal(t, Entry{Text: "node found", Category: CategorySuccess}, log.Entries()[2])
}

func TestExecute_Failure(t *testing.T) {
	t.Parallel()
	e, log, fallbacks, obs := newTestExecutor()

	outcome := e.Execute(context.Background(), "creating ALIVE folders...", "five domains",
		func(context.Context) (string, error) { return "", errors.New("permission denied") }, "mkdir -p world")

	assert.Equal(t, OutcomeFallback, outcome)
	want := []Entry{
		{Text: "creating ALIVE folders...", Category: CategoryActive},
		{Text: "five domains", Category: CategoryExplain},
		{Text: DefaultSkipMessage, Category: CategorySkip},
		{Text: "mkdir -p world", Category: CategoryCommand},
	}
	if diff := cmp.Diff(want, log.Entries()); diff != "" {
		t.Errorf("event log mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"mkdir -p world"}, fallbacks.Commands())
	assert.True(t, e.HasFallbacks())

	failed := obs.EventsOfType(EventStepFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "permission denied", failed[0].Message)
}

func TestExecute_RecoversPanic(t *testing.T) {
	t.Parallel()
	e, log, fallbacks, _ := newTestExecutor()

	assert.NotPanics(t, func() {
		outcome := e.Execute(context.Background(), "label", "explain",
			func(context.Context) (string, error) { panic("boom") }, "fallback")
		assert.Equal(t, OutcomeFallback, outcome)
	})
	assert.Equal(t, CategoryCommand, log.Entries()[3].Category)
	assert.Equal(t, []string{"fallback"}, fallbacks.Commands())
}

func TestExecute_NilAction(t *testing.T) {
	t.Parallel()
	e, _, fallbacks, _ := newTestExecutor()

	assert.Equal(t, OutcomeFallback, e.Execute(context.Background(), "label", "explain", nil, "fallback"))
	assert.Equal(t, 1, fallbacks.Len())
}

func TestExecute_CancelledContextSkipsAction(t *testing.T) {
	t.Parallel()
	e, _, fallbacks, _ := newTestExecutor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	outcome := e.Execute(ctx, "label", "explain", func(context.Context) (string, error) {
		called = true
		return "", nil
	}, "fallback")

	assert.False(t, called)
	assert.Equal(t, OutcomeFallback, outcome)
	assert.Equal(t, []string{"fallback"}, fallbacks.Commands())
}

func TestExecute_SkipMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "action failed with own message",
			err:  &ActionFailedError{Action: "install node", Skip: "install failed. paste this into terminal:", Err: errors.New("exit 1")},
			want: "install failed. paste this into terminal:",
		},
		{
			name: "action failed without message",
			err:  &ActionFailedError{Action: "install node", Err: errors.New("exit 1")},
			want: DefaultSkipMessage,
		},
		{
			name: "dependency missing",
			err:  &DependencyMissingError{Tool: "node", Requires: "homebrew"},
			want: "needs homebrew first. after installing homebrew, run:",
		},
		{
			name: "wrapped",
			err:  errors.Join(errors.New("context"), &ManualStepError{Message: "run this later:"}),
			want: "run this later:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, log, _, _ := newTestExecutor()
			e.Execute(context.Background(), "label", "explain",
				func(context.Context) (string, error) { return "", tt.err }, "fallback")

			assert.Equal(t, Entry{Text: tt.want, Category: CategorySkip}, log.Entries()[2])
		})
	}
}

func TestExecute_DependencyQueuesPrerequisiteOnce(t *testing.T) {
	t.Parallel()
	e, log, fallbacks, _ := newTestExecutor()
	missing := func(context.Context) (string, error) {
		return "", &DependencyMissingError{Tool: "node", Requires: "homebrew", Fallback: "install-brew"}
	}

	e.Execute(context.Background(), "checking node...", "explain", missing, "brew install node")
	e.Execute(context.Background(), "checking node again...", "explain", missing, "brew install node --force")

	assert.Equal(t, []string{"install-brew", "brew install node", "brew install node --force"}, fallbacks.Commands())
	assert.Equal(t, []string{
		"checking node...", "explain", "needs homebrew first. after installing homebrew, run:", "install-brew", "brew install node",
		"checking node again...", "explain", "needs homebrew first. after installing homebrew, run:", "brew install node --force",
	}, texts(log.Entries()))
}

func TestExecute_ManualStepIsNotAFailure(t *testing.T) {
	t.Parallel()
	e, _, fallbacks, obs := newTestExecutor()

	outcome := e.Execute(context.Background(), "walnut plugin...", "explain",
		manual("run this in terminal after claude code is installed:"), PluginCommand)

	assert.Equal(t, OutcomeManual, outcome)
	assert.False(t, e.HasFallbacks())
	assert.Equal(t, []string{PluginCommand}, fallbacks.Commands())
	assert.Len(t, obs.EventsOfType(EventStepManual), 1)
	assert.Empty(t, obs.EventsOfType(EventStepFailed))
}
