package provisioning

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureObserver(verbosity int) (*LogrObserver, *[]string) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, strings.TrimSpace(prefix+" "+args))
	}, funcr.Options{Verbosity: verbosity})
	return NewLogrObserver(logger), &lines
}

func TestLogrObserver_Printf(t *testing.T) {
	t.Parallel()
	obs, lines := captureObserver(0)

	obs.Printf("building %s", "world")

	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], `"msg"="building world"`)
}

func TestLogrObserver_EventVerbosity(t *testing.T) {
	t.Parallel()
	obs, lines := captureObserver(0)

	LogPhaseStart(obs, PhaseWalnuts)
	obs.Event(Event{Type: EventStepSucceeded, Resource: "creating life walnut...", Message: "done"})
	LogStepFailed(obs, "checking node...", errors.New("exit status 1"))

	require.Len(t, *lines, 2, "step successes are only logged at V(1)")
	assert.Contains(t, (*lines)[0], `"msg"="Creating walnuts..."`)
	assert.Contains(t, (*lines)[0], `"phase"="walnuts"`)
	assert.Contains(t, (*lines)[1], `"type"="step.failed"`)
	assert.Contains(t, (*lines)[1], `"resource"="checking node..."`)
	assert.Contains(t, (*lines)[1], `"msg"="exit status 1"`)
}

func TestLogrObserver_FieldsAreSorted(t *testing.T) {
	t.Parallel()
	obs, lines := captureObserver(1)

	obs.WithFields(map[string]string{"run": "abc", "config": "world.yaml"}).
		Event(Event{
			Type:      EventFileSkipped,
			Message:   "kept",
			Timestamp: fixedNow,
			Fields:    map[string]string{"b": "2", "a": "1"},
		})

	require.Len(t, *lines, 1)
	line := (*lines)[0]
	assert.Less(t, strings.Index(line, `"config"`), strings.Index(line, `"run"`))
	assert.Less(t, strings.Index(line, `"a"="1"`), strings.Index(line, `"b"="2"`))
	assert.Contains(t, line, `"at"="2026-03-14T09:26:53Z"`)
}

func TestLogrObserver_Progress(t *testing.T) {
	t.Parallel()
	obs, lines := captureObserver(1)

	obs.Progress("system", 1, 4)
	obs.Progress("system", 0, 0)

	require.Len(t, *lines, 2)
	assert.Contains(t, (*lines)[0], `"percent"=25`)
	assert.NotContains(t, (*lines)[1], "percent")
}

func TestLogPhaseComplete(t *testing.T) {
	t.Parallel()
	obs := NewMockObserver()

	LogPhaseComplete(obs, PhaseSystem, 1234567*time.Microsecond)

	events := obs.EventsOfType(EventPhaseCompleted)
	require.Len(t, events, 1)
	assert.Equal(t, "system", events[0].Phase)
	assert.Equal(t, "completed in 1.235s", events[0].Message)
}

func TestPhaseTitle(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Checking system...", PhaseSystem.Title())
	assert.Equal(t, "Final steps...", PhasePlugin.Title())
	assert.Equal(t, "Final steps...", PhaseSummary.Title())
	assert.Equal(t, "Done", PhaseDone.Title())
	assert.Equal(t, "custom", Phase("custom").Title())
}
