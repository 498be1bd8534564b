package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alivecomputer/setup/internal/provisioning"
)

func TestRecorder_StepFinished(t *testing.T) {
	t.Parallel()
	r := NewRecorder()

	r.StepFinished("system", provisioning.OutcomeFallback, 20*time.Millisecond)
	r.StepFinished("system", provisioning.OutcomeSuccess, time.Millisecond)
	r.StepFinished("walnuts", provisioning.OutcomeSuccess, time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(r.stepsTotal.WithLabelValues("system", "fallback")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.stepsTotal.WithLabelValues("walnuts", "success")))
	assert.Equal(t, 3, testutil.CollectAndCount(r.stepsTotal))
	assert.Equal(t, 2, testutil.CollectAndCount(r.stepDuration))
}

func TestRecorder_RunFinished(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.now = func() time.Time { return time.Unix(1773480413, 0) }

	r.RunFinished(true, 4, 1500*time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(r.runHasFallbacks))
	assert.Equal(t, float64(4), testutil.ToFloat64(r.fallbacksTotal))
	assert.Equal(t, 1.5, testutil.ToFloat64(r.runDuration))
	assert.Equal(t, float64(1773480413), testutil.ToFloat64(r.lastRunTimestamp))

	r.RunFinished(false, 2, time.Second)
	assert.Equal(t, float64(0), testutil.ToFloat64(r.runHasFallbacks))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.StepFinished("identity", provisioning.OutcomeSuccess, time.Millisecond)
	r.RunFinished(false, 2, time.Second)

	path := filepath.Join(t.TempDir(), "walnut.prom")
	require.NoError(t, r.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, `walnut_step_total{outcome="success",phase="identity"} 1`)
	assert.Contains(t, text, "walnut_run_fallback_commands 2")
	assert.True(t, strings.Contains(text, "# HELP walnut_run_has_fallbacks"))
}
