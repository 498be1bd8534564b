// Package metrics records provisioning runs as Prometheus metrics.
//
// Runs are short-lived, so nothing is served over HTTP. The registry is
// written once in the node-exporter textfile format when a run finishes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alivecomputer/setup/internal/provisioning"
)

const namespace = "walnut"

// Recorder implements provisioning.Recorder on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	stepsTotal       *prometheus.CounterVec
	stepDuration     *prometheus.HistogramVec
	fallbacksTotal   prometheus.Gauge
	runDuration      prometheus.Gauge
	runHasFallbacks  prometheus.Gauge
	lastRunTimestamp prometheus.Gauge

	now func() time.Time
}

var _ provisioning.Recorder = (*Recorder)(nil)

// NewRecorder creates a recorder with a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		now:      time.Now,

		stepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "step",
				Name:      "total",
				Help:      "Total number of pipeline steps by phase and outcome",
			},
			[]string{"phase", "outcome"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "step",
				Name:      "duration_seconds",
				Help:      "Duration of pipeline steps in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
			},
			[]string{"phase"},
		),
		fallbacksTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "fallback_commands",
			Help:      "Number of commands left for the user to run after the last run",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "duration_seconds",
			Help:      "Duration of the last run in seconds",
		}),
		runHasFallbacks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "has_fallbacks",
			Help:      "Whether an automated step of the last run failed (1) or not (0)",
		}),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "last_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}

	r.registry.MustRegister(
		r.stepsTotal,
		r.stepDuration,
		r.fallbacksTotal,
		r.runDuration,
		r.runHasFallbacks,
		r.lastRunTimestamp,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// StepFinished implements provisioning.Recorder.
func (r *Recorder) StepFinished(phase string, outcome provisioning.Outcome, duration time.Duration) {
	r.stepsTotal.WithLabelValues(phase, string(outcome)).Inc()
	r.stepDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RunFinished implements provisioning.Recorder.
func (r *Recorder) RunFinished(hasFallbacks bool, fallbacks int, duration time.Duration) {
	r.fallbacksTotal.Set(float64(fallbacks))
	r.runDuration.Set(duration.Seconds())
	if hasFallbacks {
		r.runHasFallbacks.Set(1)
	} else {
		r.runHasFallbacks.Set(0)
	}
	r.lastRunTimestamp.Set(float64(r.now().Unix()))
}

// WriteTextfile writes every metric to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
