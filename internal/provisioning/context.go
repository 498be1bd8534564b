package provisioning

import (
	"context"
	"time"

	"github.com/alivecomputer/setup/internal/config"
	"github.com/alivecomputer/setup/internal/util/prerequisites"
)

// Context wraps all dependencies and run-scoped state needed by the steps.
// One Context belongs to exactly one run.
type Context struct {
	context.Context
	Config   *config.Configuration
	Bridge   Bridge
	Observer Observer
	Recorder Recorder
	Timeouts *config.Timeouts
	Tools    []prerequisites.Tool

	// Now is the timestamp rendered into every document of the run.
	Now time.Time

	Log       *EventLog
	Fallbacks *Fallbacks
	Executor  *Executor
	Scaffold  *Scaffolder
	Prober    *Prober

	// Home and World are resolved when the pipeline starts.
	Home  string
	World string

	walnuts []string
}

// Option customizes a Context.
type Option func(*Context)

// WithObserver sets the observer used for operator-facing logs.
func WithObserver(o Observer) Option {
	return func(c *Context) { c.Observer = o }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Context) { c.Recorder = r }
}

// WithTimeouts sets the per-step time budgets.
func WithTimeouts(t *config.Timeouts) Option {
	return func(c *Context) { c.Timeouts = t }
}

// WithClock fixes the timestamp rendered into documents.
func WithClock(now time.Time) Option {
	return func(c *Context) { c.Now = now }
}

// WithTools replaces the prerequisite catalog.
func WithTools(tools []prerequisites.Tool) Option {
	return func(c *Context) { c.Tools = tools }
}

// NewContext creates a new run context.
func NewContext(ctx context.Context, cfg *config.Configuration, bridge Bridge, opts ...Option) *Context {
	c := &Context{
		Context:   ctx,
		Config:    cfg,
		Bridge:    bridge,
		Observer:  NewDiscardObserver(),
		Recorder:  nopRecorder{},
		Timeouts:  config.LoadTimeouts(),
		Tools:     prerequisites.DefaultTools(),
		Now:       time.Now(),
		Log:       &EventLog{},
		Fallbacks: &Fallbacks{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Observer == nil {
		c.Observer = NewDiscardObserver()
	}
	if c.Recorder == nil {
		c.Recorder = nopRecorder{}
	}
	if c.Timeouts == nil {
		c.Timeouts = config.LoadTimeouts()
	}

	c.Executor = NewExecutor(c.Log, c.Fallbacks, c.Observer)
	c.Scaffold = NewScaffolder(bridge, c.Log, c.Observer)
	c.Prober = NewProber(bridge, c.Tools)
	return c
}

// stepContext derives the context a single step runs under.
func (c *Context) stepContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Context)
	}
	return context.WithTimeout(c.Context, timeout)
}
