package provisioning

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alivecomputer/setup/internal/util/naming"
)

// Result is everything a finished run leaves behind.
type Result struct {
	// HasFallbacks is true iff an automated step failed.
	HasFallbacks bool

	Events    []Entry
	Fallbacks []string

	// Walnuts lists the created walnuts relative to the World root.
	Walnuts []string

	// World is the resolved World root.
	World string
}

// Joined returns every fallback command on its own line.
func (r *Result) Joined() string {
	return strings.Join(r.Fallbacks, "\n")
}

// Headline summarizes what is left for the user to do.
func (r *Result) Headline() string {
	if r.HasFallbacks {
		return "Some things need terminal. Copy the commands below — paste them in order."
	}
	return "Almost everything's set up. Just the final steps in terminal."
}

// Pipeline interprets the step script of a run.
type Pipeline struct {
	phase atomic.Value
}

// NewPipeline creates a pipeline that has not started yet.
func NewPipeline() *Pipeline {
	p := &Pipeline{}
	p.phase.Store(Phase(""))
	return p
}

// Phase returns the phase the pipeline is in. Safe to call while Run is
// in progress on another goroutine.
func (p *Pipeline) Phase() Phase {
	phase, _ := p.phase.Load().(Phase)
	return phase
}

// Run executes every step in order and always reaches PhaseDone.
func (p *Pipeline) Run(c *Context) *Result {
	start := time.Now()

	var current Phase
	var phaseStart time.Time
	enter := func(next Phase) {
		if current != "" {
			LogPhaseComplete(c.Observer, current, time.Since(phaseStart))
		}
		current, phaseStart = next, time.Now()
		p.phase.Store(next)
		if next != PhaseDone {
			LogPhaseStart(c.Observer, next)
		}
	}

	enter(PhaseSystem)
	c.resolveWorld()
	steps := BuildSteps(c)
	c.Observer.Printf("Building World at %s with %d steps", c.World, len(steps))

	for i, step := range steps {
		if step.Phase != current {
			enter(step.Phase)
		}
		c.Observer.Progress(string(step.Phase), i+1, len(steps))

		ctx, cancel := c.stepContext(step.Timeout)
		stepStart := time.Now()
		outcome := c.Executor.Execute(ctx, step.Label, step.Explain, step.Action, step.Fallback)
		cancel()
		c.Recorder.StepFinished(string(step.Phase), outcome, time.Since(stepStart))
	}

	enter(PhaseSummary)
	c.summarize()
	enter(PhaseDone)

	result := &Result{
		HasFallbacks: c.Executor.HasFallbacks(),
		Events:       c.Log.Entries(),
		Fallbacks:    c.Fallbacks.Commands(),
		Walnuts:      append([]string(nil), c.walnuts...),
		World:        c.World,
	}
	c.Recorder.RunFinished(result.HasFallbacks, len(result.Fallbacks), time.Since(start))
	c.Observer.Printf("World ready in %v", time.Since(start).Round(time.Millisecond))
	return result
}

// resolveWorld settles Home and World. World is always absolute; relative
// paths resolve against the working directory. Without a home directory the
// World is ./world and no shortcut is created.
func (c *Context) resolveWorld() {
	c.Home = c.Config.Home
	if c.Home == "" {
		ctx, cancel := c.stepContext(c.Timeouts.Filesystem)
		home, err := c.Bridge.HomeDirectory(ctx)
		cancel()
		if err != nil {
			LogStepFailed(c.Observer, "resolve home directory", err)
			c.Log.Append("couldn't find your home directory, building in ./world", CategoryError)
		} else {
			c.Home = home
		}
	}

	c.World = expandHome(c.Config.World, c.Home)
	if c.World == "" {
		c.World = filepath.Join(c.Home, naming.ShortcutName)
	}
	// The shortcut and every printed command need a path that does not
	// depend on the directory they are used from.
	if abs, err := filepath.Abs(c.World); err == nil {
		c.World = abs
	}
}

// walnutGuide explains the layout of a walnut once the World exists.
var walnutGuide = []string{
	"  _core/key.md     — what it is (people, specs, evergreen)",
	"  _core/now.md     — where it is right now (phase, next action)",
	"  _core/log.md     — where it's been (signed entries, prepend-only)",
	"  _core/insights.md — patterns and observations over time",
	"  _core/tasks.md   — active and completed tasks",
	"  _squirrels/      — session entries (yaml)",
	"  _working/        — drafts, saves, work in progress",
	"  _references/     — source material, attachments",
}

// summarize logs the walnut guide and the created walnuts, then queues the
// launch command as the final fallback.
func (c *Context) summarize() {
	c.Log.Append("", CategoryInfo)
	c.Log.Append("what's inside each walnut:", CategoryInfo)
	for _, line := range walnutGuide {
		c.Log.Append(line, CategoryExplain)
	}

	c.Log.Append("", CategoryInfo)
	plural := "s"
	if len(c.walnuts) == 1 {
		plural = ""
	}
	c.Log.Append(fmt.Sprintf("%d walnut%s created:", len(c.walnuts), plural), CategorySuccess)
	for _, w := range c.walnuts {
		c.Log.Append("  "+w, CategorySuccess)
	}

	c.Log.Append("", CategoryInfo)
	c.Fallbacks.Add(LaunchCommand)
	c.Log.Append("last step — open terminal and run:", CategoryInfo)
	c.Log.Append(LaunchCommand, CategoryCommand)
	c.Log.Append("", CategoryInfo)
	c.Log.Append("your squirrel already knows your name, your projects,", CategorySuccess)
	c.Log.Append("your people, and your goals. just start talking.", CategorySuccess)
}
