package provisioning

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alivecomputer/setup/internal/templates"
	"github.com/alivecomputer/setup/internal/util/naming"
)

// Phase groups consecutive steps.
type Phase string

const (
	PhaseSystem   Phase = "system"
	PhaseScaffold Phase = "scaffold"
	PhaseIdentity Phase = "identity"
	PhaseWalnuts  Phase = "walnuts"
	PhasePlugin   Phase = "plugin"
	PhaseSummary  Phase = "summary"
	PhaseDone     Phase = "done"
)

// Title is the status line shown while the phase runs.
func (p Phase) Title() string {
	switch p {
	case PhaseSystem:
		return "Checking system..."
	case PhaseScaffold:
		return "Creating your World..."
	case PhaseIdentity:
		return "Writing core files..."
	case PhaseWalnuts:
		return "Creating walnuts..."
	case PhasePlugin, PhaseSummary:
		return "Final steps..."
	case PhaseDone:
		return "Done"
	}
	return string(p)
}

const (
	// PluginCommand installs the walnut plugin. It is never run automatically.
	PluginCommand = "claude plugin install alivecomputer/walnut"

	// LaunchCommand opens a session in the World. It is always the last
	// queued command.
	LaunchCommand = "cd ~/world && claude"
)

// Identity document and the files other agent tools read it from.
const (
	IdentityDoc    = "CLAUDE.md"
	SettingsDoc    = "settings.json"
	PreferencesDoc = "preferences.yaml"
	WorldConfigDoc = "world-config.yaml"
	AgentsDoc      = "AGENTS.md"
)

// AgentLinks are the World-root files pointing at the identity document.
var AgentLinks = []string{AgentsDoc, ".cursorrules", ".windsurfrules"}

// Step is one entry of the pipeline script.
type Step struct {
	Phase    Phase
	Label    string
	Explain  string
	Action   Action
	Fallback string

	// Timeout bounds the action. Zero means only the run context applies.
	Timeout time.Duration
}

// BuildSteps returns the script for c in execution order. World and Home
// must already be resolved.
func BuildSteps(c *Context) []Step {
	var steps []Step
	steps = append(steps, c.systemSteps()...)
	steps = append(steps, c.scaffoldSteps()...)
	steps = append(steps, c.identitySteps()...)
	steps = append(steps, c.walnutSteps()...)
	steps = append(steps, Step{
		Phase:    PhasePlugin,
		Label:    "walnut plugin...",
		Explain:  "the plugin adds skills and hooks to claude code",
		Action:   manual("run this in terminal after claude code is installed:"),
		Fallback: PluginCommand,
	})
	return steps
}

func (c *Context) systemSteps() []Step {
	steps := make([]Step, 0, len(c.Tools))
	for _, tool := range c.Tools {
		timeout := c.Timeouts.Probe
		if tool.Install != nil {
			timeout = c.Timeouts.Install
		}
		steps = append(steps, Step{
			Phase:    PhaseSystem,
			Label:    "checking " + tool.Display + "...",
			Explain:  tool.Description,
			Action:   c.Prober.Ensure(tool),
			Fallback: tool.Fallback,
			Timeout:  timeout,
		})
	}
	return steps
}

func (c *Context) scaffoldSteps() []Step {
	dirs := []string{
		naming.ArchiveDir,
		naming.PeopleDomain(),
		naming.InputsDir,
		naming.VenturesDir,
		naming.ExperimentsDir,
		naming.ConfigDir + "/" + naming.RulesDir,
	}
	paths := make([]string, 0, len(dirs))
	for _, d := range dirs {
		paths = append(paths, c.worldPath(d))
	}

	steps := []Step{{
		Phase:   PhaseScaffold,
		Label:   "creating ALIVE folders...",
		Explain: "five domains: archive, life, inputs, ventures, experiments",
		Action: func(ctx context.Context) (string, error) {
			return "", c.Scaffold.EnsureDirectories(ctx, paths)
		},
		Fallback: fmt.Sprintf(`mkdir -p "%s"/{%s}`, c.World, strings.Join(dirs, ",")),
		Timeout:  c.Timeouts.Filesystem,
	}}

	if c.Home == "" {
		return steps
	}
	shortcut := filepath.Join(c.Home, naming.ShortcutName)
	if filepath.Clean(c.World) == shortcut {
		return steps
	}
	return append(steps, Step{
		Phase:   PhaseScaffold,
		Label:   "creating ~/world shortcut...",
		Explain: "~/world will point to " + c.World,
		Action: func(ctx context.Context) (string, error) {
			err := c.Scaffold.Link(ctx, c.World, shortcut)
			if errors.Is(err, ErrWriteConflict) {
				return "~/world already exists", nil
			}
			return "", err
		},
		Fallback: fmt.Sprintf(`ln -s "%s" ~/world`, c.World),
		Timeout:  c.Timeouts.Filesystem,
	})
}

func (c *Context) identitySteps() []Step {
	configDir := c.worldPath(naming.ConfigDir)
	return []Step{
		{
			Phase:    PhaseIdentity,
			Label:    "writing CLAUDE.md...",
			Explain:  "this tells every squirrel who you are",
			Action:   c.writeIdentity,
			Fallback: "# create manually in " + filepath.Join(configDir, IdentityDoc),
			Timeout:  c.Timeouts.Filesystem,
		},
		c.documentStep("writing settings.json...", "claude code configuration",
			filepath.Join(configDir, SettingsDoc), templates.Settings(),
			"# create manually in "+filepath.Join(configDir, SettingsDoc)),
		c.documentStep("writing preferences.yaml...", "your customization file — edit anytime",
			filepath.Join(configDir, PreferencesDoc), templates.Preferences(c.Config),
			"# create preferences at "+filepath.Join(configDir, PreferencesDoc)),
		c.documentStep("writing world-config.yaml...", "world-level settings your squirrel reads on open",
			filepath.Join(configDir, WorldConfigDoc), templates.WorldConfig(c.Config, c.Now),
			"# create world-config at "+filepath.Join(configDir, WorldConfigDoc)),
	}
}

func (c *Context) writeIdentity(ctx context.Context) (string, error) {
	content := templates.Identity(c.Config, c.Now)
	target := c.worldPath(naming.ConfigDir, IdentityDoc)

	err := c.Scaffold.Create(ctx, target, content)
	switch {
	case errors.Is(err, ErrWriteConflict):
		c.Log.Append("CLAUDE.md already exists — kept yours", CategorySkip)
	case err != nil:
		return "", err
	}

	c.Log.Append("setting up multi-agent compatibility...", CategoryActive)
	c.Log.Append("one identity, every AI tool reads it", CategoryExplain)

	links := make([]string, 0, len(AgentLinks))
	for _, name := range AgentLinks {
		links = append(links, c.worldPath(name))
	}
	if failed := c.Scaffold.LinkOrCopy(ctx, target, links, content); failed == 0 {
		c.Log.Append(strings.Join(AgentLinks, ", ")+" created", CategorySuccess)
	}
	return "", nil
}

func (c *Context) documentStep(label, explain, path, content, fallback string) Step {
	return Step{
		Phase:   PhaseIdentity,
		Label:   label,
		Explain: explain,
		Action: func(ctx context.Context) (string, error) {
			wrote, err := c.Scaffold.WriteIfMissing(ctx, path, content)
			if err != nil {
				return "", err
			}
			if !wrote {
				return filepath.Base(path) + " already exists, kept yours", nil
			}
			return "", nil
		},
		Fallback: fallback,
		Timeout:  c.Timeouts.Filesystem,
	}
}

func (c *Context) walnutSteps() []Step {
	plan := PlanWalnuts(c.Config)
	steps := make([]Step, 0, len(plan))
	for _, w := range plan {
		dir := c.worldPath(w.Path)

		var label, explain, fallback string
		switch w.Walnut.Kind {
		case templates.KindLife:
			label = "creating life walnut..."
			explain = "the foundation — everything else serves this"
			fallback = "# life walnut at " + dir + "/"
		case templates.KindPerson:
			label = fmt.Sprintf("creating person: %s...", w.Walnut.Name)
			explain = w.Walnut.Relationship
			fallback = "# person at " + dir + "/"
		default:
			label = fmt.Sprintf("creating %s: %s...", w.Walnut.Kind, w.Walnut.Name)
			explain = w.Walnut.Goal
			fallback = fmt.Sprintf("# %s at %s/", w.Walnut.Kind, dir)
		}

		steps = append(steps, Step{
			Phase:    PhaseWalnuts,
			Label:    label,
			Explain:  explain,
			Action:   c.writeWalnut(w, dir),
			Fallback: fallback,
			Timeout:  c.Timeouts.Filesystem,
		})
	}
	return steps
}

func (c *Context) writeWalnut(w PlannedWalnut, dir string) Action {
	return func(ctx context.Context) (string, error) {
		dirs := w.Dirs()
		paths := make([]string, 0, len(dirs))
		for _, d := range dirs {
			paths = append(paths, filepath.Join(dir, d))
		}
		if err := c.Scaffold.EnsureDirectories(ctx, paths); err != nil {
			return "", err
		}

		docs := templates.Core(c.Config, w.Walnut, c.Now).Documents()
		if err := c.Scaffold.WriteDocuments(ctx, filepath.Join(dir, naming.CoreDir), docs); err != nil {
			return "", err
		}

		if w.Project != nil && w.Project.Codebase != "" {
			c.writeAgentContext(ctx, w)
		}

		c.walnuts = append(c.walnuts, w.Path)
		return "", nil
	}
}

// writeAgentContext drops a pointer back to the walnut into the project's
// codebase. A failure is reported but does not fail the walnut.
func (c *Context) writeAgentContext(ctx context.Context, w PlannedWalnut) {
	codebase := expandHome(w.Project.Codebase, c.Home)
	path := filepath.Join(codebase, AgentsDoc)

	if _, err := c.Scaffold.WriteIfMissing(ctx, path, templates.AgentContext(*w.Project, w.Path)); err != nil {
		LogFileSkipped(c.Observer, path, err)
		c.Log.Append("  couldn't write AGENTS.md to codebase — do it manually", CategorySkip)
		return
	}
	c.Log.Append("  AGENTS.md written to "+w.Project.Codebase, CategorySuccess)
}

func manual(message string) Action {
	return func(context.Context) (string, error) {
		return "", &ManualStepError{Message: message}
	}
}

// worldPath joins slash-separated elements onto the World root.
func (c *Context) worldPath(elem ...string) string {
	parts := make([]string, 0, len(elem)+1)
	parts = append(parts, c.World)
	for _, e := range elem {
		parts = append(parts, filepath.FromSlash(e))
	}
	return filepath.Join(parts...)
}

// expandHome resolves a leading "~/" against home.
func expandHome(p, home string) string {
	if home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return p
}
