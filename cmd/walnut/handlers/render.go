package handlers

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/alivecomputer/setup/internal/config"
	"github.com/alivecomputer/setup/internal/provisioning"
	"github.com/alivecomputer/setup/internal/templates"
)

// RenderOptions holds the flags of the render command.
type RenderOptions struct {
	ConfigPath string

	// Document is one of the names returned by RenderableDocuments.
	Document string

	// Walnut selects the walnut for per-walnut documents, by name or by
	// its path inside the World. Empty means the Life walnut.
	Walnut string

	// At fixes the timestamp written into the document (RFC 3339).
	At string
}

type documentRenderer func(cfg *config.Configuration, w provisioning.PlannedWalnut, now time.Time) (string, error)

var renderers = map[string]documentRenderer{
	"identity": func(cfg *config.Configuration, _ provisioning.PlannedWalnut, now time.Time) (string, error) {
		return templates.Identity(cfg, now), nil
	},
	"settings": func(*config.Configuration, provisioning.PlannedWalnut, time.Time) (string, error) {
		return templates.Settings(), nil
	},
	"preferences": func(cfg *config.Configuration, _ provisioning.PlannedWalnut, _ time.Time) (string, error) {
		return templates.Preferences(cfg), nil
	},
	"world-config": func(cfg *config.Configuration, _ provisioning.PlannedWalnut, now time.Time) (string, error) {
		return templates.WorldConfig(cfg, now), nil
	},
	"key": func(cfg *config.Configuration, w provisioning.PlannedWalnut, now time.Time) (string, error) {
		return templates.Key(cfg, w.Walnut, now), nil
	},
	"now": func(_ *config.Configuration, w provisioning.PlannedWalnut, now time.Time) (string, error) {
		return templates.Now(w.Walnut, now), nil
	},
	"log": func(cfg *config.Configuration, w provisioning.PlannedWalnut, now time.Time) (string, error) {
		return templates.Log(cfg, w.Walnut, now), nil
	},
	"insights": func(_ *config.Configuration, w provisioning.PlannedWalnut, now time.Time) (string, error) {
		return templates.Insights(w.Walnut, now), nil
	},
	"tasks": func(_ *config.Configuration, w provisioning.PlannedWalnut, now time.Time) (string, error) {
		return templates.Tasks(w.Walnut, now), nil
	},
	"agents": func(_ *config.Configuration, w provisioning.PlannedWalnut, _ time.Time) (string, error) {
		if w.Project == nil || w.Project.Codebase == "" {
			return "", fmt.Errorf("walnut %q has no codebase", w.Walnut.Name)
		}
		return templates.AgentContext(*w.Project, w.Path), nil
	},
}

// RenderableDocuments returns the document names Render accepts.
func RenderableDocuments() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render prints one generated document without touching the filesystem.
func Render(_ context.Context, opts RenderOptions) error {
	render, ok := renderers[opts.Document]
	if !ok {
		return fmt.Errorf("unknown document %q (valid: %s)", opts.Document, strings.Join(RenderableDocuments(), ", "))
	}

	cfg, _, err := resolveConfig(opts.ConfigPath, "")
	if err != nil {
		return err
	}

	at := now()
	if opts.At != "" {
		at, err = time.Parse(time.RFC3339, opts.At)
		if err != nil {
			return fmt.Errorf("invalid --at timestamp: %w", err)
		}
	}

	w, err := selectWalnut(provisioning.PlanWalnuts(cfg), opts.Walnut)
	if err != nil {
		return err
	}

	out, err := render(cfg, w, at)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func selectWalnut(plan []provisioning.PlannedWalnut, name string) (provisioning.PlannedWalnut, error) {
	if name == "" {
		return plan[0], nil
	}
	for _, w := range plan {
		if strings.EqualFold(w.Walnut.Name, name) || w.Path == path.Clean(name) {
			return w, nil
		}
	}
	return provisioning.PlannedWalnut{}, fmt.Errorf("no walnut named %q", name)
}
