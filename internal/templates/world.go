package templates

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alivecomputer/setup/internal/config"
	"github.com/alivecomputer/setup/internal/util/naming"
)

// AllowedOperations is the permissions allow-list written to settings.json.
var AllowedOperations = []string{
	"Read",
	"Write",
	"Edit",
	"Bash(ls:*)",
	"Bash(cat:*)",
	"Bash(mkdir:*)",
}

// Identity renders CLAUDE.md, the document every agent session reads first.
func Identity(cfg *config.Configuration, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s's World\n\n", cfg.Name)
	b.WriteString("**Build Your World.**\n\n")
	b.WriteString("You are a Squirrel — one Claude session inside a worldbuilder's World. " +
		"You read, you work, you close. The World belongs to the worldbuilder. " +
		"You are here to help them build it.\n\n")
	b.WriteString("---\n\n")
	b.WriteString("## Who\n\n")
	fmt.Fprintf(&b, "**Worldbuilder:** %s\n", cfg.Name)
	fmt.Fprintf(&b, "**Started:** %d\n", year(now))
	if len(cfg.Roles) > 0 {
		fmt.Fprintf(&b, "**Roles:** %s\n", strings.Join(cfg.Roles, ", "))
	}

	if len(cfg.ContextSources) > 0 {
		b.WriteString("\n---\n\n## Context Sources\n\n")
		b.WriteString("| Source | Status |\n|--------|--------|\n")
		for _, src := range cfg.ContextSources {
			fmt.Fprintf(&b, "| %s | Available |\n", src)
		}
	}

	if cfg.LifeGoals != "" {
		fmt.Fprintf(&b, "\n---\n\n## Notes\n\n%s\n", cfg.LifeGoals)
	}

	fmt.Fprintf(&b, "\n---\n\n**Version:** %s Walnut\n", Version)
	return b.String()
}

type settingsDoc struct {
	Permissions permissions `json:"permissions"`
}

type permissions struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
}

// Settings renders settings.json: a fixed allow-list and an empty deny-list.
func Settings() string {
	doc := settingsDoc{Permissions: permissions{
		Allow: append([]string(nil), AllowedOperations...),
		Deny:  []string{},
	}}
	// Marshalling a struct of string slices cannot fail.
	data, _ := json.MarshalIndent(doc, "", "  ")
	return string(data) + "\n"
}

// Preferences renders preferences.yaml with the theme and one sync entry
// per context source.
func Preferences(cfg *config.Configuration) string {
	var b strings.Builder

	b.WriteString("# Walnut Preferences\n")
	b.WriteString("# Uncomment to override defaults.\n\n")
	fmt.Fprintf(&b, "theme: %s\n\n", scalar(cfg.Theme))

	if len(cfg.ContextSources) == 0 {
		b.WriteString("sync: {}\n")
		return b.String()
	}

	b.WriteString("sync:\n")
	for _, src := range cfg.ContextSources {
		fmt.Fprintf(&b, "  %s: available\n", naming.Slug(src))
	}
	return b.String()
}

// WorldConfig renders world-config.yaml.
func WorldConfig(cfg *config.Configuration, now time.Time) string {
	var b strings.Builder

	b.WriteString("# World Config\n")
	fmt.Fprintf(&b, "worldbuilder: %s\n", scalar(cfg.Name))
	fmt.Fprintf(&b, "version: %s\n", Version)
	fmt.Fprintf(&b, "created: %s\n\n", date(now))

	b.WriteString("life_areas:\n")
	if len(cfg.LifeAreas) == 0 {
		b.WriteString("  []\n")
	}
	for _, area := range cfg.LifeAreas {
		fmt.Fprintf(&b, "  - %s\n", scalar(area))
	}

	fmt.Fprintf(&b, "\ntheme: %s\n", scalar(cfg.Theme))
	return b.String()
}

// AgentContext renders the short AGENTS.md written into a project's own
// codebase, pointing agents working there back at the walnut.
func AgentContext(p config.Project, walnutPath string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	fmt.Fprintf(&b, "Project context: ~/%s/%s/\n", naming.ShortcutName, walnutPath)
	b.WriteString("Read _core/key.md for architecture decisions, team context, and session history.\n\n")
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "Goal: %s\n", p.GoalOrName())
	if p.Stack != "" {
		fmt.Fprintf(&b, "Stack: %s\n", p.Stack)
	}
	return b.String()
}
