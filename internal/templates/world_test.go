package templates

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/alivecomputer/setup/internal/config"
)

var fixedNow = time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)

func TestIdentity_Minimal(t *testing.T) {
	t.Parallel()
	cfg := &config.Configuration{Name: "Ana"}

	want := "# Ana's World\n\n" +
		"**Build Your World.**\n\n" +
		"You are a Squirrel — one Claude session inside a worldbuilder's World. You read, you work, you close. " +
		"The World belongs to the worldbuilder. You are here to help them build it.\n\n" +
		"---\n\n" +
		"## Who\n\n" +
		"**Worldbuilder:** Ana\n" +
		"**Started:** 2026\n" +
		"\n---\n\n" +
		"**Version:** 0.1.0 Walnut\n"

	assert.Equal(t, want, Identity(cfg, fixedNow))
}

func TestIdentity_OptionalSections(t *testing.T) {
	t.Parallel()
	cfg := &config.Configuration{
		Name:           "Ana",
		Roles:          []string{"founder", "engineer"},
		ContextSources: []string{"Google Drive", "Notion"},
		LifeGoals:      "Stay healthy",
	}

	got := Identity(cfg, fixedNow)

	assert.Contains(t, got, "**Roles:** founder, engineer\n")
	assert.Contains(t, got, "## Context Sources\n\n| Source | Status |\n|--------|--------|\n"+
		"| Google Drive | Available |\n| Notion | Available |\n")
	assert.Contains(t, got, "## Notes\n\nStay healthy\n")
	assert.Less(t, strings.Index(got, "Context Sources"), strings.Index(got, "## Notes"))
}

func TestSettings(t *testing.T) {
	t.Parallel()

	got := Settings()

	var doc struct {
		Permissions struct {
			Allow []string `json:"allow"`
			Deny  []string `json:"deny"`
		} `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal([]byte(got), &doc))
	assert.Equal(t, AllowedOperations, doc.Permissions.Allow)
	assert.NotNil(t, doc.Permissions.Deny)
	assert.Empty(t, doc.Permissions.Deny)
	assert.Contains(t, got, `"deny": []`)
	assert.Equal(t, got, Settings())
}

func TestPreferences(t *testing.T) {
	t.Parallel()

	t.Run("with sources", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Configuration{Theme: "vibrant", ContextSources: []string{"Google Drive", "Apple Notes"}}

		want := "# Walnut Preferences\n# Uncomment to override defaults.\n\n" +
			"theme: vibrant\n\n" +
			"sync:\n  google-drive: available\n  apple-notes: available\n"
		assert.Equal(t, want, Preferences(cfg))
	})

	t.Run("without sources", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Configuration{Theme: "light"}

		got := Preferences(cfg)
		assert.Contains(t, got, "sync: {}\n")

		var parsed map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(got), &parsed))
		assert.Equal(t, map[string]any{}, parsed["sync"])
	})
}

func TestWorldConfig(t *testing.T) {
	t.Parallel()

	t.Run("life areas", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Configuration{Name: "Ana", Theme: "dark", LifeAreas: []string{"health", "family"}}

		want := "# World Config\nworldbuilder: Ana\nversion: 0.1.0\ncreated: 2026-03-14\n\n" +
			"life_areas:\n  - health\n  - family\n\ntheme: dark\n"
		assert.Equal(t, want, WorldConfig(cfg, fixedNow))
	})

	t.Run("empty list marker", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Configuration{Name: "Ana", Theme: "dark"}

		got := WorldConfig(cfg, fixedNow)
		assert.Contains(t, got, "life_areas:\n  []\n")

		var parsed struct {
			LifeAreas []string `yaml:"life_areas"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(got), &parsed))
		assert.NotNil(t, parsed.LifeAreas)
		assert.Empty(t, parsed.LifeAreas)
	})

	t.Run("unsafe text", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Configuration{Name: "Ana: the builder", Theme: "dark", LifeAreas: []string{"- health", "[family]"}}

		var parsed struct {
			Worldbuilder string   `yaml:"worldbuilder"`
			LifeAreas    []string `yaml:"life_areas"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(WorldConfig(cfg, fixedNow)), &parsed))
		assert.Equal(t, "Ana: the builder", parsed.Worldbuilder)
		assert.Equal(t, []string{"- health", "[family]"}, parsed.LifeAreas)
	})
}

func TestAgentContext(t *testing.T) {
	t.Parallel()
	p := config.Project{Name: "Garden Bot", Goal: "Water plants", Stack: "go, sqlite"}

	want := "# Garden Bot\n\n" +
		"Project context: ~/world/05_Experiments/garden-bot/\n" +
		"Read _core/key.md for architecture decisions, team context, and session history.\n\n" +
		"---\n\n" +
		"Goal: Water plants\n" +
		"Stack: go, sqlite\n"
	assert.Equal(t, want, AgentContext(p, "05_Experiments/garden-bot"))

	noStack := AgentContext(config.Project{Name: "Garden Bot"}, "05_Experiments/garden-bot")
	assert.Contains(t, noStack, "Goal: Garden Bot\n")
	assert.NotContains(t, noStack, "Stack:")
}
