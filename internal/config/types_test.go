package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_GoalOrName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Ship MVP", Project{Name: "Moonbeam", Goal: "Ship MVP"}.GoalOrName())
	assert.Equal(t, "Moonbeam", Project{Name: "Moonbeam"}.GoalOrName())
}

func TestConfiguration_FirstLifeGoal(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", (&Configuration{}).FirstLifeGoal())
	assert.Equal(t, "Run a marathon", (&Configuration{LifeGoals: "Run a marathon\nLearn Spanish"}).FirstLifeGoal())
}

func TestConfiguration_FocusTaskFor(t *testing.T) {
	t.Parallel()
	cfg := &Configuration{Focus: Focus{Project: "Moonbeam", Task: "Call investors"}}

	assert.Equal(t, "Call investors", cfg.FocusTaskFor("Moonbeam"))
	assert.Empty(t, cfg.FocusTaskFor("Sunbeam"))
	assert.Empty(t, cfg.FocusTaskFor(""), "life walnut is not the focus here")

	lifeFocus := &Configuration{Focus: Focus{Task: "Sleep more"}}
	assert.Equal(t, "Sleep more", lifeFocus.FocusTaskFor(""))
}

func TestConfiguration_ApplyDefaults(t *testing.T) {
	t.Parallel()
	cfg := &Configuration{Projects: []Project{{Name: "A"}, {Name: "B", Type: ProjectExperiment}}}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, ProjectVenture, cfg.Projects[0].Type)
	assert.Equal(t, ProjectExperiment, cfg.Projects[1].Type)
}
