package config

import "strings"

// ProjectType classifies a project by stake.
type ProjectType string

const (
	// ProjectVenture is an income-bearing project.
	ProjectVenture ProjectType = "venture"
	// ProjectExperiment is an exploratory project.
	ProjectExperiment ProjectType = "experiment"
)

// DefaultTheme is used when no theme was chosen.
const DefaultTheme = "light"

// Configuration is the complete input of a provisioning run.
type Configuration struct {
	Name           string    `yaml:"name"`
	Roles          []string  `yaml:"roles,omitempty"`
	Projects       []Project `yaml:"projects,omitempty"`
	People         []Person  `yaml:"people,omitempty"`
	LifeGoals      string    `yaml:"life_goals,omitempty"`
	LifeAreas      []string  `yaml:"life_areas,omitempty"`
	ContextSources []string  `yaml:"context_sources,omitempty"`
	Focus          Focus     `yaml:"focus,omitempty"`
	Theme          string    `yaml:"theme,omitempty"`

	// World is the target World root. Empty means <Home>/world.
	World string `yaml:"world,omitempty"`

	// Home is the resolved home directory. Empty means ask the host.
	Home string `yaml:"home,omitempty"`
}

// Project is one venture or experiment.
type Project struct {
	Name     string      `yaml:"name"`
	Goal     string      `yaml:"goal,omitempty"`
	Codebase string      `yaml:"codebase,omitempty"`
	Stack    string      `yaml:"stack,omitempty"`
	Type     ProjectType `yaml:"type"`
}

// Person is someone the worldbuilder wants their squirrel to know about.
type Person struct {
	Name         string `yaml:"name"`
	Relationship string `yaml:"relationship,omitempty"`
}

// Focus names the walnut that gets the worldbuilder's first task.
// An empty Project means the Life walnut.
type Focus struct {
	Project string `yaml:"project,omitempty"`
	Task    string `yaml:"task,omitempty"`
}

// GoalOrName returns the project goal, falling back to its name.
func (p Project) GoalOrName() string {
	if p.Goal != "" {
		return p.Goal
	}
	return p.Name
}

// FirstLifeGoal returns the first line of the life-goal text.
func (c *Configuration) FirstLifeGoal() string {
	line, _, _ := strings.Cut(c.LifeGoals, "\n")
	return strings.TrimSpace(line)
}

// FocusTaskFor returns the focus task if project is the designated focus.
func (c *Configuration) FocusTaskFor(project string) string {
	if c.Focus.Task == "" || c.Focus.Project != project {
		return ""
	}
	return c.Focus.Task
}

// ApplyDefaults fills optional fields with their defaults.
func (c *Configuration) ApplyDefaults() {
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	for i := range c.Projects {
		if c.Projects[i].Type == "" {
			c.Projects[i].Type = ProjectVenture
		}
	}
}
