package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errNameRequired        = errors.New("name is required")
	errProjectNameRequired = errors.New("project name is required")
	errPersonNameRequired  = errors.New("person name is required")
)

// Validate checks the configuration and returns the first problem found.
// Every name must be non-empty; the orchestrator relies on it.
func (c *Configuration) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errNameRequired
	}

	for i, p := range c.Projects {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("projects[%d]: %w", i, errProjectNameRequired)
		}
		switch p.Type {
		case ProjectVenture, ProjectExperiment:
		default:
			return fmt.Errorf("project %q has invalid type %q: must be %q or %q",
				p.Name, p.Type, ProjectVenture, ProjectExperiment)
		}
	}

	for i, p := range c.People {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("people[%d]: %w", i, errPersonNameRequired)
		}
	}

	if c.Focus.Project != "" && !c.hasProject(c.Focus.Project) {
		return fmt.Errorf("focus project %q is not one of the configured projects", c.Focus.Project)
	}

	return nil
}

func (c *Configuration) hasProject(name string) bool {
	for _, p := range c.Projects {
		if p.Name == name {
			return true
		}
	}
	return false
}
