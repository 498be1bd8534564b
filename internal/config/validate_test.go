package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Configuration {
	return &Configuration{
		Name:     "Ana",
		Projects: []Project{{Name: "Moonbeam", Type: ProjectVenture}},
		People:   []Person{{Name: "Sam", Relationship: "Partner"}},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr string
	}{
		{name: "valid", mutate: func(_ *Configuration) {}},
		{name: "missing name", mutate: func(c *Configuration) { c.Name = "  " }, wantErr: "name is required"},
		{name: "missing project name", mutate: func(c *Configuration) { c.Projects[0].Name = "" }, wantErr: "projects[0]: project name is required"},
		{name: "invalid project type", mutate: func(c *Configuration) { c.Projects[0].Type = "hobby" }, wantErr: `invalid type "hobby"`},
		{name: "missing person name", mutate: func(c *Configuration) { c.People[0].Name = "" }, wantErr: "people[0]: person name is required"},
		{name: "unknown focus project", mutate: func(c *Configuration) { c.Focus.Project = "Sunbeam" }, wantErr: `focus project "Sunbeam"`},
		{name: "focus on life walnut", mutate: func(c *Configuration) { c.Focus.Task = "Sleep more" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
