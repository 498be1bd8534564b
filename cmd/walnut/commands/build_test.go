package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	cmd := Build()

	require.NotNil(t, cmd)
	assert.Equal(t, "build", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.Contains(t, cmd.Long, "never overwritten")
}

func TestBuild_Flags(t *testing.T) {
	cmd := Build()

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"config", "c", ""},
		{"name", "", ""},
		{"world", "", ""},
		{"theme", "", ""},
		{"yes", "y", "false"},
		{"verbose", "v", "0"},
		{"commands-file", "", ""},
		{"metrics-file", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag, "flag %s not found", tt.name)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestBuild_VerbosityCounts(t *testing.T) {
	cmd := Build()
	require.NoError(t, cmd.ParseFlags([]string{"-vv"}))

	v, err := cmd.Flags().GetCount("verbose")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestBuild_RejectsArgs(t *testing.T) {
	cmd := Build()
	assert.Error(t, cmd.Args(cmd, []string{"extra"}))
}

func TestBuild_CanceledContext(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	world := filepath.Join(dir, "world")
	commandsFile := filepath.Join(dir, "commands.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := Root()
	cmd.SetArgs([]string{"build", "--name", "Ana", "--world", world, "--yes", "--commands-file", commandsFile})
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.NoDirExists(t, world, "a canceled run creates nothing")
	commands, err := os.ReadFile(commandsFile)
	require.NoError(t, err)
	assert.Contains(t, string(commands), `mkdir -p "`+world+`"`)
}
