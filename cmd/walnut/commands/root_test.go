package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "walnut", cmd.Use)
	assert.Equal(t, "Build your World of walnuts for AI agents", cmd.Short)
	assert.True(t, cmd.SilenceUsage)
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	subcommands := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		subcommands = append(subcommands, sub.Name())
	}

	assert.ElementsMatch(t, []string{"build", "render", "walnuts", "version", "completion"}, subcommands)
}

func TestRoot_UnknownCommand(t *testing.T) {
	cmd := Root()
	cmd.SetArgs([]string{"plant"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "plant"`)
}
