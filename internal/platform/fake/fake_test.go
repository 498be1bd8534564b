package fake

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridge_Files(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := New("/home/ana")

	wrote, err := b.WriteIfMissing(ctx, "/w/a.md", "one")
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = b.WriteIfMissing(ctx, "/w/a.md", "two")
	require.NoError(t, err)
	assert.False(t, wrote)

	ok, err := b.CreateSymlink(ctx, "/w/a.md", "/w/b.md")
	require.NoError(t, err)
	assert.True(t, ok)

	content, found := b.File("/w/b.md")
	assert.True(t, found)
	assert.Equal(t, "one", content)
	assert.Equal(t, []string{"/w/a.md"}, b.FilesUnder("/w"))
}

func TestBridge_Install(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := New("", "brew").InstallProvides("brew install node", "node", "npm")

	assert.False(t, b.Probe(ctx, "npm"))
	require.NoError(t, b.Run(ctx, "brew", "install", "node"))
	assert.True(t, b.Probe(ctx, "npm"))
	assert.True(t, b.Ran("brew"))
	assert.False(t, b.Ran("npm"))
}

func TestBridge_Failures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := New("").FailDir("/bad").FailRun("npm", errors.New("EACCES"))

	err := b.EnsureDirectories(ctx, []string{"/bad", "/good"})
	assert.ErrorIs(t, err, ErrInjected)
	assert.True(t, b.HasDir("/good"))
	assert.EqualError(t, b.Run(ctx, "npm", "install"), "EACCES")

	broken := Broken()
	assert.False(t, broken.Probe(ctx, "brew"))
	_, err = broken.HomeDirectory(ctx)
	assert.ErrorIs(t, err, ErrInjected)
	_, err = broken.WriteIfMissing(ctx, "/x", "y")
	assert.ErrorIs(t, err, ErrInjected)

	methods := make([]string, 0)
	for _, c := range broken.Calls() {
		methods = append(methods, c.Method)
	}
	assert.Equal(t, []string{"Probe", "HomeDirectory", "WriteIfMissing"}, methods)
}
