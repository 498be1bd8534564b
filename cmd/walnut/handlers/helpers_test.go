package handlers

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alivecomputer/setup/internal/config"
	"github.com/alivecomputer/setup/internal/platform/fake"
	"github.com/alivecomputer/setup/internal/provisioning"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

const anaYAML = `name: Ana
projects:
  - name: Moonbeam
    goal: Ship MVP
    type: venture
  - name: Garden Bot
    type: experiment
    codebase: /src/garden
people:
  - name: Sam
    relationship: Partner
focus:
  project: Moonbeam
  task: Write the landing page
`

// captureOutput captures stdout during function execution.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// saveAndRestoreBuildFactories saves and restores build factory functions.
func saveAndRestoreBuildFactories(t *testing.T) {
	origFind := findConfigFile
	origLoad := loadConfig
	origBridge := newBridge
	origInteractive := interactive
	origConfirm := confirmBuild
	origRunID := newRunID
	origNow := now
	origProgress := showProgress

	t.Cleanup(func() {
		findConfigFile = origFind
		loadConfig = origLoad
		newBridge = origBridge
		interactive = origInteractive
		confirmBuild = origConfirm
		newRunID = origRunID
		now = origNow
		showProgress = origProgress
	})
}

// useFakeHost points the build handler at an in-memory host with every
// tool installed and returns it.
func useFakeHost(t *testing.T, home string) *fake.Bridge {
	t.Helper()
	saveAndRestoreBuildFactories(t)

	bridge := fake.New(home, "brew", "node", "npm", "claude")
	newBridge = func() provisioning.Bridge { return bridge }
	interactive = func() bool { return false }
	newRunID = func() string { return "run-1" }
	now = func() time.Time { return fixedNow }
	return bridge
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
