// Package prerequisites describes the client tools a World needs on the host.
//
// The catalog is intentionally small and fixed: a package manager, a
// JavaScript runtime and the agent CLI. Each entry knows how to install
// itself (if that can be automated at all), what it depends on, and the
// command a user can paste when automation is not possible.
package prerequisites

import "strings"

// Install is an automated install invocation.
type Install struct {
	Command string
	Args    []string
}

// String renders the install as a shell command line.
func (i Install) String() string {
	return strings.Join(append([]string{i.Command}, i.Args...), " ")
}

// Tool represents a client tool that the World relies on.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Display is the human name used in log lines.
	Display string

	// Description explains what the tool is used for.
	Description string

	// Requires is the binary that must be present before Install can run.
	// Empty means no prerequisite.
	Requires string

	// Provider is the catalog tool that supplies Requires (npm comes with
	// node). Empty means Requires names a catalog tool itself.
	Provider string

	// Install is the automated install. Nil means the tool can only be
	// installed by hand.
	Install *Install

	// Fallback is the command a user pastes into a terminal.
	Fallback string
}

// ProviderName returns the catalog name of the tool that supplies Requires.
func (t Tool) ProviderName() string {
	if t.Provider != "" {
		return t.Provider
	}
	return t.Requires
}

// HomebrewInstall is the official Homebrew bootstrap one-liner.
const HomebrewInstall = `/bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"`

// DefaultTools returns the catalog in the order tools are checked.
// A tool's prerequisite always appears before the tool.
func DefaultTools() []Tool {
	node := Install{Command: "brew", Args: []string{"install", "node"}}
	claude := Install{Command: "npm", Args: []string{"install", "-g", "@anthropic-ai/claude-code"}}

	return []Tool{
		{
			Name:        "brew",
			Display:     "homebrew",
			Description: "homebrew installs developer tools on your mac. most developers have it.",
			Fallback:    HomebrewInstall,
		},
		{
			Name:        "node",
			Display:     "node",
			Description: "node.js runs javascript. claude code needs it to work.",
			Requires:    "brew",
			Install:     &node,
			Fallback:    node.String(),
		},
		{
			Name:        "claude",
			Display:     "claude code",
			Description: "claude code is the AI you'll talk to. it runs in terminal and remembers everything.",
			Requires:    "npm",
			Provider:    "node",
			Install:     &claude,
			Fallback:    claude.String(),
		},
	}
}

// Lookup finds a tool by binary name.
func Lookup(tools []Tool, name string) (Tool, bool) {
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
