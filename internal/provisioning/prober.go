package provisioning

import (
	"context"
	"errors"

	"github.com/alivecomputer/setup/internal/util/prerequisites"
)

var errNotInstalled = errors.New("not found in PATH")

// Prober checks the prerequisite tools and installs the ones it can.
type Prober struct {
	bridge Bridge
	tools  []prerequisites.Tool
}

// NewProber creates a prober over the given catalog.
func NewProber(bridge Bridge, tools []prerequisites.Tool) *Prober {
	return &Prober{bridge: bridge, tools: tools}
}

// Probe reports whether tool is present.
func (p *Prober) Probe(ctx context.Context, tool string) bool {
	return p.bridge.Probe(ctx, tool)
}

// Ensure returns the action that makes tool available.
//
// A present tool succeeds right away. A tool that cannot be installed
// automatically fails. An install whose prerequisite is absent is never
// attempted; it fails with a DependencyMissingError carrying the
// prerequisite's fallback. Otherwise the install runs exactly once.
func (p *Prober) Ensure(tool prerequisites.Tool) Action {
	return func(ctx context.Context) (string, error) {
		if p.Probe(ctx, tool.Name) {
			return tool.Display + " found", nil
		}

		if tool.Install == nil {
			return "", &ActionFailedError{
				Action: "detect " + tool.Name,
				Skip:   tool.Display + " not installed. paste this into terminal:",
				Err:    errNotInstalled,
			}
		}

		if tool.Requires != "" && !p.Probe(ctx, tool.Requires) {
			return "", p.dependencyMissing(tool)
		}

		if err := p.bridge.Run(ctx, tool.Install.Command, tool.Install.Args...); err != nil {
			return "", &ActionFailedError{
				Action: "install " + tool.Name,
				Skip:   "install failed. paste this into terminal:",
				Err:    err,
			}
		}
		return tool.Display + " installed", nil
	}
}

func (p *Prober) dependencyMissing(tool prerequisites.Tool) *DependencyMissingError {
	err := &DependencyMissingError{Tool: tool.Name, Requires: tool.ProviderName()}
	if provider, ok := prerequisites.Lookup(p.tools, tool.ProviderName()); ok {
		err.Requires = provider.Display
		err.Fallback = provider.Fallback
	}
	return err
}
