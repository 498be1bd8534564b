package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/alivecomputer/setup/internal/config"
	"github.com/alivecomputer/setup/internal/metrics"
	"github.com/alivecomputer/setup/internal/platform/host"
	"github.com/alivecomputer/setup/internal/provisioning"
	"github.com/alivecomputer/setup/internal/ui/tui"
)

// BuildOptions holds the flags of the build command.
type BuildOptions struct {
	ConfigPath string

	// Name, World and Theme override the configuration file.
	Name  string
	World string
	Theme string

	// Yes skips the confirmation prompt.
	Yes bool

	Verbosity int

	// CommandsFile receives the fallback commands, one per line.
	CommandsFile string

	// MetricsFile receives the run metrics in Prometheus text format.
	MetricsFile string
}

// Factory function variables for build - can be replaced in tests.
var (
	findConfigFile = config.FindConfigFile
	loadConfig     = config.Load

	newBridge = func() provisioning.Bridge { return host.New() }

	// interactive reports whether a confirmation prompt can be shown.
	interactive = isTerminal

	confirmBuild = runConfirm

	newRunID = uuid.NewString

	now = time.Now

	// showProgress runs the build behind the live progress view.
	showProgress = func(ctx context.Context, world string, observer provisioning.Observer, run buildFunc) (*provisioning.Result, error) {
		return tui.RunBuild(ctx, world, observer, run)
	}
)

// buildFunc runs the pipeline under ctx, reporting to the observer.
type buildFunc = func(context.Context, provisioning.Observer) *provisioning.Result

// Build provisions a World from the configuration and prints the report.
// The pipeline itself never fails; errors come from loading the
// configuration or writing the requested output files.
func Build(ctx context.Context, opts BuildOptions) error {
	cfg, source, err := resolveConfig(opts.ConfigPath, opts.Name)
	if err != nil {
		return err
	}
	applyOverrides(cfg, opts)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	styled := interactive()
	if !opts.Yes && styled {
		ok, err := confirmBuild(ctx, cfg)
		if err != nil {
			return fmt.Errorf("confirmation canceled: %w", err)
		}
		if !ok {
			fmt.Println("Nothing was built.")
			return nil
		}
	}

	logger := newLogger(os.Stderr, opts.Verbosity)
	observer := provisioning.NewLogrObserver(logger).WithFields(map[string]string{
		"run":    newRunID(),
		"config": source,
	})
	recorder := metrics.NewRecorder()

	bridge := newBridge()
	run := func(ctx context.Context, obs provisioning.Observer) *provisioning.Result {
		c := provisioning.NewContext(ctx, cfg, bridge,
			provisioning.WithObserver(obs),
			provisioning.WithRecorder(recorder),
			provisioning.WithClock(now()),
		)
		return provisioning.NewPipeline().Run(c)
	}

	var result *provisioning.Result
	if styled && opts.Verbosity == 0 {
		result, err = showProgress(ctx, worldLabel(cfg), observer, run)
		if err != nil {
			observer.Printf("progress view failed: %v", err)
		}
	} else {
		result = run(ctx, observer)
	}

	fmt.Print(renderReport(result, styled))

	var errs []error
	if opts.CommandsFile != "" {
		if err := os.WriteFile(opts.CommandsFile, []byte(result.Joined()+"\n"), 0600); err != nil {
			errs = append(errs, fmt.Errorf("failed to write commands file: %w", err))
		}
	}
	if opts.MetricsFile != "" {
		if err := recorder.WriteTextfile(opts.MetricsFile); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics file: %w", err))
		}
	}
	return errors.Join(errs...)
}

// resolveConfig loads the configuration file. Without an explicit path it
// searches for world.yaml; when none exists a name flag is enough to build
// a bare World. source names where the configuration came from.
func resolveConfig(path, name string) (cfg *config.Configuration, source string, err error) {
	if path == "" {
		found, findErr := findConfigFile()
		if findErr != nil {
			if name != "" {
				return &config.Configuration{}, "flags", nil
			}
			return nil, "", fmt.Errorf("no configuration: %w (pass --config or --name)", findErr)
		}
		path = found
	}

	cfg, err = loadConfig(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func applyOverrides(cfg *config.Configuration, opts BuildOptions) {
	if opts.Name != "" {
		cfg.Name = opts.Name
	}
	if opts.World != "" {
		cfg.World = opts.World
	}
	if opts.Theme != "" {
		cfg.Theme = opts.Theme
	}
}

// worldLabel names the target World before the home directory is known.
func worldLabel(cfg *config.Configuration) string {
	if cfg.World == "" {
		return "~/world"
	}
	return cfg.World
}

// runConfirm asks before touching the filesystem.
func runConfirm(ctx context.Context, cfg *config.Configuration) (bool, error) {
	where := worldLabel(cfg)

	proceed := true
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Build %s's World at %s?", cfg.Name, where)).
				Description(fmt.Sprintf("%d projects, %d people. Existing files are never overwritten.",
					len(cfg.Projects), len(cfg.People))).
				Affirmative("Build").
				Negative("Cancel").
				Value(&proceed),
		),
	).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return proceed, nil
}
