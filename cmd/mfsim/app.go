// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/mfsim/mfsim/internal/config"
	"github.com/mfsim/mfsim/internal/issue"
	"github.com/mfsim/mfsim/internal/logging"
	"github.com/mfsim/mfsim/internal/simulation"
	"github.com/mfsim/mfsim/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. Every Cobra handler
	// receives an App and reaches configuration and simulations through it.
	App struct {
		Config ConfigProvider
		Fs     afero.Fs
		stdout io.Writer
		stderr io.Writer
		flags  rootFlags
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Fs     afero.Fs
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// rootFlags holds the persistent flags of the root command.
	rootFlags struct {
		project string
		dir     string
		verbose bool
		quiet   bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	return &App{
		Config: deps.Config,
		Fs:     deps.Fs,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{
		ProjectFile: types.FilesystemPath(a.flags.project),
		Dir:         types.FilesystemPath(a.flags.dir),
	})
}

// verbosity applies --verbose and --quiet over the configured level.
func (a *App) verbosity(cfg *config.Config) logging.Verbosity {
	switch {
	case a.flags.verbose:
		return logging.VerbosityVerbose
	case a.flags.quiet:
		return logging.VerbosityQuiet
	default:
		return cfg.Verbosity
	}
}

func (a *App) logger(cfg *config.Config) *log.Logger {
	return logging.New(a.stderr, a.verbosity(cfg))
}

// openSimulation loads the project and opens a simulation over it. Copy
// failures are reported to stderr as they happen.
func (a *App) openSimulation(ctx context.Context) (*simulation.Simulation, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	logger := a.logger(cfg)
	return simulation.Open(ctx, cfg, simulation.Options{
		Fs:     a.Fs,
		Logger: logger,
		Diagnostics: issue.SinkFunc(func(err *issue.DataError) {
			logger.Error("external file copy failed", "path", err.Path, "model", err.Model)
		}),
	})
}
