// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mfsim/mfsim/internal/issue"
	"github.com/mfsim/mfsim/pkg/cueutil"
	"github.com/mfsim/mfsim/pkg/fspath"
	"github.com/mfsim/mfsim/pkg/types"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "mfsim"
	// ProjectFileName is the project file looked up in the working directory.
	ProjectFileName = "mfsim.cue"
	// DefaultStorePath is the SQLite database used when store.path is unset.
	DefaultStorePath = "mfsim.db"
	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "MFSIM"
)

//go:embed config_schema.cue
var configSchema string

// Schema returns the embedded CUE schema of the project file.
func Schema() string { return configSchema }

func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load project canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid load options: %w", err)
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("root", defaults.Root)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("verbosity", defaults.Verbosity)
	v.SetDefault("ext_file_action", defaults.ExtFileAction)
	v.SetDefault("store.backend", defaults.Store.Backend)
	v.SetDefault("store.path", DefaultStorePath)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ProjectFile != "" {
		path := string(opts.ProjectFile)
		if !fileExists(path) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load project").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Omit --project to use ./" + ProjectFileName + " or the defaults").
				Wrap(fmt.Errorf("%w: %s", ErrProjectNotFound, path)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", parseError(path, err)
		}
		resolvedPath = path
	} else {
		dir := string(opts.Dir)
		if dir == "" {
			dir = "."
		}
		path := filepath.Join(dir, ProjectFileName)
		if fileExists(path) {
			if err := loadCUEIntoViper(v, path); err != nil {
				return nil, "", parseError(path, err)
			}
			resolvedPath = path
		}
		// No project file: defaults only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse project: %w", err)
	}
	if cfg.Verbosity == "" {
		cfg.Verbosity = defaults.Verbosity
	}

	if resolvedPath != "" {
		abs, err := filepath.Abs(resolvedPath)
		if err != nil {
			return nil, "", fmt.Errorf("resolving project file: %w", err)
		}
		cfg.ProjectFile = types.FilesystemPath(abs)
		base := fspath.Dir(cfg.ProjectFile)
		cfg.Root = anchor(base, cfg.Root)
		cfg.Store.Path = anchor(base, cfg.Store.Path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate project").
			WithResource(resolvedPath).
			WithSuggestion("Declare every model referenced by packages and external_files under models").
			WithSuggestion("Give each model a unique name").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func parseError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load project").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the values match the schema shown by 'mfsim config schema'").
		Wrap(err).
		BuildError()
}

func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read project file: %w", err)
	}

	configMap, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config", cueutil.WithFilename(path))
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*configMap); err != nil {
		return fmt.Errorf("failed to merge project: %w", err)
	}
	return nil
}

// anchor resolves a relative, home-free path against base.
func anchor(base, p types.FilesystemPath) types.FilesystemPath {
	if p == "" || fspath.IsAbs(p) || strings.HasPrefix(string(p), "~") {
		return p
	}
	return fspath.Join(base, p)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefault writes a default project file into dir. It refuses to
// overwrite an existing file.
func CreateDefault(dir types.FilesystemPath) (string, error) {
	path := filepath.Join(string(dir), ProjectFileName)
	if fileExists(path) {
		return path, fmt.Errorf("project file already exists: %s", path)
	}
	if err := os.MkdirAll(string(dir), 0o755); err != nil {
		return "", fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write project file: %w", err)
	}
	return path, nil
}
