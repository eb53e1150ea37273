// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/mfsim/mfsim/internal/logging"
	"github.com/mfsim/mfsim/pkg/platform"
	"github.com/mfsim/mfsim/pkg/simpath"
	"github.com/mfsim/mfsim/pkg/types"
)

const (
	// StoreMemory keeps package data in memory for the life of the process.
	StoreMemory StoreBackend = "memory"
	// StoreSQLite persists package data to a SQLite database.
	StoreSQLite StoreBackend = "sqlite"

	// DefaultModelType is assumed for models that do not declare one.
	DefaultModelType = "gwf6"
)

var (
	// ErrInvalidStoreBackend is returned when a StoreBackend value is not recognized.
	ErrInvalidStoreBackend = errors.New("invalid store backend")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrProjectNotFound is returned when an explicit project file does not exist.
	ErrProjectNotFound = errors.New("project file not found")
)

type (
	// StoreBackend selects the data store implementation.
	StoreBackend string

	// InvalidStoreBackendError is returned when a StoreBackend value is not recognized.
	InvalidStoreBackendError struct {
		Value StoreBackend
	}

	// InvalidConfigError collects the field-level validation errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// StoreConfig configures the data store.
	StoreConfig struct {
		Backend StoreBackend `json:"backend" mapstructure:"backend" toml:"backend"`
		// Path is the SQLite database file, relative to the project file.
		Path types.FilesystemPath `json:"path,omitempty" mapstructure:"path" toml:"path,omitempty"`
	}

	// ModelEntry registers a model and its path relative to the root.
	ModelEntry struct {
		Name types.ModelName `json:"name" mapstructure:"name" toml:"name"`
		// Type is the model type, e.g. "gwf6". Empty means DefaultModelType.
		Type string               `json:"type,omitempty" mapstructure:"type" toml:"type,omitempty"`
		Path types.FilesystemPath `json:"path,omitempty" mapstructure:"path" toml:"path,omitempty"`
	}

	// ExternalFileEntry records an external file and the models using it.
	ExternalFileEntry struct {
		Path   types.FilesystemPath `json:"path" mapstructure:"path" toml:"path"`
		Models []types.ModelName    `json:"models" mapstructure:"models" toml:"models"`
	}

	// PackageEntry declares a package of a model.
	PackageEntry struct {
		Model    types.ModelName `json:"model" mapstructure:"model" toml:"model"`
		Type     string          `json:"type" mapstructure:"type" toml:"type"`
		Name     string          `json:"name,omitempty" mapstructure:"name" toml:"name,omitempty"`
		Filename string          `json:"filename,omitempty" mapstructure:"filename" toml:"filename,omitempty"`
	}

	// Config holds the project configuration.
	Config struct {
		// Root is the simulation root, relative to the project file.
		Root      types.FilesystemPath `json:"root" mapstructure:"root" toml:"root"`
		Debug     bool                 `json:"debug" mapstructure:"debug" toml:"debug"`
		Verbosity logging.Verbosity    `json:"verbosity" mapstructure:"verbosity" toml:"verbosity"`
		// ExtFileAction decides which external files follow a relocation.
		ExtFileAction simpath.ExtFileAction `json:"ext_file_action" mapstructure:"ext_file_action" toml:"ext_file_action"`
		Store         StoreConfig           `json:"store" mapstructure:"store" toml:"store"`
		Models        []ModelEntry          `json:"models,omitempty" mapstructure:"models" toml:"models,omitempty"`
		ExternalFiles []ExternalFileEntry   `json:"external_files,omitempty" mapstructure:"external_files" toml:"external_files,omitempty"`
		Packages      []PackageEntry        `json:"packages,omitempty" mapstructure:"packages" toml:"packages,omitempty"`
		// LoadOnly restricts which packages are registered; empty loads all.
		LoadOnly []string `json:"load_only,omitempty" mapstructure:"load_only" toml:"load_only,omitempty"`

		// ProjectFile is the file the configuration was read from. It is
		// empty when only defaults apply.
		ProjectFile types.FilesystemPath `json:"-" mapstructure:"-" toml:"-"`
	}
)

// DefaultConfig returns the configuration used when no project file exists.
func DefaultConfig() *Config {
	return &Config{
		Root:          ".",
		Verbosity:     logging.VerbosityNormal,
		ExtFileAction: simpath.CopyRelativePaths,
		Store:         StoreConfig{Backend: StoreMemory},
	}
}

// String returns the string representation of the StoreBackend.
func (b StoreBackend) String() string { return string(b) }

// Validate returns an *InvalidStoreBackendError for unknown backends.
func (b StoreBackend) Validate() error {
	switch b {
	case StoreMemory, StoreSQLite:
		return nil
	default:
		return &InvalidStoreBackendError{Value: b}
	}
}

// Error implements the error interface.
func (e *InvalidStoreBackendError) Error() string {
	return fmt.Sprintf("invalid store backend %q (valid: memory, sqlite)", e.Value)
}

// Unwrap returns ErrInvalidStoreBackend for errors.Is() compatibility.
func (e *InvalidStoreBackendError) Unwrap() error { return ErrInvalidStoreBackend }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Model returns the entry for name.
func (c *Config) Model(name types.ModelName) (ModelEntry, bool) {
	for _, m := range c.Models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelEntry{}, false
}

// ModelType returns the declared type or DefaultModelType.
func (m ModelEntry) ModelType() string {
	if m.Type == "" {
		return DefaultModelType
	}
	return m.Type
}

// Validate checks what the schema cannot: model names are unique and every
// package and external file refers to a declared model.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Root.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Verbosity.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.ExtFileAction.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Store.Backend.Validate(); err != nil {
		errs = append(errs, err)
	}

	declared := make(map[types.ModelName]bool, len(c.Models))
	for i, m := range c.Models {
		if err := m.Name.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("models[%d]: %w", i, err))
			continue
		}
		if declared[m.Name] {
			errs = append(errs, fmt.Errorf("models[%d]: duplicate model %q", i, m.Name))
		}
		declared[m.Name] = true
	}

	for i, f := range c.ExternalFiles {
		if err := f.Path.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("external_files[%d]: %w", i, err))
		}
		for _, m := range f.Models {
			if !declared[m] {
				errs = append(errs, fmt.Errorf("external_files[%d]: undeclared model %q", i, m))
			}
		}
	}

	for i, p := range c.Packages {
		if p.Type == "" {
			errs = append(errs, fmt.Errorf("packages[%d]: type is required", i))
		}
		if platform.IsWindowsReservedName(p.Filename) {
			errs = append(errs, fmt.Errorf("packages[%d]: filename %q is reserved on Windows", i, p.Filename))
		}
		if !declared[p.Model] {
			errs = append(errs, fmt.Errorf("packages[%d]: undeclared model %q", i, p.Model))
		}
	}

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}
