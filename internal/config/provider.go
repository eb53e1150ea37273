// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfsim/mfsim/pkg/types"
)

// LoadOptions defines explicit project loading inputs.
type LoadOptions struct {
	// ProjectFile forces loading from a specific file when set.
	ProjectFile types.FilesystemPath
	// Dir overrides the directory searched for mfsim.cue. Defaults to ".".
	Dir types.FilesystemPath
}

// Validate returns an error joining every invalid non-empty path.
func (o LoadOptions) Validate() error {
	var errs []error
	if o.ProjectFile != "" {
		if err := o.ProjectFile.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("project file: %w", err))
		}
	}
	if o.Dir != "" {
		if err := o.Dir.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("dir: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
