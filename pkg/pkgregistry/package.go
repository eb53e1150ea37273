// SPDX-License-Identifier: MPL-2.0

package pkgregistry

import (
	"errors"

	"github.com/mfsim/mfsim/pkg/datastore"
)

var (
	// ErrNilPackage is returned when a nil package is added.
	ErrNilPackage = errors.New("package is nil")
	// ErrMissingType is returned when a package without a type is added.
	ErrMissingType = errors.New("package type is required")
	// ErrAlreadyRegistered is returned when the same package is added twice.
	ErrAlreadyRegistered = errors.New("package already registered")
	// ErrNotRegistered is returned when renaming a package the registry
	// does not hold.
	ErrNotRegistered = errors.New("package not registered")
)

type (
	// ID identifies a package within one Registry. IDs are never reused.
	ID uint64

	// Package is a named, typed configuration unit. Path is its position in
	// the simulation hierarchy, e.g. {"gwf1", "wel", "wel-1"}; data store
	// keys extending Path belong to it.
	Package struct {
		// Name is optional. When set it is unique within the registry.
		Name string
		// Type is required, e.g. "wel" or "dis".
		Type string
		// Filename is the optional on-disk artifact name.
		Filename string
		Path     datastore.Key
	}
)

// String returns the name of the package, or its type when it has none.
func (p *Package) String() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Type
}
