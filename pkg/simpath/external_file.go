// SPDX-License-Identifier: MPL-2.0

package simpath

import (
	"maps"
	"slices"

	"github.com/mfsim/mfsim/pkg/fspath"
	"github.com/mfsim/mfsim/pkg/types"
)

// ExternalFile is a file referenced by one or more models, keyed by the
// path specification exactly as it was given.
type ExternalFile struct {
	Path   types.FilesystemPath
	models map[types.ModelName]struct{}
}

// Models returns the referencing models in sorted order.
func (f *ExternalFile) Models() []types.ModelName {
	return slices.Sorted(maps.Keys(f.models))
}

// ReferencedBy reports whether model references the file.
func (f *ExternalFile) ReferencedBy(model types.ModelName) bool {
	_, ok := f.models[model]
	return ok
}

// IsAbs reports whether the specification, without quotes, is absolute.
func (f *ExternalFile) IsAbs() bool {
	return fspath.IsAbs(fspath.StripQuotes(f.Path))
}

// RegisterExternalFile records that model references spec. Registering the
// same pair again has no effect. Records are never removed.
func (r *Resolver) RegisterExternalFile(spec types.FilesystemPath, model types.ModelName) *ExternalFile {
	if f, ok := r.fileIndex[spec]; ok {
		f.models[model] = struct{}{}
		return f
	}
	f := &ExternalFile{Path: spec, models: map[types.ModelName]struct{}{model: {}}}
	r.fileIndex[spec] = f
	r.files = append(r.files, f)
	return f
}

// ExternalFiles returns the records in first-registration order.
func (r *Resolver) ExternalFiles() []*ExternalFile {
	return slices.Clone(r.files)
}

// ExternalFile returns the record for spec.
func (r *Resolver) ExternalFile(spec types.FilesystemPath) (*ExternalFile, bool) {
	f, ok := r.fileIndex[spec]
	return f, ok
}
