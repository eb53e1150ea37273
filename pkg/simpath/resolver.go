// SPDX-License-Identifier: MPL-2.0

package simpath

import (
	"maps"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/mfsim/mfsim/internal/issue"
	"github.com/mfsim/mfsim/pkg/fspath"
	"github.com/mfsim/mfsim/pkg/types"
)

type (
	// Resolver owns the simulation root, the model relative paths, and the
	// external file records of one simulation.
	Resolver struct {
		fs     afero.Fs
		logger *log.Logger
		sink   issue.Sink
		debug  bool

		root       types.FilesystemPath
		modelPaths map[types.ModelName]types.FilesystemPath
		files      []*ExternalFile
		fileIndex  map[types.FilesystemPath]*ExternalFile

		last *snapshot
	}

	// Option configures a Resolver.
	Option func(*Resolver)

	// ResolveOptions select the root a specification is resolved against.
	ResolveOptions struct {
		// UseLastLoaded resolves against the snapshot root instead of the
		// current one. Without a snapshot the current root is used.
		UseLastLoaded bool
		// ForceIntoRoot maps absolute specifications to the root itself.
		ForceIntoRoot bool
	}

	snapshot struct {
		root       types.FilesystemPath
		modelPaths map[types.ModelName]types.FilesystemPath
	}
)

// WithFs sets the filesystem used by RelocateFiles. The default is the OS
// filesystem.
func WithFs(fs afero.Fs) Option {
	return func(r *Resolver) { r.fs = fs }
}

// WithLogger sets the logger for non-fatal path warnings.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithDiagnostics sets the sink that receives relocation failures.
func WithDiagnostics(s issue.Sink) Option {
	return func(r *Resolver) { r.sink = s }
}

// WithDebug marks relocation failures as debug errors, which makes
// renderers print the full cause chain.
func WithDebug(debug bool) Option {
	return func(r *Resolver) { r.debug = debug }
}

// New creates a Resolver anchored at root. See SetRoot for how root is
// normalized.
func New(root types.FilesystemPath, opts ...Option) (*Resolver, error) {
	r := &Resolver{
		fs:         afero.NewOsFs(),
		logger:     log.Default(),
		modelPaths: make(map[types.ModelName]types.FilesystemPath),
		fileIndex:  make(map[types.FilesystemPath]*ExternalFile),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.SetRoot(root); err != nil {
		return nil, err
	}
	return r, nil
}

// SetRoot expands home shorthand in path, makes it absolute, and stores it
// as the simulation root. The directory does not need to exist.
func (r *Resolver) SetRoot(path types.FilesystemPath) error {
	abs, err := fspath.Absolute(path)
	if err != nil {
		return err
	}
	r.root = abs
	return nil
}

// Root returns the current simulation root, or the snapshot root when
// lastLoaded is set. The second result is false when lastLoaded is set but
// no snapshot has been taken.
func (r *Resolver) Root(lastLoaded bool) (types.FilesystemPath, bool) {
	if lastLoaded {
		if r.last == nil {
			return "", false
		}
		return r.last.root, true
	}
	return r.root, true
}

// SetModelPath registers or updates the relative path of model.
func (r *Resolver) SetModelPath(model types.ModelName, rel types.FilesystemPath) {
	r.modelPaths[model] = rel
}

// ModelRelativePath returns the registered relative path of model.
func (r *Resolver) ModelRelativePath(model types.ModelName) (types.FilesystemPath, bool) {
	p, ok := r.modelPaths[model]
	return p, ok
}

// Resolve maps a path specification to a concrete path. Quote characters
// are stripped first. Absolute specifications are returned as they are,
// or replaced by the root under ForceIntoRoot; relative ones are joined
// onto the root.
func (r *Resolver) Resolve(spec types.FilesystemPath, opts ResolveOptions) types.FilesystemPath {
	p := fspath.StripQuotes(spec)
	root := r.activeRoot(opts.UseLastLoaded)
	if fspath.IsAbs(p) {
		if opts.ForceIntoRoot {
			return root
		}
		return p
	}
	return fspath.Join(root, p)
}

// ResolveFile resolves the specification of an external file record.
func (r *Resolver) ResolveFile(f *ExternalFile, opts ResolveOptions) types.FilesystemPath {
	return r.Resolve(f.Path, opts)
}

// ModelPath returns the working directory of model: its relative path
// joined onto the root, or the root itself when model has no relative path.
// An absolute model path is returned as it is. With lastLoaded both come
// from the snapshot.
func (r *Resolver) ModelPath(model types.ModelName, lastLoaded bool) types.FilesystemPath {
	root, paths := r.root, r.modelPaths
	if lastLoaded && r.last != nil {
		root, paths = r.last.root, r.last.modelPaths
	}
	rel, ok := paths[model]
	if !ok {
		return root
	}
	if fspath.IsAbs(rel) {
		return rel
	}
	return fspath.Join(root, rel)
}

// StripModelPrefix removes the relative path of model from the front of
// path and returns the rest with forward slashes. Models without a
// meaningful relative path (unset, empty, ".", or absolute) leave path
// unchanged. A path outside the model directory is logged and returned
// unchanged.
func (r *Resolver) StripModelPrefix(model types.ModelName, path types.FilesystemPath) types.FilesystemPath {
	rel, ok := r.modelPaths[model]
	if !ok || fspath.IsTrivial(rel) || fspath.IsAbs(rel) {
		return path
	}
	rest, ok := fspath.RelativeTo(path, rel)
	if !ok {
		r.logger.Warn("could not strip model relative path", "model", model, "path", path, "prefix", rel)
		return path
	}
	return fspath.ToSlash(rest)
}

// Snapshot records the current root and model relative paths as the last
// loaded state, replacing any earlier snapshot.
func (r *Resolver) Snapshot() {
	r.last = &snapshot{root: r.root, modelPaths: maps.Clone(r.modelPaths)}
}

// HasSnapshot reports whether Snapshot has been called.
func (r *Resolver) HasSnapshot() bool { return r.last != nil }

func (r *Resolver) activeRoot(lastLoaded bool) types.FilesystemPath {
	if lastLoaded && r.last != nil {
		return r.last.root
	}
	return r.root
}
