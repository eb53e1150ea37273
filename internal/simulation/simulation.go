// SPDX-License-Identifier: MPL-2.0

package simulation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/mfsim/mfsim/internal/config"
	"github.com/mfsim/mfsim/internal/issue"
	"github.com/mfsim/mfsim/pkg/datastore"
	"github.com/mfsim/mfsim/pkg/datastore/sqlitestore"
	"github.com/mfsim/mfsim/pkg/pkgregistry"
	"github.com/mfsim/mfsim/pkg/simpath"
	"github.com/mfsim/mfsim/pkg/types"
)

var (
	// ErrUnknownModel is returned when a model name is not part of the simulation.
	ErrUnknownModel = errors.New("unknown model")
	// ErrStoreOpen is wrapped by data store initialization failures.
	ErrStoreOpen = errors.New("data store unavailable")
)

type (
	// Options carries the collaborators of a Simulation. Zero values select
	// the OS filesystem, log.Default(), no diagnostics sink, and
	// DefaultCatalog.
	Options struct {
		Fs          afero.Fs
		Logger      *log.Logger
		Diagnostics issue.Sink
		Catalog     pkgregistry.Catalog[PackageKind]
	}

	// Model is a submodel and its packages.
	Model struct {
		Name     types.ModelName
		Type     string
		Packages *pkgregistry.Registry
	}

	// Simulation holds the state built from a project configuration.
	Simulation struct {
		cfg      *config.Config
		logger   *log.Logger
		catalog  pkgregistry.Catalog[PackageKind]
		store    datastore.Store
		closer   io.Closer
		resolver *simpath.Resolver
		models   []*Model
		byName   map[types.ModelName]*Model
		filter   pkgregistry.LoadFilter
		skipped  int
	}
)

// Open builds a Simulation from cfg. Packages rejected by cfg.LoadOnly are
// skipped. The resulting paths are snapshotted as the loaded state.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*Simulation, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("open simulation canceled: %w", ctx.Err())
	default:
	}

	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog
	}

	resolverOpts := []simpath.Option{
		simpath.WithLogger(opts.Logger),
		simpath.WithDebug(cfg.Debug),
	}
	if opts.Fs != nil {
		resolverOpts = append(resolverOpts, simpath.WithFs(opts.Fs))
	}
	if opts.Diagnostics != nil {
		resolverOpts = append(resolverOpts, simpath.WithDiagnostics(opts.Diagnostics))
	}
	resolver, err := simpath.New(cfg.Root, resolverOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating path resolver: %w", err)
	}

	var loadOnly any
	if len(cfg.LoadOnly) > 0 {
		loadOnly = cfg.LoadOnly
	}
	filter, err := pkgregistry.ParseLoadFilter(loadOnly)
	if err != nil {
		return nil, err
	}

	store, closer, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:      cfg,
		logger:   opts.Logger,
		catalog:  opts.Catalog,
		store:    store,
		closer:   closer,
		resolver: resolver,
		byName:   make(map[types.ModelName]*Model, len(cfg.Models)),
		filter:   filter,
	}

	for _, entry := range cfg.Models {
		if entry.Path != "" {
			resolver.SetModelPath(entry.Name, entry.Path)
		}
		m := &Model{
			Name:     entry.Name,
			Type:     entry.ModelType(),
			Packages: pkgregistry.New(store, pkgregistry.WithLogger(opts.Logger)),
		}
		s.models = append(s.models, m)
		s.byName[m.Name] = m
	}

	for _, f := range cfg.ExternalFiles {
		for _, model := range f.Models {
			resolver.RegisterExternalFile(f.Path, model)
		}
	}

	if err := s.loadPackages(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	resolver.Snapshot()
	return s, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (datastore.Store, io.Closer, error) {
	switch cfg.Backend {
	case config.StoreSQLite:
		st, err := sqlitestore.Open(ctx, string(cfg.Path))
		if err != nil {
			return nil, nil, issue.NewErrorContext().
				WithOperation("open data store").
				WithResource(string(cfg.Path)).
				WithSuggestion("Check that the store.path directory is writable").
				WithSuggestion("Set store.backend to \"memory\" to run without a database").
				Wrap(fmt.Errorf("%w: %w", ErrStoreOpen, err)).
				BuildError()
		}
		return st, st, nil
	case config.StoreMemory, "":
		return datastore.NewMemory(), nil, nil
	default:
		return nil, nil, &config.InvalidStoreBackendError{Value: cfg.Backend}
	}
}

func (s *Simulation) loadPackages(ctx context.Context) error {
	names := make(map[types.ModelName]map[string]bool)
	files := make(map[types.ModelName]map[string]bool)

	for _, entry := range s.cfg.Packages {
		m := s.byName[entry.Model]
		if m == nil {
			return fmt.Errorf("package %q: %w %q", entry.Type, ErrUnknownModel, entry.Model)
		}
		if names[m.Name] == nil {
			names[m.Name] = make(map[string]bool)
			files[m.Name] = make(map[string]bool)
		}

		base := pkgregistry.ParseVersionedToken(strings.ToLower(entry.Type)).Base
		name := entry.Name
		if name == "" {
			name = base
			if names[m.Name][name] {
				name = simpath.UniqueFileName(base, func(c string) bool { return names[m.Name][c] })
			}
		}
		if !s.filter.Selects(entry.Type, name) {
			s.skipped++
			s.logger.Debug("package skipped by load filter", "model", m.Name, "type", entry.Type, "name", name)
			continue
		}

		filename := entry.Filename
		if filename == "" {
			filename = string(m.Name) + "." + base
			if files[m.Name][filename] {
				filename = simpath.UniqueFileName(filename, func(c string) bool { return files[m.Name][c] })
			}
		}

		if _, ok := pkgregistry.Factory[PackageKind](s.catalog, base, modelTypeBase(m.Type)); !ok {
			s.logger.Warn("unknown package type", "model", m.Name, "type", entry.Type)
		}

		pkg := &pkgregistry.Package{
			Name:     name,
			Type:     entry.Type,
			Filename: filename,
			Path:     datastore.Key{string(m.Name), strings.ToLower(entry.Type), name},
		}
		if _, err := m.Packages.Add(pkg); err != nil {
			return fmt.Errorf("adding package %s to model %s: %w", pkg, m.Name, err)
		}
		names[m.Name][strings.ToLower(name)] = true
		files[m.Name][strings.ToLower(filename)] = true

		if err := s.store.Set(ctx, pkg.Path, packageRecord(pkg)); err != nil {
			return fmt.Errorf("storing package %s: %w", pkg, err)
		}
	}
	return nil
}

// packageRecord is the data store value of pkg. It survives a JSON round
// trip unchanged.
func packageRecord(pkg *pkgregistry.Package) map[string]any {
	return map[string]any{"type": pkg.Type, "filename": pkg.Filename}
}

func modelTypeBase(modelType string) string {
	return pkgregistry.ParseVersionedToken(strings.ToLower(modelType)).Base
}

// Config returns the configuration the simulation was opened with.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Resolver returns the path resolver.
func (s *Simulation) Resolver() *simpath.Resolver { return s.resolver }

// Store returns the data store shared by every model.
func (s *Simulation) Store() datastore.Store { return s.store }

// Models returns the models in configuration order.
func (s *Simulation) Models() []*Model {
	return append([]*Model(nil), s.models...)
}

// Model returns the named model.
func (s *Simulation) Model(name types.ModelName) (*Model, error) {
	m, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownModel, name)
	}
	return m, nil
}

// Skipped returns how many configured packages the load filter rejected.
func (s *Simulation) Skipped() int { return s.skipped }

// Kind looks up the catalog entry of pkg within model m.
func (s *Simulation) Kind(m *Model, pkg *pkgregistry.Package) (PackageKind, bool) {
	base := pkgregistry.ParseVersionedToken(strings.ToLower(pkg.Type)).Base
	return pkgregistry.Factory[PackageKind](s.catalog, base, modelTypeBase(m.Type))
}

// Relocate moves the simulation root to newRoot and copies external files
// as action prescribes; an empty action uses the configured one. On success
// the new state becomes the loaded state.
func (s *Simulation) Relocate(ctx context.Context, newRoot types.FilesystemPath, action simpath.ExtFileAction) (int, error) {
	if action == "" {
		action = s.cfg.ExtFileAction
	}
	if err := action.Validate(); err != nil {
		return 0, err
	}
	if err := s.resolver.SetRoot(newRoot); err != nil {
		return 0, fmt.Errorf("setting simulation root: %w", err)
	}
	n, err := s.resolver.ApplyExtFileAction(ctx, action)
	if err != nil {
		return n, err
	}
	s.resolver.Snapshot()
	s.logger.Info("simulation relocated", "root", newRoot, "copied", n)
	return n, nil
}

// RenamePackage renames the package of model matching query.
func (s *Simulation) RenamePackage(ctx context.Context, model types.ModelName, query, newName string) (*pkgregistry.Package, error) {
	m, pkg, err := s.findOne(model, query)
	if err != nil {
		return nil, err
	}
	if err := m.Packages.Rename(ctx, pkg, newName); err != nil {
		return nil, fmt.Errorf("renaming package %s: %w", query, err)
	}
	return pkg, nil
}

// RemovePackage removes the package of model matching query along with its
// data store entries.
func (s *Simulation) RemovePackage(ctx context.Context, model types.ModelName, query string) (*pkgregistry.Package, error) {
	m, pkg, err := s.findOne(model, query)
	if err != nil {
		return nil, err
	}
	if err := m.Packages.Remove(ctx, pkg); err != nil {
		return nil, fmt.Errorf("removing package %s: %w", query, err)
	}
	return pkg, nil
}

func (s *Simulation) findOne(model types.ModelName, query string) (*Model, *pkgregistry.Package, error) {
	m, err := s.Model(model)
	if err != nil {
		return nil, nil, err
	}
	match := m.Packages.Find(query, pkgregistry.FindOptions{})
	switch match.Kind {
	case pkgregistry.MatchSingle:
		return m, match.Package, nil
	case pkgregistry.MatchList:
		return nil, nil, fmt.Errorf("query %q matches %d packages in model %s", query, len(match.Packages), model)
	default:
		return nil, nil, fmt.Errorf("package %q: %w", query, pkgregistry.ErrNotRegistered)
	}
}

// Close releases the data store.
func (s *Simulation) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
