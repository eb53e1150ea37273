// SPDX-License-Identifier: MPL-2.0

package pkgregistry

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"

	"github.com/mfsim/mfsim/pkg/datastore"
)

type (
	// Registry owns an ordered set of packages and their indexes.
	Registry struct {
		store  datastore.Store
		logger *log.Logger

		nextID ID
		arena  map[ID]*Package
		ids    map[*Package]ID
		order  []ID

		byName     map[string]ID
		byType     map[string][]ID
		byFilename map[string]ID
	}

	// Option configures a Registry.
	Option func(*Registry)
)

// WithLogger sets the logger that records registry mutations at debug level.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// New creates an empty registry over store. A nil store disables data store
// propagation on Remove and Rename.
func New(store datastore.Store, opts ...Option) *Registry {
	r := &Registry{
		store:      store,
		logger:     log.Default(),
		arena:      make(map[ID]*Package),
		ids:        make(map[*Package]ID),
		byName:     make(map[string]ID),
		byType:     make(map[string][]ID),
		byFilename: make(map[string]ID),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add appends pkg and indexes it. A later package with the same name or
// filename replaces the earlier one in that index; the earlier package stays
// in the list and under its type.
func (r *Registry) Add(pkg *Package) (ID, error) {
	switch {
	case pkg == nil:
		return 0, ErrNilPackage
	case pkg.Type == "":
		return 0, fmt.Errorf("adding %s: %w", pkg.Path, ErrMissingType)
	}
	if _, ok := r.ids[pkg]; ok {
		return 0, fmt.Errorf("adding %s: %w", pkg, ErrAlreadyRegistered)
	}

	r.nextID++
	id := r.nextID
	r.arena[id] = pkg
	r.ids[pkg] = id
	r.order = append(r.order, id)

	if pkg.Name != "" {
		r.byName[fold(pkg.Name)] = id
	}
	typ := fold(pkg.Type)
	r.byType[typ] = append(r.byType[typ], id)
	if pkg.Filename != "" {
		r.byFilename[fold(pkg.Filename)] = id
	}

	r.logger.Debug("package added", "name", pkg.Name, "type", pkg.Type, "path", pkg.Path)
	return id, nil
}

// Remove drops pkg from the registry and deletes every data store key that
// shares a prefix with its path. Name and filename entries are dropped only
// while they still point at pkg. The data store is purged even when pkg was
// not registered.
func (r *Registry) Remove(ctx context.Context, pkg *Package) error {
	if pkg == nil {
		return ErrNilPackage
	}
	if id, ok := r.ids[pkg]; ok {
		r.unindex(id, pkg)
	}

	if r.store == nil {
		return nil
	}
	n, err := datastore.DeletePrefix(ctx, r.store, pkg.Path)
	if err != nil {
		return fmt.Errorf("purging data of %s: %w", pkg, err)
	}
	r.logger.Debug("package removed", "name", pkg.Name, "type", pkg.Type, "keys", n)
	return nil
}

// Rename gives pkg a new name. Data store keys at or below its path are
// rewritten so their identity position reads newName; trailing components
// and values are kept. The package's Name and the last component of its
// Path are updated.
func (r *Registry) Rename(ctx context.Context, pkg *Package, newName string) error {
	if pkg == nil {
		return ErrNilPackage
	}
	id, ok := r.ids[pkg]
	if !ok {
		return fmt.Errorf("renaming %s: %w", pkg, ErrNotRegistered)
	}

	n := 0
	if r.store != nil {
		var err error
		n, err = datastore.RenamePrefix(ctx, r.store, pkg.Path, newName)
		if err != nil {
			return fmt.Errorf("rewriting data of %s: %w", pkg, err)
		}
	}

	if pkg.Name != "" && r.byName[fold(pkg.Name)] == id {
		delete(r.byName, fold(pkg.Name))
	}
	r.byName[fold(newName)] = id

	oldName := pkg.Name
	pkg.Name = newName
	if len(pkg.Path) > 0 {
		pkg.Path = pkg.Path.Clone()
		pkg.Path[len(pkg.Path)-1] = newName
	}

	r.logger.Debug("package renamed", "from", oldName, "to", newName, "keys", n)
	return nil
}

// Get returns the package registered under id.
func (r *Registry) Get(id ID) (*Package, bool) {
	p, ok := r.arena[id]
	return p, ok
}

// IDOf returns the ID of a registered package.
func (r *Registry) IDOf(pkg *Package) (ID, bool) {
	id, ok := r.ids[pkg]
	return id, ok
}

// Packages returns a copy of the package list in insertion order.
func (r *Registry) Packages() []*Package {
	out := make([]*Package, len(r.order))
	for i, id := range r.order {
		out[i] = r.arena[id]
	}
	return out
}

// Names returns the indexed package names, lower-cased, in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByName returns a copy of the name index.
func (r *Registry) ByName() map[string]*Package {
	out := make(map[string]*Package, len(r.byName))
	for name, id := range r.byName {
		out[name] = r.arena[id]
	}
	return out
}

// Len returns the number of registered packages.
func (r *Registry) Len() int { return len(r.order) }

func (r *Registry) unindex(id ID, pkg *Package) {
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	delete(r.arena, id)
	delete(r.ids, pkg)

	if pkg.Name != "" && r.byName[fold(pkg.Name)] == id {
		delete(r.byName, fold(pkg.Name))
	}
	if pkg.Filename != "" && r.byFilename[fold(pkg.Filename)] == id {
		delete(r.byFilename, fold(pkg.Filename))
	}

	typ := fold(pkg.Type)
	bucket := r.byType[typ]
	if i := slices.Index(bucket, id); i >= 0 {
		bucket = slices.Delete(bucket, i, i+1)
	}
	if len(bucket) == 0 {
		delete(r.byType, typ)
	} else {
		r.byType[typ] = bucket
	}
}

func fold(s string) string { return strings.ToLower(s) }
