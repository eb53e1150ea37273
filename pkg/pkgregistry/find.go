// SPDX-License-Identifier: MPL-2.0

package pkgregistry

import "strings"

const (
	// MatchNone means nothing matched.
	MatchNone MatchKind = iota
	// MatchSingle means exactly one package matched.
	MatchSingle
	// MatchList means the query selected a list of packages: the whole
	// registry for an empty query, or a type bucket with several entries.
	MatchList
)

type (
	// MatchKind tells which shape a Match has.
	MatchKind int

	// FindOptions restrict which lookups Find performs.
	FindOptions struct {
		// TypeOnly skips the name, filename, and partial name lookups.
		TypeOnly bool
		// NameOnly skips the type lookup.
		NameOnly bool
	}

	// Match is the result of Find.
	Match struct {
		Kind     MatchKind
		Package  *Package
		Packages []*Package
	}
)

// String returns the name of the kind.
func (k MatchKind) String() string {
	switch k {
	case MatchSingle:
		return "single"
	case MatchList:
		return "list"
	default:
		return "none"
	}
}

// Found reports whether the match holds at least one package.
func (m Match) Found() bool {
	switch m.Kind {
	case MatchSingle:
		return true
	case MatchList:
		return len(m.Packages) > 0
	default:
		return false
	}
}

// All returns the matched packages as a slice, whatever the kind.
func (m Match) All() []*Package {
	switch m.Kind {
	case MatchSingle:
		return []*Package{m.Package}
	case MatchList:
		return m.Packages
	default:
		return nil
	}
}

// Find looks query up, in this order, stopping at the first hit:
//
//  1. an empty query returns every package, in insertion order;
//  2. exact name (skipped by TypeOnly);
//  3. type, returning the package or, for several, the list (skipped by NameOnly);
//  4. exact filename (skipped by TypeOnly);
//  5. the first package in insertion order whose name starts with query
//     (skipped by TypeOnly).
//
// All comparisons are case-insensitive. Step 5 depends on insertion history:
// when several names share the prefix the oldest package wins.
func (r *Registry) Find(query string, opts FindOptions) Match {
	if query == "" {
		return Match{Kind: MatchList, Packages: r.Packages()}
	}
	q := fold(query)

	if !opts.TypeOnly {
		if id, ok := r.byName[q]; ok {
			return r.single(id)
		}
	}

	if !opts.NameOnly {
		if bucket, ok := r.byType[q]; ok {
			switch len(bucket) {
			case 0:
				return Match{}
			case 1:
				return r.single(bucket[0])
			default:
				pkgs := make([]*Package, len(bucket))
				for i, id := range bucket {
					pkgs[i] = r.arena[id]
				}
				return Match{Kind: MatchList, Packages: pkgs}
			}
		}
	}

	if opts.TypeOnly {
		return Match{}
	}

	if id, ok := r.byFilename[q]; ok {
		return r.single(id)
	}

	for _, id := range r.order {
		pkg := r.arena[id]
		if pkg.Name != "" && strings.HasPrefix(fold(pkg.Name), q) {
			return Match{Kind: MatchSingle, Package: pkg}
		}
	}
	return Match{}
}

func (r *Registry) single(id ID) Match {
	return Match{Kind: MatchSingle, Package: r.arena[id]}
}
