// SPDX-License-Identifier: MPL-2.0

package pkgregistry

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mfsim/mfsim/internal/issue"
)

// ErrInvalidLoadFilter is wrapped by the error ParseLoadFilter returns for
// values that are neither nil, a list of strings, nor a map.
var ErrInvalidLoadFilter = errors.New("load filter must be a list of names, a map, or empty")

// LoadFilter is a set of lower-cased type codes and package names used to
// load only part of a simulation. A nil filter selects everything.
type LoadFilter map[string]struct{}

// NewLoadFilter builds a filter from entries, lower-casing each.
func NewLoadFilter(entries ...string) LoadFilter {
	f := make(LoadFilter, len(entries))
	for _, e := range entries {
		f[fold(e)] = struct{}{}
	}
	return f
}

// Contains reports whether s, lower-cased, is an entry.
func (f LoadFilter) Contains(s string) bool {
	_, ok := f[fold(s)]
	return ok
}

// Selects reports whether a package passes the filter. A nil filter
// selects every package.
func (f LoadFilter) Selects(typeCode, name string) bool {
	if f == nil {
		return true
	}
	return MatchPkgList(f, typeCode, name)
}

// ParseLoadFilter converts a decoded configuration value into a filter.
// nil yields a nil filter; a list of strings or a map keyed by strings
// yields their lower-cased entries.
func ParseLoadFilter(v any) (LoadFilter, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case LoadFilter:
		return val, nil
	case []string:
		return NewLoadFilter(val...), nil
	case []any:
		entries := make([]string, 0, len(val))
		for _, e := range val {
			s, ok := e.(string)
			if !ok {
				return nil, invalidLoadFilter(v)
			}
			entries = append(entries, s)
		}
		return NewLoadFilter(entries...), nil
	case map[string]bool:
		f := make(LoadFilter, len(val))
		for k := range val {
			f[fold(k)] = struct{}{}
		}
		return f, nil
	case map[string]any:
		f := make(LoadFilter, len(val))
		for k := range val {
			f[fold(k)] = struct{}{}
		}
		return f, nil
	default:
		return nil, invalidLoadFilter(v)
	}
}

func invalidLoadFilter(v any) error {
	return issue.NewErrorContext().
		WithOperation("parse load filter").
		WithResource(fmt.Sprintf("%v", v)).
		WithSuggestion("Set load_only to a list of package types or names, e.g. [\"dis\", \"wel-1\"]").
		WithSuggestion("Remove load_only to load every package").
		Wrap(ErrInvalidLoadFilter).
		BuildError()
}

// String lists the entries, sorted.
func (f LoadFilter) String() string {
	entries := make([]string, 0, len(f))
	for e := range f {
		entries = append(entries, e)
	}
	slices.Sort(entries)
	return "[" + strings.Join(entries, ", ") + "]"
}
