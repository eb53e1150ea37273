// SPDX-License-Identifier: MPL-2.0

package pkgregistry

import (
	"slices"

	"golang.org/x/exp/maps"
)

// UtilityModelType is the model type prefix of packages shared by every
// model type.
const UtilityModelType = "utl"

type (
	// Catalog resolves a package abbreviation, such as "gwfwel", to whatever
	// the caller uses to build packages of that kind.
	Catalog[T any] interface {
		Lookup(abbr string) (T, bool)
	}

	// MapCatalog is a Catalog backed by a map.
	MapCatalog[T any] map[string]T
)

// Lookup returns the entry for abbr.
func (c MapCatalog[T]) Lookup(abbr string) (T, bool) {
	v, ok := c[abbr]
	return v, ok
}

// Abbreviations returns the catalog keys in sorted order.
func (c MapCatalog[T]) Abbreviations() []string {
	abbrs := maps.Keys(c)
	slices.Sort(abbrs)
	return abbrs
}

// Factory looks up "<modelType><packageType>" in catalog and falls back to
// the utility entry "utl<packageType>".
func Factory[T any](catalog Catalog[T], packageType, modelType string) (T, bool) {
	if v, ok := catalog.Lookup(modelType + packageType); ok {
		return v, true
	}
	return catalog.Lookup(UtilityModelType + packageType)
}
