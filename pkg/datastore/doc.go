// SPDX-License-Identifier: MPL-2.0

// Package datastore defines the hierarchically keyed data store that holds
// transient package data, and the prefix algorithms that keep its keys in
// step with package identity.
//
// A key is an ordered tuple of identifiers. A package owns every key that
// shares a prefix with its identity path, compared position by position
// over the shorter of the two tuples. Removing a package deletes those keys;
// renaming it rewrites the identity position and keeps any trailing
// components.
//
// Stores implement the four-method Store contract. Stores that can do better
// than a full key enumeration implement Scanner; stores that can re-key in
// place implement Mover. The package-level helpers use these when present.
package datastore
