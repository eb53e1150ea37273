// SPDX-License-Identifier: MPL-2.0

// Package pkgregistry keeps the packages of a model or simulation indexed by
// name, type, and filename, and keeps the hierarchical data store in step
// with their identity.
//
// Packages live in an arena keyed by a stable ID; the indexes hold IDs. Name,
// type, and filename lookups are case-insensitive. Removing a package purges
// every data store key that shares a prefix with its path; renaming it
// rewrites the identity position of the keys below its path.
//
// A Registry is not safe for concurrent mutation.
package pkgregistry
