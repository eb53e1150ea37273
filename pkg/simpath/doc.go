// SPDX-License-Identifier: MPL-2.0

// Package simpath resolves file path specifications against a simulation
// root and per-model working directories, and tracks the external files a
// simulation references so they can follow the simulation when its root
// moves.
//
// Resolution is lexical. A Resolver never touches the filesystem except in
// RelocateFiles, which copies files from the last loaded location (see
// Snapshot) to the current one.
//
// A Resolver is not safe for concurrent mutation; callers that share one
// across goroutines must serialize access.
package simpath
