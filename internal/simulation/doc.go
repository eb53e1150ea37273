// SPDX-License-Identifier: MPL-2.0

// Package simulation wires a project configuration into a path resolver, a
// data store, and one package registry per model.
package simulation
