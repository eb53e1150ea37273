// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that fail fast on
// setup errors: environment and home-directory overrides, and file fixtures
// for simulation workspaces.
package testutil
