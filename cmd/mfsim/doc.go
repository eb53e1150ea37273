// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for mfsim.
//
// Every command loads the project file, opens a simulation over it, and
// delegates to the path resolver or the package registries of its models.
package cmd
