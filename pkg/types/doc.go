// SPDX-License-Identifier: MPL-2.0

// Package types holds the small validated value types shared by the path
// resolver, the package registry, and the CLI.
package types
