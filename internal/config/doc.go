// SPDX-License-Identifier: MPL-2.0

// Package config loads the simulation project file using Viper with CUE as
// the file format.
//
// The project file is mfsim.cue in the working directory unless a path is
// given explicitly. It is validated against an embedded CUE schema
// (config_schema.cue) and merged over defaults, so a missing file yields the
// default configuration. Scalar settings can be overridden with MFSIM_*
// environment variables, e.g. MFSIM_VERBOSITY=verbose.
package config
