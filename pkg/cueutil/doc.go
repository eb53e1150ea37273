// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles CUE documents against an embedded schema and
// reports validation failures with JSON-style field paths, such as
// "packages[1].type: incomplete value".
//
//	//go:embed project_schema.cue
//	var schema string
//
//	doc, err := cueutil.ParseAndDecode[map[string]any](schema, data, "#Project",
//	    cueutil.WithFilename("mfsim.cue"))
package cueutil
