// SPDX-License-Identifier: MPL-2.0

package simpath

import (
	"path/filepath"
	"strconv"
	"strings"
)

// UniqueFileName returns "<stem>_<n><ext>" for the smallest n >= 0 that
// taken reports as free. The extension is kept when name has one.
//
//	UniqueFileName("model.wel", taken) // "model_0.wel", "model_1.wel", ...
func UniqueFileName(name string, taken func(string) bool) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 0; ; n++ {
		candidate := stem + "_" + strconv.Itoa(n) + ext
		if !taken(candidate) {
			return candidate
		}
	}
}
