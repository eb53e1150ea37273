// SPDX-License-Identifier: MPL-2.0

package platform

import "testing"

func TestIsWindowsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"CON lowercase", "con", true},
		{"CON mixed case", "Con", true},
		{"AUX", "aux", true},
		{"COM9", "com9", true},
		{"LPT1", "LPT1", true},

		{"package file", "nul.dis", true},
		{"double extension", "con.tar.gz", true},

		{"model name", "gwf1", false},
		{"model file", "gwf1.dis", false},
		{"contains reserved", "confile", false},
		{"COM10", "com10", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsWindowsReservedName(tt.input); got != tt.expected {
				t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWindowsReservedNames_Count(t *testing.T) {
	t.Parallel()

	if got := len(WindowsReservedNames); got != 22 {
		t.Errorf("WindowsReservedNames has %d entries, want 22", got)
	}
}
