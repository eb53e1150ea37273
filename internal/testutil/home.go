// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the platform's home-directory variable at dir and
// returns a cleanup function that restores the original value. It backs
// tests of "~" expansion in simulation roots.
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
//
// Tests using it must not call t.Parallel.
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		return MustSetenv(t, "USERPROFILE", dir)
	default:
		return MustSetenv(t, "HOME", dir)
	}
}
