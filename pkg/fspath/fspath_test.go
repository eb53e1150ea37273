// SPDX-License-Identifier: MPL-2.0

package fspath_test

import (
	"path/filepath"
	"testing"

	"github.com/mfsim/mfsim/internal/testutil"
	"github.com/mfsim/mfsim/pkg/fspath"
	"github.com/mfsim/mfsim/pkg/types"
)

func TestJoinStr(t *testing.T) {
	t.Parallel()

	got := fspath.JoinStr(types.FilesystemPath("sims"), "gwf1", "model.dis")
	want := types.FilesystemPath(filepath.Join("sims", "gwf1", "model.dis"))
	if got != want {
		t.Errorf("JoinStr() = %q, want %q", got, want)
	}
}

func TestStripQuotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   types.FilesystemPath
		want types.FilesystemPath
	}{
		{"'data/heads.txt'", "data/heads.txt"},
		{`"data/heads.txt"`, "data/heads.txt"},
		{`'it"s'`, "its"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := fspath.StripQuotes(tt.in); got != tt.want {
			t.Errorf("StripQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsTrivial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   types.FilesystemPath
		want bool
	}{
		{"", true},
		{".", true},
		{"./", true},
		{"./.", true},
		{"gwf1", false},
		{"/", false},
	}
	for _, tt := range tests {
		if got := fspath.IsTrivial(tt.in); got != tt.want {
			t.Errorf("IsTrivial(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRelativeTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   types.FilesystemPath
		base   types.FilesystemPath
		want   types.FilesystemPath
		wantOK bool
	}{
		{"nested", "gwf1/sub/file.txt", "gwf1", types.FilesystemPath(filepath.Join("sub", "file.txt")), true},
		{"equal", "gwf1", "gwf1", ".", true},
		{"redundant separators", "./gwf1//a.txt", "gwf1/", "a.txt", true},
		{"not a prefix", "other/a.txt", "gwf1", "other/a.txt", false},
		{"partial component", "gwf10/a.txt", "gwf1", "gwf10/a.txt", false},
		{"base longer", "gwf1", "gwf1/sub", "gwf1", false},
		{"absolute against relative", "/gwf1/a.txt", "gwf1", "/gwf1/a.txt", false},
		{"absolute", "/sims/gwf1/a.txt", "/sims", types.FilesystemPath(filepath.Join("gwf1", "a.txt")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := fspath.RelativeTo(tt.path, tt.base)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("RelativeTo(%q, %q) = %q, %v; want %q, %v", tt.path, tt.base, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))

	tests := []struct {
		in   types.FilesystemPath
		want types.FilesystemPath
	}{
		{"~", types.FilesystemPath(home)},
		{"~/sims/base", types.FilesystemPath(filepath.Join(home, "sims", "base"))},
		{"sims/~", "sims/~"},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		got, err := fspath.ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAbsolute(t *testing.T) {
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))

	got, err := fspath.Absolute("~/sims/../sims/base")
	if err != nil {
		t.Fatalf("Absolute() error = %v", err)
	}
	want := types.FilesystemPath(filepath.Join(home, "sims", "base"))
	if got != want {
		t.Errorf("Absolute() = %q, want %q", got, want)
	}

	rel, err := fspath.Absolute("relative")
	if err != nil {
		t.Fatalf("Absolute(relative) error = %v", err)
	}
	if !fspath.IsAbs(rel) {
		t.Errorf("Absolute(relative) = %q, want an absolute path", rel)
	}
}
