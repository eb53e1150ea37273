// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path FilesystemPath
		want bool
	}{
		{"absolute path", FilesystemPath("/sims/base"), true},
		{"relative path", FilesystemPath("gwf1/model.dis"), true},
		{"quoted path", FilesystemPath("'data/heads.txt'"), true},
		{"dot path", FilesystemPath("."), true},
		{"home shorthand", FilesystemPath("~/sims"), true},
		{"empty is invalid", FilesystemPath(""), false},
		{"whitespace only is invalid", FilesystemPath("   "), false},
		{"tab only is invalid", FilesystemPath("\t"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.path.Validate()
			if (err == nil) != tt.want {
				t.Fatalf("FilesystemPath(%q).Validate() error = %v, wantValid %v", tt.path, err, tt.want)
			}
			if tt.want {
				return
			}
			if !errors.Is(err, ErrInvalidFilesystemPath) {
				t.Errorf("error should wrap ErrInvalidFilesystemPath, got: %v", err)
			}
			var fpErr *InvalidFilesystemPathError
			if !errors.As(err, &fpErr) {
				t.Errorf("error should be *InvalidFilesystemPathError, got: %T", err)
			}
			ok, errs := tt.path.IsValid()
			if ok || len(errs) != 1 {
				t.Errorf("IsValid() = %v, %v; want false with one error", ok, errs)
			}
		})
	}
}

func TestFilesystemPath_String(t *testing.T) {
	t.Parallel()
	p := FilesystemPath("/sims/base")
	if p.String() != "/sims/base" {
		t.Errorf("FilesystemPath.String() = %q, want %q", p.String(), "/sims/base")
	}
}
