// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mfsim/mfsim/pkg/types"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{"nil", nil, types.ExitOK},
		{"plain error", errors.New("unknown flag"), types.ExitFailure},
		{"exit error", &ExitError{Code: types.ExitNotFound}, types.ExitNotFound},
		{"wrapped exit error", fmt.Errorf("run: %w", &ExitError{Code: types.ExitUsage}), types.ExitUsage},
		{"out of range", &ExitError{Code: 300}, types.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitError_Message(t *testing.T) {
	t.Parallel()

	if got := (&ExitError{Code: types.ExitNotFound}).Error(); got != "mfsim: exit status 3" {
		t.Errorf("Error() = %q", got)
	}
	err := exitf(types.ExitNotFound, "%s not selected", "wel")
	if err.Error() != "wel not selected" || err.Code != types.ExitNotFound {
		t.Errorf("exitf() = %+v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Error("exitf() should wrap its message")
	}
}
