// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load project"},
			expected: "failed to load project",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "load project", Resource: "./mfsim.cue"},
			expected: "failed to load project: ./mfsim.cue",
		},
		{
			name: "operation, resource and cause",
			err: &ActionableError{
				Operation: "parse load filter",
				Resource:  "load_only",
				Cause:     errors.New("unsupported value 42"),
			},
			expected: "failed to parse load filter: load_only: unsupported value 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("permission denied")
	err := NewErrorContext().
		WithOperation("open store").
		WithResource("/tmp/mfsim.db").
		WithSuggestion("Check permissions").
		WithSuggestion("Use the memory backend").
		Wrap(&ActionableError{Operation: "create table", Cause: root}).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "  • Check permissions") || !strings.Contains(plain, "  • Use the memory backend") {
		t.Errorf("Format(false) missing suggestions:\n%s", plain)
	}
	if strings.Contains(plain, "Error chain:") {
		t.Errorf("Format(false) should not include the error chain:\n%s", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "2. permission denied") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
	if !errors.Is(err, root) {
		t.Error("errors.Is should find the root cause through the chain")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithResource("mfsim.cue")
	if ae := ctx.Build(); ae != nil {
		t.Errorf("Build() = %v, want nil", ae)
	}
	if err := ctx.BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want nil interface", err)
	}
}

func TestErrorContext_BuildCopiesSuggestions(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("load project").WithSuggestion("first")
	built := ctx.Build()
	ctx.WithSuggestion("second")
	if len(built.Suggestions) != 1 {
		t.Errorf("built error saw later suggestion: %v", built.Suggestions)
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
	cause := errors.New("boom")
	ae := WrapWithContext(cause, "resolve path", "gwf1/model.dis")
	if ae.Operation != "resolve path" || ae.Resource != "gwf1/model.dis" || !errors.Is(ae, cause) {
		t.Errorf("WrapWithContext() = %+v", ae)
	}
}
