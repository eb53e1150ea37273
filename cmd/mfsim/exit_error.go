// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/mfsim/mfsim/pkg/types"
)

// ExitError carries the process status of a command whose failure has
// already been written to stderr. Err is the failure it reports, when the
// handler had one; a filter that selects nothing has none.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "mfsim: exit status " + e.Code.String()
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitCode maps a command error to the process status. Any error that is
// not an *ExitError with a valid code exits with ExitFailure.
func exitCode(err error) types.ExitCode {
	if err == nil {
		return types.ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if verr := exitErr.Code.Validate(); verr != nil {
			return types.ExitFailure
		}
		return exitErr.Code
	}
	return types.ExitFailure
}

// exitf is shorthand for handlers that print their own message.
func exitf(code types.ExitCode, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}
