// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mfsim/mfsim/pkg/platform"
)

// ErrInvalidModelName is the sentinel error wrapped by InvalidModelNameError.
var ErrInvalidModelName = errors.New("invalid model name")

type (
	// ModelName identifies a submodel of a simulation (e.g. "gwf1").
	ModelName string

	// InvalidModelNameError is returned when a ModelName is empty, carries
	// surrounding whitespace, contains a path separator, or is a reserved
	// device name.
	InvalidModelNameError struct {
		Value  ModelName
		Reason string
	}
)

// String returns the string representation of the ModelName.
func (m ModelName) String() string { return string(m) }

// Validate returns an *InvalidModelNameError if the name cannot be used as a
// model identifier.
func (m ModelName) Validate() error {
	s := string(m)
	switch {
	case strings.TrimSpace(s) == "":
		return &InvalidModelNameError{Value: m, Reason: "must be non-empty"}
	case strings.TrimSpace(s) != s:
		return &InvalidModelNameError{Value: m, Reason: "must not have leading or trailing whitespace"}
	case strings.ContainsAny(s, `/\`):
		return &InvalidModelNameError{Value: m, Reason: "must not contain path separators"}
	case platform.IsWindowsReservedName(s):
		return &InvalidModelNameError{Value: m, Reason: "is a reserved file name on Windows"}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidModelNameError) Error() string {
	return fmt.Sprintf("invalid model name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidModelName for errors.Is() compatibility.
func (e *InvalidModelNameError) Unwrap() error { return ErrInvalidModelName }
