// SPDX-License-Identifier: MPL-2.0

// Package logging builds the charmbracelet logger shared by the CLI and the
// simulation packages.
package logging

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

const (
	// VerbosityQuiet reports warnings and errors only.
	VerbosityQuiet Verbosity = "quiet"
	// VerbosityNormal adds informational messages.
	VerbosityNormal Verbosity = "normal"
	// VerbosityVerbose adds debug messages such as registry mutations.
	VerbosityVerbose Verbosity = "verbose"
)

// ErrInvalidVerbosity is the sentinel error wrapped by InvalidVerbosityError.
var ErrInvalidVerbosity = errors.New("invalid verbosity")

type (
	// Verbosity selects how much the CLI reports.
	Verbosity string

	// InvalidVerbosityError is returned for an unknown verbosity name.
	InvalidVerbosityError struct {
		Value Verbosity
	}
)

// Error implements the error interface.
func (e *InvalidVerbosityError) Error() string {
	return fmt.Sprintf("invalid verbosity %q (valid: quiet, normal, verbose)", e.Value)
}

// Unwrap returns ErrInvalidVerbosity for errors.Is() compatibility.
func (e *InvalidVerbosityError) Unwrap() error { return ErrInvalidVerbosity }

// Validate returns an *InvalidVerbosityError for unknown values. The empty
// value is valid and means VerbosityNormal.
func (v Verbosity) Validate() error {
	switch v {
	case "", VerbosityQuiet, VerbosityNormal, VerbosityVerbose:
		return nil
	default:
		return &InvalidVerbosityError{Value: v}
	}
}

// Level maps the verbosity to a log level.
func (v Verbosity) Level() log.Level {
	switch v {
	case VerbosityQuiet:
		return log.WarnLevel
	case VerbosityVerbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// New returns a logger writing to w at the level v selects. Debug output
// carries the caller location.
func New(w io.Writer, v Verbosity) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "mfsim",
		Level:           v.Level(),
		ReportCaller:    v == VerbosityVerbose,
		ReportTimestamp: false,
	})
}
