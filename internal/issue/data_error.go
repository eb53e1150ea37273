// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

// DataError reports a failure tied to a location in the simulation: the
// owning model and package, the path involved, what was being done, and the
// method that caught the underlying cause. Empty location fields are left
// out of the message.
type DataError struct {
	Model       string
	Package     string
	Path        string
	Process     string
	DataElement string
	Method      string
	// Messages are additional details, listed after the summary line.
	Messages []string
	Cause    error
	// Debug asks renderers to include the full cause chain.
	Debug bool
}

// Extend layers overrides on top of err. When err already is (or wraps) a
// DataError its fields are copied first and every non-empty override
// replaces them; otherwise err becomes the cause of a new DataError.
func Extend(err error, overrides DataError) *DataError {
	var out DataError
	var inner *DataError
	if errors.As(err, &inner) {
		out = *inner
		out.Messages = append([]string(nil), inner.Messages...)
	} else {
		out.Cause = err
	}

	if overrides.Model != "" {
		out.Model = overrides.Model
	}
	if overrides.Package != "" {
		out.Package = overrides.Package
	}
	if overrides.Path != "" {
		out.Path = overrides.Path
	}
	if overrides.Process != "" {
		out.Process = overrides.Process
	}
	if overrides.DataElement != "" {
		out.DataElement = overrides.DataElement
	}
	if overrides.Method != "" {
		out.Method = overrides.Method
	}
	if overrides.Cause != nil {
		out.Cause = overrides.Cause
	}
	out.Messages = append(out.Messages, overrides.Messages...)
	out.Debug = out.Debug || overrides.Debug
	return &out
}

// Error implements the error interface.
func (e *DataError) Error() string {
	var msg strings.Builder
	msg.WriteString("error in ")
	if e.DataElement != "" {
		fmt.Fprintf(&msg, "data element %q ", e.DataElement)
	}
	if e.Model != "" {
		fmt.Fprintf(&msg, "model %q ", e.Model)
	}
	if e.Package != "" {
		fmt.Fprintf(&msg, "package %q ", e.Package)
	}
	fmt.Fprintf(&msg, "while %s", e.Process)
	if e.Method != "" {
		fmt.Fprintf(&msg, " in %s", e.Method)
	}
	if e.Path != "" {
		fmt.Fprintf(&msg, " (path %s)", e.Path)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the underlying cause.
func (e *DataError) Unwrap() error { return e.Cause }

// Format renders the error with its numbered messages. The cause chain is
// appended when verbose or Debug is set.
func (e *DataError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())
	if len(e.Messages) > 0 {
		msg.WriteString("\nAdditional information:")
		for i, m := range e.Messages {
			fmt.Fprintf(&msg, "\n  (%d) %s", i+1, m)
		}
	}
	if (verbose || e.Debug) && e.Cause != nil {
		writeChain(&msg, e.Cause)
	}
	return msg.String()
}
