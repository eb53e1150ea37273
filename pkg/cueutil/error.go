// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	stderrors "errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// DefaultMaxFileSize bounds the documents ParseAndDecode accepts.
const DefaultMaxFileSize int64 = 4 << 20

// FieldError is one validation failure inside a document.
type FieldError struct {
	// Field is the JSON-style path of the offending value, e.g. "models[0].name".
	Field   string
	Message string
}

// Error returns "<field>: <message>", or the message alone for
// document-level failures.
func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationError collects the failures of one document.
type ValidationError struct {
	File   string
	Fields []FieldError
}

// Error lists every failure, one per line after the first.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%s: %s", e.File, e.Fields[0])
	}
	lines := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		lines[i] = f.Error()
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.File, strings.Join(lines, "\n  "))
}

// FormatError converts a CUE error into a *ValidationError. Errors that
// carry no CUE detail are wrapped with the file name.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}
	var cueErr errors.Error
	if !stderrors.As(err, &cueErr) {
		return fmt.Errorf("%s: %w", file, err)
	}
	cueErrs := errors.Errors(err)

	verr := &ValidationError{File: file}
	for _, e := range cueErrs {
		field := formatPath(errors.Path(e))
		msg := e.Error()
		if field != "" && strings.HasPrefix(msg, field) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, field), ":"))
		}
		verr.Fields = append(verr.Fields, FieldError{Field: field, Message: msg})
	}
	return verr
}

// formatPath joins CUE path selectors, writing numeric selectors as indices:
// ["packages", "1", "type"] becomes "packages[1].type".
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			b.WriteString("[" + part + "]")
		case i > 0:
			b.WriteString("." + part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize returns an error when data is larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, file string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", file, len(data), maxSize)
	}
	return nil
}
