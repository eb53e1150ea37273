// SPDX-License-Identifier: MPL-2.0

package simpath

import (
	"context"
	"errors"
	"fmt"
)

const (
	// CopyAll copies every external file into the new root.
	CopyAll ExtFileAction = "copy_all"
	// CopyNone leaves external files where they are.
	CopyNone ExtFileAction = "copy_none"
	// CopyRelativePaths copies only files given by a relative path.
	CopyRelativePaths ExtFileAction = "copy_relative_paths"
)

// ErrInvalidExtFileAction is the sentinel error wrapped by InvalidExtFileActionError.
var ErrInvalidExtFileAction = errors.New("invalid external file action")

type (
	// ExtFileAction decides which external files follow the simulation when
	// its root changes.
	ExtFileAction string

	// InvalidExtFileActionError is returned for an unknown action name.
	InvalidExtFileActionError struct {
		Value ExtFileAction
	}
)

// Error implements the error interface.
func (e *InvalidExtFileActionError) Error() string {
	return fmt.Sprintf("invalid external file action %q (valid: %s, %s, %s)", e.Value, CopyAll, CopyNone, CopyRelativePaths)
}

// Unwrap returns ErrInvalidExtFileAction for errors.Is() compatibility.
func (e *InvalidExtFileActionError) Unwrap() error { return ErrInvalidExtFileAction }

// String returns the string representation of the action.
func (a ExtFileAction) String() string { return string(a) }

// Validate returns an *InvalidExtFileActionError for unknown actions.
func (a ExtFileAction) Validate() error {
	switch a {
	case CopyAll, CopyNone, CopyRelativePaths:
		return nil
	default:
		return &InvalidExtFileActionError{Value: a}
	}
}

// ParseExtFileAction parses an action name. The empty string selects
// CopyRelativePaths.
func ParseExtFileAction(s string) (ExtFileAction, error) {
	if s == "" {
		return CopyRelativePaths, nil
	}
	a := ExtFileAction(s)
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

// ApplyExtFileAction relocates external files as action prescribes and
// returns how many were copied.
func (r *Resolver) ApplyExtFileAction(ctx context.Context, action ExtFileAction) (int, error) {
	switch action {
	case CopyNone:
		return 0, nil
	case CopyAll:
		return r.RelocateFiles(ctx, false)
	case CopyRelativePaths:
		return r.RelocateFiles(ctx, true)
	default:
		return 0, &InvalidExtFileActionError{Value: action}
	}
}
