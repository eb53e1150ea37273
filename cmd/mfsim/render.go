// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mfsim/mfsim/internal/config"
	"github.com/mfsim/mfsim/internal/issue"
	"github.com/mfsim/mfsim/internal/simulation"
	"github.com/mfsim/mfsim/pkg/cueutil"
	"github.com/mfsim/mfsim/pkg/pkgregistry"
	"github.com/mfsim/mfsim/pkg/types"
)

// errNoMatch is returned by lookups that found nothing.
var errNoMatch = errors.New("no match")

// formatErrorForDisplay formats an error for user display. ActionableErrors
// and DataErrors use their Format methods; verbose mode adds the cause chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	var de *issue.DataError
	if errors.As(err, &de) {
		return de.Format(verbose)
	}
	return err.Error()
}

// classify maps err to its catalog guidance and exit code.
func classify(err error) (issue.Id, types.ExitCode) {
	var de *issue.DataError
	var ve *cueutil.ValidationError
	switch {
	case errors.Is(err, config.ErrProjectNotFound):
		return issue.ProjectNotFoundId, types.ExitUsage
	case errors.As(err, &ve), errors.Is(err, config.ErrInvalidConfig):
		return issue.ProjectParseErrorId, types.ExitUsage
	case errors.Is(err, pkgregistry.ErrInvalidLoadFilter):
		return issue.InvalidLoadFilterId, types.ExitUsage
	case errors.Is(err, simulation.ErrStoreOpen):
		return issue.StoreOpenFailedId, types.ExitFailure
	case errors.Is(err, simulation.ErrUnknownModel):
		return issue.ModelNotFoundId, types.ExitNotFound
	case errors.Is(err, pkgregistry.ErrNotRegistered), errors.Is(err, errNoMatch):
		return issue.PackageNotFoundId, types.ExitNotFound
	case errors.As(err, &de):
		return issue.RelocationFailedId, types.ExitFailure
	default:
		return 0, types.ExitFailure
	}
}

// renderError writes err and, when one applies, its catalog guidance to w.
func renderError(w io.Writer, err error, verbose bool) types.ExitCode {
	id, code := classify(err)
	_, _ = fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	if id != 0 {
		if rendered, rerr := issue.Get(id).Render("dark"); rerr == nil {
			_, _ = fmt.Fprint(w, rendered)
		}
	}
	return code
}

// fail renders err to the app's stderr and returns an ExitError carrying the
// classified exit code, silencing Cobra's own error output.
func (a *App) fail(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: renderError(a.stderr, err, a.flags.verbose)}
}
