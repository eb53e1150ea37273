// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfsim/mfsim/pkg/simpath"
	"github.com/mfsim/mfsim/pkg/types"
)

func newRelocateCommand(app *App) *cobra.Command {
	var action string
	cmd := &cobra.Command{
		Use:   "relocate <new-root>",
		Short: "Move the simulation root and copy its external files",
		Long: `Move the simulation root and copy its external files.

` + SubtitleStyle.Render("Actions:") + `
  copy_relative_paths   copy files given by relative path (default)
  copy_all              copy every file, absolute paths included
  copy_none             change the root only

The action defaults to ext_file_action from the project file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var act simpath.ExtFileAction
			if action != "" {
				parsed, err := simpath.ParseExtFileAction(action)
				if err != nil {
					return app.fail(cmd, err)
				}
				act = parsed
			}

			sim, err := app.openSimulation(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			defer func() { _ = sim.Close() }()

			n, err := sim.Relocate(cmd.Context(), types.FilesystemPath(args[0]), act)
			if err != nil {
				if n > 0 {
					_, _ = fmt.Fprintln(app.stderr, WarningStyle.Render(fmt.Sprintf("%d file(s) copied before the failure", n)))
				}
				return app.fail(cmd, err)
			}

			root, _ := sim.Resolver().Root(false)
			_, _ = fmt.Fprintf(app.stdout, "%s %d external file(s) copied to %s\n",
				SuccessStyle.Render("✓"), n, CmdStyle.Render(root.String()))
			return nil
		},
	}
	cmd.Flags().StringVar(&action, "action", "", "copy_all, copy_none, or copy_relative_paths")
	return cmd
}
