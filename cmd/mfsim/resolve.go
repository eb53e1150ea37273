// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfsim/mfsim/internal/simulation"
	"github.com/mfsim/mfsim/pkg/simpath"
	"github.com/mfsim/mfsim/pkg/types"
)

func newResolveCommand(app *App) *cobra.Command {
	var (
		root          string
		lastLoaded    bool
		forceIntoRoot bool
	)
	cmd := &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Resolve file paths against the simulation root",
		Long: `Resolve file paths against the simulation root.

Quote characters are stripped. Absolute paths are printed unchanged unless
--force-into-root is set, in which case the root itself is printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := app.openSimulation(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			defer func() { _ = sim.Close() }()

			r := sim.Resolver()
			if root != "" {
				if err := r.SetRoot(types.FilesystemPath(root)); err != nil {
					return app.fail(cmd, err)
				}
			}
			opts := simpath.ResolveOptions{UseLastLoaded: lastLoaded, ForceIntoRoot: forceIntoRoot}
			for _, arg := range args {
				_, _ = fmt.Fprintln(app.stdout, r.Resolve(types.FilesystemPath(arg), opts))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "resolve against this root instead of the configured one")
	cmd.Flags().BoolVar(&lastLoaded, "last-loaded", false, "resolve against the root the project was loaded from")
	cmd.Flags().BoolVar(&forceIntoRoot, "force-into-root", false, "map absolute paths to the root")
	return cmd
}

func newModelPathCommand(app *App) *cobra.Command {
	var lastLoaded bool
	cmd := &cobra.Command{
		Use:   "model-path <model>",
		Short: "Show the working directory of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := app.openSimulation(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			defer func() { _ = sim.Close() }()

			model := types.ModelName(args[0])
			if err := model.Validate(); err != nil {
				return app.fail(cmd, err)
			}
			if _, err := sim.Model(model); err != nil {
				return app.fail(cmd, err)
			}
			_, _ = fmt.Fprintln(app.stdout, sim.Resolver().ModelPath(model, lastLoaded))
			return nil
		},
	}
	cmd.Flags().BoolVar(&lastLoaded, "last-loaded", false, "use the paths the project was loaded with")
	return cmd
}

func newStripCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "strip <model> <path>",
		Short: "Remove a model's relative path from the front of a path",
		Long: `Remove a model's relative path from the front of a path.

The result uses forward slashes. A path outside the model directory is
printed unchanged and a warning is logged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := app.openSimulation(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			defer func() { _ = sim.Close() }()

			out, err := stripModelPrefix(sim, types.ModelName(args[0]), types.FilesystemPath(args[1]))
			if err != nil {
				return app.fail(cmd, err)
			}
			_, _ = fmt.Fprintln(app.stdout, out)
			return nil
		},
	}
}

func stripModelPrefix(sim *simulation.Simulation, model types.ModelName, path types.FilesystemPath) (types.FilesystemPath, error) {
	if _, err := sim.Model(model); err != nil {
		return "", err
	}
	return sim.Resolver().StripModelPrefix(model, path), nil
}
