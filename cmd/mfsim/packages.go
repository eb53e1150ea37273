// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mfsim/mfsim/internal/simulation"
	"github.com/mfsim/mfsim/pkg/datastore"
	"github.com/mfsim/mfsim/pkg/pkgregistry"
	"github.com/mfsim/mfsim/pkg/types"
)

// packageRow is one package with the model it belongs to.
type packageRow struct {
	model *simulation.Model
	pkg   *pkgregistry.Package
}

// newPackagesCommand creates the `mfsim packages` command tree.
func newPackagesCommand(app *App) *cobra.Command {
	pkgCmd := &cobra.Command{
		Use:   "packages",
		Short: "Inspect and edit the package registries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var listModel string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List packages in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := app.openSimulation(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			defer func() { _ = sim.Close() }()

			models, err := selectModels(sim, listModel)
			if err != nil {
				return app.fail(cmd, err)
			}
			var rows []packageRow
			for _, m := range models {
				for _, pkg := range m.Packages.Packages() {
					rows = append(rows, packageRow{model: m, pkg: pkg})
				}
			}
			renderPackages(app.stdout, sim, rows)
			if n := sim.Skipped(); n > 0 {
				_, _ = fmt.Fprintln(app.stdout, VerboseStyle.Render(fmt.Sprintf("%d package(s) skipped by load_only", n)))
			}
			return nil
		},
	}
	listCmd.Flags().StringVarP(&listModel, "model", "m", "", "only list packages of this model")
	pkgCmd.AddCommand(listCmd)

	var (
		findModel string
		findOpts  pkgregistry.FindOptions
	)
	findCmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Look up packages by name, type, file name, or name prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := app.openSimulation(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			defer func() { _ = sim.Close() }()

			models, err := selectModels(sim, findModel)
			if err != nil {
				return app.fail(cmd, err)
			}
			var rows []packageRow
			for _, m := range models {
				for _, pkg := range m.Packages.Find(args[0], findOpts).All() {
					rows = append(rows, packageRow{model: m, pkg: pkg})
				}
			}
			if len(rows) == 0 {
				return app.fail(cmd, fmt.Errorf("package %q: %w", args[0], errNoMatch))
			}
			renderPackages(app.stdout, sim, rows)
			return nil
		},
	}
	findCmd.Flags().StringVarP(&findModel, "model", "m", "", "only search this model")
	findCmd.Flags().BoolVar(&findOpts.TypeOnly, "type-only", false, "match package types only")
	findCmd.Flags().BoolVar(&findOpts.NameOnly, "name-only", false, "skip the package type lookup")
	findCmd.MarkFlagsMutuallyExclusive("type-only", "name-only")
	pkgCmd.AddCommand(findCmd)

	var filterEntries []string
	matchCmd := &cobra.Command{
		Use:   "match <type> [name]",
		Short: "Check whether the load filter selects a package",
		Long: `Check whether the load filter selects a package.

The filter is load_only from the project file unless --filter is given.
Entries match the type or the name, ignoring case; versioned type codes such
as gwf6-gwf6 also match entries without the version digits.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := filterEntries
			if len(entries) == 0 {
				cfg, err := app.loadConfig(cmd.Context())
				if err != nil {
					return app.fail(cmd, err)
				}
				entries = cfg.LoadOnly
			}
			name := ""
			if len(args) == 2 {
				name = args[1]
			}

			filter := pkgregistry.NewLoadFilter(entries...)
			if len(entries) == 0 {
				filter = nil
			}
			if filter.Selects(args[0], name) {
				_, _ = fmt.Fprintf(app.stdout, "%s %s selected by %s\n", SuccessStyle.Render("✓"), args[0], filterLabel(filter))
				return nil
			}
			_, _ = fmt.Fprintf(app.stdout, "%s %s not selected by %s\n", ErrorStyle.Render("✗"), args[0], filterLabel(filter))
			cmd.SilenceErrors = true
			return exitf(types.ExitNotFound, "%s not selected by %s", args[0], filterLabel(filter))
		},
	}
	matchCmd.Flags().StringSliceVar(&filterEntries, "filter", nil, "filter entries, overriding load_only")
	pkgCmd.AddCommand(matchCmd)

	pkgCmd.AddCommand(&cobra.Command{
		Use:   "rename <model> <query> <new-name>",
		Short: "Rename a package and rebase its data store entries",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := app.openSimulation(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			defer func() { _ = sim.Close() }()

			pkg, err := sim.RenamePackage(cmd.Context(), types.ModelName(args[0]), args[1], args[2])
			if err != nil {
				return app.fail(cmd, err)
			}
			_, _ = fmt.Fprintf(app.stdout, "%s renamed to %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(pkg.Path.String()))
			if err := printKeys(cmd.Context(), app.stdout, sim.Store(), datastore.Key{args[0]}); err != nil {
				return app.fail(cmd, err)
			}
			return nil
		},
	})

	pkgCmd.AddCommand(&cobra.Command{
		Use:   "remove <model> <query>",
		Short: "Remove a package and its data store entries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := app.openSimulation(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			defer func() { _ = sim.Close() }()

			pkg, err := sim.RemovePackage(cmd.Context(), types.ModelName(args[0]), args[1])
			if err != nil {
				return app.fail(cmd, err)
			}
			_, _ = fmt.Fprintf(app.stdout, "%s removed %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(pkg.Path.String()))
			if err := printKeys(cmd.Context(), app.stdout, sim.Store(), datastore.Key{args[0]}); err != nil {
				return app.fail(cmd, err)
			}
			return nil
		},
	})

	pkgCmd.AddCommand(&cobra.Command{
		Use:   "keys [model]",
		Short: "List data store keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := app.openSimulation(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			defer func() { _ = sim.Close() }()

			var path datastore.Key
			if len(args) == 1 {
				if _, err := sim.Model(types.ModelName(args[0])); err != nil {
					return app.fail(cmd, err)
				}
				path = datastore.Key{args[0]}
			}
			if err := printKeys(cmd.Context(), app.stdout, sim.Store(), path); err != nil {
				return app.fail(cmd, err)
			}
			return nil
		},
	})

	return pkgCmd
}

func selectModels(sim *simulation.Simulation, name string) ([]*simulation.Model, error) {
	if name == "" {
		return sim.Models(), nil
	}
	m, err := sim.Model(types.ModelName(name))
	if err != nil {
		return nil, err
	}
	return []*simulation.Model{m}, nil
}

func renderPackages(w io.Writer, sim *simulation.Simulation, rows []packageRow) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("MODEL", "NAME", "TYPE", "FILENAME", "KIND")

	for _, r := range rows {
		kind := "-"
		if k, ok := sim.Kind(r.model, r.pkg); ok {
			kind = k.Description
		}
		t.Row(string(r.model.Name), r.pkg.Name, r.pkg.Type, r.pkg.Filename, kind)
	}
	_, _ = fmt.Fprintln(w, t.Render())
}

// printKeys lists the store keys sharing a prefix with path; an empty path
// lists every key.
func printKeys(ctx context.Context, w io.Writer, store datastore.Store, path datastore.Key) error {
	var (
		keys []datastore.Key
		err  error
	)
	if len(path) == 0 {
		keys, err = store.Keys(ctx)
	} else {
		keys, err = datastore.MatchingKeys(ctx, store, path)
	}
	if err != nil {
		return err
	}
	for _, k := range keys {
		_, _ = fmt.Fprintln(w, k.String())
	}
	return nil
}

func filterLabel(f pkgregistry.LoadFilter) string {
	if f == nil {
		return "an empty filter (everything loads)"
	}
	return "load filter " + f.String()
}
