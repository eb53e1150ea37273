// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfsim/mfsim/internal/config"
	"github.com/mfsim/mfsim/pkg/types"
)

// newConfigCommand creates the `mfsim config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the project configuration",
		Long: `Manage the project configuration.

The project file is ./mfsim.cue unless --project names another file.
Scalar settings can be overridden with MFSIM_* environment variables,
e.g. MFSIM_VERBOSITY=verbose or MFSIM_STORE_BACKEND=sqlite.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			showConfig(app, cfg)
			return nil
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE or TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(cmd, err)
			}
			switch format {
			case "cue":
				_, _ = fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			case "toml":
				out, err := config.GenerateTOML(cfg)
				if err != nil {
					return app.fail(cmd, err)
				}
				_, _ = fmt.Fprint(app.stdout, out)
			default:
				return app.fail(cmd, fmt.Errorf("unknown format %q (valid: cue, toml)", format))
			}
			return nil
		},
	}
	dumpCmd.Flags().StringVarP(&format, "format", "f", "cue", "output format: cue or toml")
	cfgCmd.AddCommand(dumpCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init [dir]",
		Short: "Create a default project file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, err := config.CreateDefault(types.FilesystemPath(dir))
			if err != nil {
				return app.fail(cmd, err)
			}
			_, _ = fmt.Fprintf(app.stdout, "%s created %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(path))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the CUE schema of the project file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprint(app.stdout, config.Schema())
			return nil
		},
	})

	return cfgCmd
}

func showConfig(app *App, cfg *config.Config) {
	w := app.stdout
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	_, _ = fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	_, _ = fmt.Fprintln(w)

	if cfg.ProjectFile != "" {
		_, _ = fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Project file"), cfg.ProjectFile)
	} else {
		_, _ = fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Project file"), SubtitleStyle.Render("(using defaults)"))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("root"), valueStyle.Render(cfg.Root.String()))
	_, _ = fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("verbosity"), valueStyle.Render(string(app.verbosity(cfg))))
	_, _ = fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("ext_file_action"), valueStyle.Render(cfg.ExtFileAction.String()))
	_, _ = fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("debug"), valueStyle.Render(fmt.Sprint(cfg.Debug)))
	_, _ = fmt.Fprintf(w, "%s: %s", keyStyle.Render("store"), valueStyle.Render(cfg.Store.Backend.String()))
	if cfg.Store.Backend == config.StoreSQLite {
		_, _ = fmt.Fprintf(w, " (%s)", cfg.Store.Path)
	}
	_, _ = fmt.Fprintln(w)

	if len(cfg.LoadOnly) > 0 {
		_, _ = fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("load_only"), valueStyle.Render(strings.Join(cfg.LoadOnly, ", ")))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, TitleStyle.Render("Models"))
	if len(cfg.Models) == 0 {
		_, _ = fmt.Fprintln(w, SubtitleStyle.Render("  (none)"))
	}
	for _, m := range cfg.Models {
		rel := m.Path.String()
		if rel == "" {
			rel = "."
		}
		_, _ = fmt.Fprintf(w, "  %s %s %s\n", keyStyle.Render(m.Name.String()), VerboseStyle.Render(m.ModelType()), rel)
	}

	if len(cfg.ExternalFiles) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, TitleStyle.Render("External files"))
		for _, f := range cfg.ExternalFiles {
			models := make([]string, len(f.Models))
			for i, m := range f.Models {
				models[i] = m.String()
			}
			_, _ = fmt.Fprintf(w, "  %s %s\n", keyStyle.Render(f.Path.String()), VerboseStyle.Render(strings.Join(models, ", ")))
		}
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s: %d\n", keyStyle.Render("packages"), len(cfg.Packages))
}
