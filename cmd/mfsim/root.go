// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the mfsim command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mfsim",
		Short: "Resolve simulation paths and manage model packages",
		Long: TitleStyle.Render("mfsim") + SubtitleStyle.Render(" - simulation path resolver and package registry") + `

mfsim reads a project file (mfsim.cue) describing a simulation root, its
models and their relative paths, external files, and packages. It resolves
file paths the way the simulation sees them and relocates external files
when the simulation moves.

` + SubtitleStyle.Render("Examples:") + `
  mfsim resolve data/k.txt          Resolve a path against the root
  mfsim model-path gwf1             Show the working directory of a model
  mfsim relocate ../run2            Move the simulation and copy its files
  mfsim packages find wel           Look up packages by name or type
  mfsim config show                 Show the effective configuration`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&app.flags.project, "project", "p", "", "project file (default is ./mfsim.cue)")
	flags.StringVar(&app.flags.dir, "dir", "", "directory searched for mfsim.cue")
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&app.flags.quiet, "quiet", "q", false, "only report warnings and errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("project", "dir")

	rootCmd.AddCommand(newResolveCommand(app))
	rootCmd.AddCommand(newModelPathCommand(app))
	rootCmd.AddCommand(newStripCommand(app))
	rootCmd.AddCommand(newRelocateCommand(app))
	rootCmd.AddCommand(newPackagesCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command and exits with its status. It is called by
// main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(int(exitCode(err)))
	}
}
