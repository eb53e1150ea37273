// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// GenerateCUE renders cfg as a project file.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// mfsim project file\n\n")
	fmt.Fprintf(&sb, "root: %q\n", cfg.Root)
	fmt.Fprintf(&sb, "debug: %v\n", cfg.Debug)
	fmt.Fprintf(&sb, "verbosity: %q\n", cfg.Verbosity)
	fmt.Fprintf(&sb, "ext_file_action: %q\n", cfg.ExtFileAction)

	sb.WriteString("\nstore: {\n")
	fmt.Fprintf(&sb, "\tbackend: %q\n", cfg.Store.Backend)
	if cfg.Store.Path != "" {
		fmt.Fprintf(&sb, "\tpath: %q\n", cfg.Store.Path)
	}
	sb.WriteString("}\n")

	if len(cfg.Models) > 0 {
		sb.WriteString("\nmodels: [\n")
		for _, m := range cfg.Models {
			fmt.Fprintf(&sb, "\t{name: %q", m.Name)
			if m.Type != "" {
				fmt.Fprintf(&sb, ", type: %q", m.Type)
			}
			if m.Path != "" {
				fmt.Fprintf(&sb, ", path: %q", m.Path)
			}
			sb.WriteString("},\n")
		}
		sb.WriteString("]\n")
	}

	if len(cfg.ExternalFiles) > 0 {
		sb.WriteString("\nexternal_files: [\n")
		for _, f := range cfg.ExternalFiles {
			models := make([]string, len(f.Models))
			for i, m := range f.Models {
				models[i] = fmt.Sprintf("%q", m)
			}
			fmt.Fprintf(&sb, "\t{path: %q, models: [%s]},\n", f.Path, strings.Join(models, ", "))
		}
		sb.WriteString("]\n")
	}

	if len(cfg.Packages) > 0 {
		sb.WriteString("\npackages: [\n")
		for _, p := range cfg.Packages {
			fmt.Fprintf(&sb, "\t{model: %q, type: %q", p.Model, p.Type)
			if p.Name != "" {
				fmt.Fprintf(&sb, ", name: %q", p.Name)
			}
			if p.Filename != "" {
				fmt.Fprintf(&sb, ", filename: %q", p.Filename)
			}
			sb.WriteString("},\n")
		}
		sb.WriteString("]\n")
	}

	if len(cfg.LoadOnly) > 0 {
		entries := make([]string, len(cfg.LoadOnly))
		for i, e := range cfg.LoadOnly {
			entries[i] = fmt.Sprintf("%q", e)
		}
		fmt.Fprintf(&sb, "\nload_only: [%s]\n", strings.Join(entries, ", "))
	}

	return sb.String()
}

// GenerateTOML renders cfg as TOML.
func GenerateTOML(cfg *Config) (string, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config as TOML: %w", err)
	}
	return string(out), nil
}
