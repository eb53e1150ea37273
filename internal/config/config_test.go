// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mfsim/mfsim/internal/issue"
	"github.com/mfsim/mfsim/internal/logging"
	"github.com/mfsim/mfsim/internal/testutil"
	"github.com/mfsim/mfsim/pkg/cueutil"
	"github.com/mfsim/mfsim/pkg/simpath"
	"github.com/mfsim/mfsim/pkg/types"
)

const sampleProject = `
root: "sim"
verbosity: "verbose"
ext_file_action: "copy_all"
store: {
	backend: "sqlite"
	path: "data/mfsim.db"
}
models: [
	{name: "gwf1", path: "gwf1"},
	{name: "gwt1", type: "gwt6"},
]
external_files: [
	{path: "data/k.txt", models: ["gwf1"]},
]
packages: [
	{model: "gwf1", type: "dis", name: "dis", filename: "gwf1.dis"},
	{model: "gwf1", type: "npf"},
	{model: "gwt1", type: "adv"},
]
load_only: ["DIS", "adv"]
`

func TestLoad_NoProjectFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{Dir: types.FilesystemPath(t.TempDir())})
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if cfg.Root != "." {
		t.Errorf("Root = %q, want %q", cfg.Root, ".")
	}
	if cfg.Store.Backend != StoreMemory {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, StoreMemory)
	}
	if cfg.ExtFileAction != simpath.CopyRelativePaths {
		t.Errorf("ExtFileAction = %q, want %q", cfg.ExtFileAction, simpath.CopyRelativePaths)
	}
	if cfg.Verbosity != logging.VerbosityNormal {
		t.Errorf("Verbosity = %q, want %q", cfg.Verbosity, logging.VerbosityNormal)
	}
	if cfg.ProjectFile != "" {
		t.Errorf("ProjectFile = %q, want empty", cfg.ProjectFile)
	}
}

func TestLoad_ProjectFileInDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, ProjectFileName), sampleProject)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{Dir: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if want := types.FilesystemPath(filepath.Join(dir, "sim")); cfg.Root != want {
		t.Errorf("Root = %q, want %q", cfg.Root, want)
	}
	if want := types.FilesystemPath(filepath.Join(dir, "data", "mfsim.db")); cfg.Store.Path != want {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, want)
	}
	if cfg.Store.Backend != StoreSQLite {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, StoreSQLite)
	}
	if cfg.Verbosity != logging.VerbosityVerbose {
		t.Errorf("Verbosity = %q, want %q", cfg.Verbosity, logging.VerbosityVerbose)
	}
	if cfg.ExtFileAction != simpath.CopyAll {
		t.Errorf("ExtFileAction = %q, want %q", cfg.ExtFileAction, simpath.CopyAll)
	}
	if len(cfg.Models) != 2 {
		t.Fatalf("len(Models) = %d, want 2", len(cfg.Models))
	}
	if m, ok := cfg.Model("gwf1"); !ok || m.Path != "gwf1" || m.ModelType() != DefaultModelType {
		t.Errorf("Model(gwf1) = %+v, %v", m, ok)
	}
	if m, _ := cfg.Model("gwt1"); m.ModelType() != "gwt6" {
		t.Errorf("Model(gwt1).ModelType() = %q, want %q", m.ModelType(), "gwt6")
	}
	if len(cfg.ExternalFiles) != 1 || cfg.ExternalFiles[0].Models[0] != "gwf1" {
		t.Errorf("ExternalFiles = %+v", cfg.ExternalFiles)
	}
	if len(cfg.Packages) != 3 || cfg.Packages[0].Filename != "gwf1.dis" {
		t.Errorf("Packages = %+v", cfg.Packages)
	}
	if strings.Join(cfg.LoadOnly, ",") != "DIS,adv" {
		t.Errorf("LoadOnly = %v, want [DIS adv]", cfg.LoadOnly)
	}
	if want := types.FilesystemPath(filepath.Join(dir, ProjectFileName)); cfg.ProjectFile != want {
		t.Errorf("ProjectFile = %q, want %q", cfg.ProjectFile, want)
	}
}

func TestLoad_ExplicitProjectFileMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ProjectFile: types.FilesystemPath(missing)})

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Load() error = %v, want *issue.ActionableError", err)
	}
	if ae.Resource != missing {
		t.Errorf("Resource = %q, want %q", ae.Resource, missing)
	}
	if len(ae.Suggestions) == 0 {
		t.Error("expected suggestions")
	}
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("error does not wrap ErrProjectNotFound: %v", err)
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.cue")
	testutil.MustWriteFile(t, path, `ext_file_action: "copy_some"`+"\n")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ProjectFile: types.FilesystemPath(path)})
	if err == nil {
		t.Fatal("Load() error = nil, want schema violation")
	}
	var ve *cueutil.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Load() error = %v, want *cueutil.ValidationError in chain", err)
	}
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.cue")
	testutil.MustWriteFile(t, path, "rooot: \"sim\"\n")

	if _, err := NewProvider().Load(context.Background(), LoadOptions{ProjectFile: types.FilesystemPath(path)}); err == nil {
		t.Fatal("Load() error = nil, want closed-definition error")
	}
}

func TestLoad_UndeclaredModel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ProjectFileName)
	testutil.MustWriteFile(t, path, `packages: [{model: "gwf9", type: "dis"}]`+"\n")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ProjectFile: types.FilesystemPath(path)})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), `undeclared model "gwf9"`) {
		t.Errorf("error = %q, want mention of gwf9", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoad_InvalidOptions(t *testing.T) {
	t.Parallel()

	if _, err := NewProvider().Load(context.Background(), LoadOptions{Dir: "   "}); !errors.Is(err, types.ErrInvalidFilesystemPath) {
		t.Fatalf("Load() error = %v, want ErrInvalidFilesystemPath", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(testutil.MustSetenv(t, "MFSIM_VERBOSITY", "quiet"))
	t.Cleanup(testutil.MustSetenv(t, "MFSIM_STORE_BACKEND", "sqlite"))

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{Dir: types.FilesystemPath(t.TempDir())})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Verbosity != logging.VerbosityQuiet {
		t.Errorf("Verbosity = %q, want %q", cfg.Verbosity, logging.VerbosityQuiet)
	}
	if cfg.Store.Backend != StoreSQLite {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, StoreSQLite)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, ProjectFileName), sampleProject)
	first, err := NewProvider().Load(context.Background(), LoadOptions{Dir: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	other := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(other, ProjectFileName), GenerateCUE(first))
	second, err := NewProvider().Load(context.Background(), LoadOptions{Dir: types.FilesystemPath(other)})
	if err != nil {
		t.Fatalf("Load(generated) error = %v", err)
	}

	if second.Root != first.Root || second.Store != first.Store {
		t.Errorf("regenerated root/store = %q/%+v, want %q/%+v", second.Root, second.Store, first.Root, first.Store)
	}
	if len(second.Packages) != len(first.Packages) || len(second.ExternalFiles) != len(first.ExternalFiles) {
		t.Errorf("regenerated packages/external files differ: %+v", second)
	}
}

func TestGenerateTOML(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Models = []ModelEntry{{Name: "gwf1", Path: "gwf1"}}
	out, err := GenerateTOML(cfg)
	if err != nil {
		t.Fatalf("GenerateTOML() error = %v", err)
	}
	for _, want := range []string{"root = '.'", "ext_file_action = 'copy_relative_paths'", "[store]", "[[models]]", "name = 'gwf1'"} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateTOML() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ProjectFile") {
		t.Errorf("GenerateTOML() leaked ProjectFile:\n%s", out)
	}
}

func TestCreateDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := CreateDefault(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("CreateDefault() error = %v", err)
	}
	if _, err := CreateDefault(types.FilesystemPath(dir)); err == nil {
		t.Error("second CreateDefault() error = nil, want already exists")
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ProjectFile: types.FilesystemPath(path)})
	if err != nil {
		t.Fatalf("Load(default) error = %v", err)
	}
	if cfg.Root != types.FilesystemPath(dir) {
		t.Errorf("Root = %q, want %q", cfg.Root, dir)
	}
}
