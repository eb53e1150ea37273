// SPDX-License-Identifier: MPL-2.0

package simpath

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/mfsim/mfsim/internal/issue"
	"github.com/mfsim/mfsim/pkg/types"
)

const relocateProcess = "copying external file"

// RelocateFiles copies external files from their last loaded location to
// their current one and returns how many were copied. A file is copied when
// it exists at the old location, its old and new locations differ, and it
// was given by a relative path or copyRelativeOnly is false.
//
// Without a snapshot there is nothing to copy from and RelocateFiles does
// no I/O. The first failure is reported to the diagnostics sink and
// returned; the count then covers only the files copied before it.
func (r *Resolver) RelocateFiles(ctx context.Context, copyRelativeOnly bool) (int, error) {
	if r.last == nil {
		return 0, nil
	}
	copied := 0
	for _, f := range r.files {
		if err := ctx.Err(); err != nil {
			return copied, err
		}
		oldPath := r.ResolveFile(f, ResolveOptions{UseLastLoaded: true})
		if !r.isFile(oldPath) {
			continue
		}
		if copyRelativeOnly && f.IsAbs() {
			continue
		}
		newPath := r.ResolveFile(f, ResolveOptions{})
		if oldPath == newPath {
			continue
		}
		if err := r.copyFile(oldPath, newPath); err != nil {
			derr := r.relocationError(f, newPath, err)
			if r.sink != nil {
				r.sink.Report(derr)
			}
			return copied, derr
		}
		r.logger.Debug("copied external file", "from", oldPath, "to", newPath)
		copied++
	}
	return copied, nil
}

func (r *Resolver) isFile(p types.FilesystemPath) bool {
	info, err := r.fs.Stat(string(p))
	return err == nil && info.Mode().IsRegular()
}

// copyFile writes into a temporary file next to dst and renames it into
// place, so dst is either complete or absent.
func (r *Resolver) copyFile(src, dst types.FilesystemPath) (retErr error) {
	dir := filepath.Dir(string(dst))
	if err := r.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	in, err := r.fs.Open(string(src))
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	tmp, err := afero.TempFile(r.fs, dir, "."+filepath.Base(string(dst))+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if retErr != nil {
			_ = r.fs.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("copy contents: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temporary file: %w", err)
	}
	if info, err := r.fs.Stat(string(src)); err == nil {
		_ = r.fs.Chmod(tmpName, info.Mode().Perm())
	}
	if err := r.fs.Rename(tmpName, string(dst)); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func (r *Resolver) relocationError(f *ExternalFile, dst types.FilesystemPath, cause error) *issue.DataError {
	models := f.Models()
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = string(m)
	}
	return &issue.DataError{
		Model:    strings.Join(names, ", "),
		Path:     string(f.Path),
		Process:  relocateProcess,
		Method:   "RelocateFiles",
		Messages: []string{"destination: " + string(dst)},
		Cause:    cause,
		Debug:    r.debug,
	}
}
