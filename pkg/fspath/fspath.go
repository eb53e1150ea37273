// SPDX-License-Identifier: MPL-2.0

// Package fspath provides lexical helpers for types.FilesystemPath values.
// Nothing in this package touches the filesystem except ExpandHome and
// Absolute, which consult the user database and the working directory.
package fspath

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/mfsim/mfsim/pkg/types"
)

// Join wraps filepath.Join for typed path components.
func Join(elem ...types.FilesystemPath) types.FilesystemPath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.FilesystemPath(filepath.Join(strs...))
}

// JoinStr joins raw string segments onto a typed base path.
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// IsAbs wraps filepath.IsAbs.
func IsAbs(p types.FilesystemPath) bool {
	return filepath.IsAbs(string(p))
}

// ToSlash returns p with every OS separator replaced by a forward slash.
func ToSlash(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.ToSlash(string(p)))
}

// StripQuotes removes every single and double quote character from p.
// Path tokens read from package files are sometimes quoted.
func StripQuotes(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(strings.NewReplacer(`'`, "", `"`, "").Replace(string(p)))
}

// ExpandHome expands a leading "~" or "~user" component to the matching
// home directory. Paths without a leading tilde are returned unchanged.
func ExpandHome(p types.FilesystemPath) (types.FilesystemPath, error) {
	s := string(p)
	if !strings.HasPrefix(s, "~") {
		return p, nil
	}

	name, rest := s[1:], ""
	if i := strings.IndexFunc(name, isSeparator); i >= 0 {
		name, rest = name[:i], name[i+1:]
	}

	var home string
	if name == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %q: %w", s, err)
		}
		home = h
	} else {
		u, err := user.Lookup(name)
		if err != nil {
			return "", fmt.Errorf("expanding %q: %w", s, err)
		}
		home = u.HomeDir
	}

	if rest == "" {
		return types.FilesystemPath(home), nil
	}
	return types.FilesystemPath(filepath.Join(home, rest)), nil
}

// Absolute expands home shorthand and converts p to an absolute, cleaned path.
func Absolute(p types.FilesystemPath) (types.FilesystemPath, error) {
	expanded, err := ExpandHome(p)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(string(expanded))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// IsTrivial reports whether p names the current directory: "", ".", "./",
// and similar spellings.
func IsTrivial(p types.FilesystemPath) bool {
	rooted, parts := components(string(p))
	return !rooted && len(parts) == 0
}

// RelativeTo removes base from the front of p, comparing component by
// component. Empty and "." components are ignored on both sides; ".." is
// kept as a literal component. It returns "." when p equals base and false
// when base is not a prefix of p.
func RelativeTo(p, base types.FilesystemPath) (types.FilesystemPath, bool) {
	pRooted, pParts := components(string(p))
	bRooted, bParts := components(string(base))
	if pRooted != bRooted || len(bParts) > len(pParts) {
		return p, false
	}
	for i, part := range bParts {
		if pParts[i] != part {
			return p, false
		}
	}
	rest := pParts[len(bParts):]
	if len(rest) == 0 {
		return ".", true
	}
	return types.FilesystemPath(filepath.Join(rest...)), true
}

// components splits p on both forward slashes and the OS separator.
func components(p string) (rooted bool, parts []string) {
	vol := filepath.VolumeName(p)
	p = p[len(vol):]
	rooted = vol != "" || strings.HasPrefix(p, "/") || strings.HasPrefix(p, string(filepath.Separator))
	fields := strings.FieldsFunc(p, isSeparator)
	parts = make([]string, 0, len(fields)+1)
	if vol != "" {
		parts = append(parts, vol)
	}
	for _, f := range fields {
		if f != "." {
			parts = append(parts, f)
		}
	}
	return rooted, parts
}

func isSeparator(r rune) bool {
	return r == '/' || r == filepath.Separator
}
