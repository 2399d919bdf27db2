// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: generated site is meant to be shared
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath    = errors.New("path cannot be empty")
	ErrNotDirectory = errors.New("path is not a directory")
	ErrUnsafeName   = errors.New("unsafe output name")
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "site" -> false (name)
//   - "./site.yaml" -> true (relative path)
//   - "/etc/pdfsite/site.toml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// WriteFile writes data to path, creating missing parent directories.
// An existing file is truncated and overwritten.
func WriteFile(path string, data []byte) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, FilePermissions); err != nil { // #nosec G306 -- site output is world-readable
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// CheckWritableDir verifies that dir (or its nearest existing ancestor, when
// dir does not exist yet) accepts new files. Nothing is left behind.
func CheckWritableDir(dir string) error {
	if dir == "" {
		return ErrEmptyPath
	}

	existing := filepath.Clean(dir)
	for {
		info, err := os.Stat(existing)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%w: %s", ErrNotDirectory, existing)
			}
			break
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return fmt.Errorf("no existing ancestor for %s: %w", dir, err)
		}
		existing = parent
	}

	f, err := os.CreateTemp(existing, ".pdfsite-write-check-*")
	if err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}

// CheckPlainName requires a bare, non-hidden file name with the given extension
// (compared case-insensitively).
func CheckPlainName(name, ext string) error {
	if name == "" {
		return ErrEmptyPath
	}
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q must be a plain file name", ErrUnsafeName, name)
	}
	if !strings.EqualFold(path.Ext(name), ext) {
		return fmt.Errorf("%w: %q must end in %s", ErrUnsafeName, name, ext)
	}
	return nil
}

// CheckRelativeOutput requires a relative path that stays inside its base
// directory and ends with ext.
func CheckRelativeOutput(p, ext string) error {
	if p == "" {
		return ErrEmptyPath
	}
	slashed := filepath.ToSlash(p)
	if path.IsAbs(slashed) || filepath.IsAbs(p) || filepath.VolumeName(p) != "" {
		return fmt.Errorf("%w: %q must be relative", ErrUnsafeName, p)
	}
	clean := path.Clean(slashed)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %q escapes its base directory", ErrUnsafeName, p)
	}
	if !strings.EqualFold(path.Ext(clean), ext) {
		return fmt.Errorf("%w: %q must end in %s", ErrUnsafeName, p, ext)
	}
	return nil
}
