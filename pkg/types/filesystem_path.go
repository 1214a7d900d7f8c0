// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath is a path to an existing file or folder given on the
	// command line (e.g. `repo workspace root --path`).
	// The zero value ("") is invalid; callers substitute the working directory.
	FilesystemPath string

	// InvalidFilesystemPathError is returned when a FilesystemPath value is
	// empty or whitespace-only.
	InvalidFilesystemPathError struct {
		Value FilesystemPath
	}
)

// String returns the string representation of the FilesystemPath.
func (p FilesystemPath) String() string { return string(p) }

// Validate returns an error if the path is empty or whitespace-only.
func (p FilesystemPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return &InvalidFilesystemPathError{Value: p}
	}
	return nil
}

// Resolve anchors a relative path at base. Absolute paths are returned
// cleaned.
func (p FilesystemPath) Resolve(base string) FilesystemPath {
	path := string(p)
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	return FilesystemPath(filepath.Clean(path))
}

// ClosestDir returns the path itself when it names a directory and its
// parent otherwise (including when the path does not exist).
func (p FilesystemPath) ClosestDir(fs afero.Fs) string {
	path := string(p)
	if isDir, err := afero.IsDir(fs, path); err == nil && isDir {
		return path
	}
	return filepath.Dir(path)
}

// Error implements the error interface for InvalidFilesystemPathError.
func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("invalid filesystem path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidFilesystemPath for errors.Is() compatibility.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
