// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"path/filepath"
)

// Environment variables naming the user's editor, in lookup order.
const (
	VisualEnvVar = "VISUAL"
	EditorEnvVar = "EDITOR"
)

// ErrUnsupportedOS is returned for platforms without a known file browser.
var ErrUnsupportedOS = errors.New("revealing files is not supported on this platform")

// EditorCommand returns the program used to edit files: $VISUAL, then
// $EDITOR, then a per-platform default. The variables may hold a program
// with arguments; splitting them is left to the caller.
func EditorCommand(goos string, getenv func(string) string) string {
	for _, name := range []string{VisualEnvVar, EditorEnvVar} {
		if v := getenv(name); v != "" {
			return v
		}
	}
	if goos == Windows {
		return "notepad"
	}
	return "vi"
}

// RevealArgv returns the command that shows path in the platform file
// browser. On Linux there is no portable way to select a file, so its
// folder is opened instead.
func RevealArgv(goos, path string) ([]string, error) {
	switch goos {
	case Darwin:
		return []string{"open", "-R", path}, nil
	case Windows:
		return []string{"explorer", "/select," + path}, nil
	}
	if usesXDG(goos) {
		return []string{"xdg-open", filepath.Dir(path)}, nil
	}
	return nil, ErrUnsupportedOS
}
