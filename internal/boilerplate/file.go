// SPDX-License-Identifier: MPL-2.0

package boilerplate

import (
	"embed"
	"errors"
	"fmt"
)

const (
	// FollowupEdit opens the written file in the editor.
	FollowupEdit Followup = "edit"
	// FollowupReveal shows the written file in the file browser.
	FollowupReveal Followup = "reveal"
	// FollowupNone does nothing after writing.
	FollowupNone Followup = "none"
)

//go:embed templates
var templates embed.FS

// ErrInvalidFollowup is the sentinel error wrapped by InvalidFollowupError.
var ErrInvalidFollowup = errors.New("invalid followup")

type (
	// File is an embedded template and where it goes in a repository.
	File struct {
		// Path is relative to the repository folder.
		Path     string
		Contents []byte
	}

	// Followup is what happens after a template is written.
	Followup string

	// InvalidFollowupError is returned when parsing an unknown followup.
	InvalidFollowupError struct {
		Value string
	}
)

// CI is the GitHub Actions workflow running the project checks.
func CI() File {
	return mustTemplate("./.github/workflows/CI.yaml", "templates/github/workflows/CI.yaml")
}

// PublishGitHubRelease is the workflow creating a GitHub release for every
// pushed version tag.
func PublishGitHubRelease() File {
	return mustTemplate("./.github/workflows/publish-github-release.yaml",
		"templates/github/workflows/publish-github-release.yaml")
}

func mustTemplate(path, name string) File {
	data, err := templates.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("missing embedded template %s: %v", name, err))
	}
	return File{Path: path, Contents: data}
}

// Followups lists every followup in CLI order.
func Followups() []Followup {
	return []Followup{FollowupEdit, FollowupReveal, FollowupNone}
}

// ParseFollowup converts a CLI token into a Followup.
func ParseFollowup(s string) (Followup, error) {
	f := Followup(s)
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// Validate returns an error for unknown followups.
func (f Followup) Validate() error {
	switch f {
	case FollowupEdit, FollowupReveal, FollowupNone:
		return nil
	}
	return &InvalidFollowupError{Value: string(f)}
}

func (f Followup) String() string { return string(f) }

// Error implements the error interface.
func (e *InvalidFollowupError) Error() string {
	return fmt.Sprintf("invalid followup %q (expected edit, reveal or none)", e.Value)
}

// Unwrap returns ErrInvalidFollowup for errors.Is() compatibility.
func (e *InvalidFollowupError) Unwrap() error { return ErrInvalidFollowup }
