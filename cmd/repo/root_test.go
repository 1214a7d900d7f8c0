// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/repokit/repo/internal/issue"
	"github.com/repokit/repo/pkg/types"

	"github.com/charmbracelet/fang"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-03-01T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-03-01T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		// Test binaries report Main.Version == "(devel)".
		Version = "dev"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestExitCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{"nil", nil, types.ExitSuccess},
		{"plain error", errors.New("boom"), types.ExitFailure},
		{"exit error", &ExitError{Code: 3}, 3},
		{"wrapped exit error", fmt.Errorf("outer: %w", &ExitError{Code: 2, Err: errors.New("inner")}), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeOf(tt.err); got != tt.want {
				t.Errorf("exitCodeOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	silent := &ExitError{Code: types.ExitFailure}
	if silent.Error() != "exit status 1" {
		t.Errorf("Error() = %q", silent.Error())
	}
	if silent.Unwrap() != nil {
		t.Error("silent ExitError should not wrap anything")
	}

	inner := errors.New("inner")
	loud := &ExitError{Code: 2, Err: inner}
	if loud.Error() != "inner" || !errors.Is(loud, inner) {
		t.Errorf("ExitError does not expose its cause: %v", loud)
	}
}

func TestRenderError(t *testing.T) {
	t.Parallel()

	actionable := issue.NewErrorContext().
		WithOperation("prepare to commit").
		WithResource("git").
		WithIssue(issue.DirtyWorkingTreeId).
		WithSuggestion("Commit or stash your changes first").
		Wrap(errors.New("`git status` is not clean")).
		BuildError()

	t.Run("silent exit error", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		(&App{}).renderError(&buf, fang.Styles{}, &ExitError{Code: 1})
		if buf.Len() != 0 {
			t.Errorf("output = %q, want nothing", buf.String())
		}
	})

	t.Run("actionable", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		(&App{}).renderError(&buf, fang.Styles{}, actionable)
		out := buf.String()
		for _, want := range []string{
			"failed to prepare to commit: git: `git status` is not clean",
			"• Commit or stash your changes first",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output %q does not contain %q", out, want)
			}
		}
		if strings.Contains(out, "Error chain:") {
			t.Error("error chain printed without --verbose")
		}
	})

	t.Run("actionable verbose", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		(&App{verbose: true}).renderError(&buf, fang.Styles{}, actionable)
		if !strings.Contains(buf.String(), "Error chain:") {
			t.Errorf("output %q has no error chain", buf.String())
		}
	})
}
