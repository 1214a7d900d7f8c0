// SPDX-License-Identifier: MPL-2.0

package boilerplate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/repokit/repo/internal/issue"
	"github.com/repokit/repo/internal/process"
	"github.com/repokit/repo/pkg/platform"

	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/shell"
)

// ErrFileExists is the sentinel error wrapped by FileExistsError.
var ErrFileExists = errors.New("file already exists")

type (
	// Manager writes and opens template files inside a repository folder.
	Manager struct {
		fs      afero.Fs
		exec    process.Executor
		dir     string
		goos    string
		getenv  func(string) string
		sandbox platform.SandboxType
	}

	// Option configures a Manager.
	Option func(*Manager)

	// FileExistsError is returned by Add when the target exists and
	// overwriting wasn't requested.
	FileExistsError struct {
		Path string
	}
)

// WithPlatform overrides the OS, environment and sandbox the Manager opens
// files for.
func WithPlatform(goos string, getenv func(string) string, sandbox platform.SandboxType) Option {
	return func(m *Manager) {
		m.goos = goos
		m.getenv = getenv
		m.sandbox = sandbox
	}
}

// NewManager creates a Manager for the repository folder dir.
func NewManager(fs afero.Fs, exec process.Executor, dir string, opts ...Option) *Manager {
	m := &Manager{
		fs:      fs,
		exec:    exec,
		dir:     dir,
		goos:    runtime.GOOS,
		getenv:  os.Getenv,
		sandbox: platform.DetectSandbox(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Path returns where f lives in the repository.
func (m *Manager) Path(f File) string {
	return filepath.Join(m.dir, f.Path)
}

// Add writes f, creating parent folders, then runs followup. An existing
// file is only replaced when overwrite is set.
func (m *Manager) Add(ctx context.Context, f File, overwrite bool, followup Followup) error {
	if err := followup.Validate(); err != nil {
		return err
	}
	path := m.Path(f)

	exists, err := afero.Exists(m.fs, path)
	if err != nil {
		return issue.WrapWithContext(err, "check for an existing file", path)
	}
	if exists {
		if !overwrite {
			return issue.NewErrorContext().
				WithOperation("add template").
				WithResource(path).
				WithIssue(issue.TemplateExistsId).
				WithSuggestion("Pass `--overwrite` to replace it").
				Wrap(&FileExistsError{Path: path}).
				BuildError()
		}
		slog.Warn("Overwriting file due to `--overwrite` flag: " + path)
	}

	if err := m.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return issue.WrapWithContext(err, "create directory for file", filepath.Dir(path))
	}
	if err := afero.WriteFile(m.fs, path, f.Contents, 0o644); err != nil {
		return issue.WrapWithContext(err, "write file", path)
	}

	switch followup {
	case FollowupReveal:
		return m.Reveal(ctx, f)
	case FollowupNone:
		return nil
	default:
		return m.Edit(ctx, f)
	}
}

// Edit opens f in the user's editor and waits for it to exit.
func (m *Manager) Edit(ctx context.Context, f File) error {
	editor := platform.EditorCommand(m.goos, m.getenv)
	argv, err := shell.Fields(editor, m.getenv)
	if err != nil || len(argv) == 0 {
		argv = []string{editor}
	}
	return m.open(ctx, "open file for editing", append(argv, m.Path(f)), m.Path(f),
		fmt.Sprintf("Set $%s or $%s to your preferred editor", platform.VisualEnvVar, platform.EditorEnvVar))
}

// Reveal shows f in the platform file browser.
func (m *Manager) Reveal(ctx context.Context, f File) error {
	argv, err := platform.RevealArgv(m.goos, m.Path(f))
	if err != nil {
		return issue.WrapWithContext(err, "reveal file", m.Path(f))
	}
	return m.open(ctx, "reveal file", argv, m.Path(f))
}

func (m *Manager) open(ctx context.Context, op string, argv []string, path string, suggestions ...string) error {
	argv = platform.OnHost(m.sandbox, argv)
	inv := process.Command(argv[0], argv[1:]...).In(m.dir)
	if err := process.StreamMustSucceed(ctx, m.exec, inv); err != nil {
		return issue.NewErrorContext().
			WithOperation(op).
			WithResource(path).
			WithIssue(issue.ExternalToolFailedId).
			WithSuggestions(suggestions...).
			Wrap(err).
			BuildError()
	}
	return nil
}

// Error implements the error interface.
func (e *FileExistsError) Error() string {
	return fmt.Sprintf("File already exists (pass `--overwrite` to overwrite): %s", e.Path)
}

// Unwrap returns ErrFileExists for errors.Is() compatibility.
func (e *FileExistsError) Unwrap() error { return ErrFileExists }
