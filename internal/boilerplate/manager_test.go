// SPDX-License-Identifier: MPL-2.0

package boilerplate

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/repokit/repo/internal/issue"
	"github.com/repokit/repo/internal/process/processtest"
	"github.com/repokit/repo/pkg/platform"

	"github.com/spf13/afero"
)

const ciPath = "/repo/.github/workflows/CI.yaml"

func newManager(fs afero.Fs, exec *processtest.Executor, goos string, env map[string]string) *Manager {
	return NewManager(fs, exec, "/repo",
		WithPlatform(goos, func(k string) string { return env[k] }, platform.SandboxNone))
}

func TestEmbeddedTemplates(t *testing.T) {
	t.Parallel()

	for _, f := range []File{CI(), PublishGitHubRelease()} {
		if len(f.Contents) == 0 {
			t.Errorf("%s is empty", f.Path)
		}
		if !strings.HasPrefix(f.Path, "./.github/workflows/") {
			t.Errorf("unexpected path %s", f.Path)
		}
	}
}

func TestAddWritesAndEdits(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	exec := processtest.New().OK("", "code", "--wait", ciPath)
	m := newManager(fs, exec, platform.Linux, map[string]string{"VISUAL": "code --wait"})

	if err := m.Add(context.Background(), CI(), false, FollowupEdit); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	data, err := afero.ReadFile(fs, ciPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, CI().Contents) {
		t.Error("written file differs from the template")
	}
	if calls := exec.Calls(); len(calls) != 1 || calls[0] != "code --wait "+ciPath {
		t.Errorf("calls = %q", calls)
	}
}

func TestAddRefusesToOverwrite(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, ciPath, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	exec := processtest.New()
	err := newManager(fs, exec, platform.Linux, nil).Add(context.Background(), CI(), false, FollowupNone)
	if !errors.Is(err, ErrFileExists) {
		t.Fatalf("Add() error = %v, want ErrFileExists", err)
	}
	if is, ok := issue.IssueOf(err); !ok || is.Id() != issue.TemplateExistsId {
		t.Errorf("error lacks the template issue: %v", err)
	}
	if !strings.Contains(err.Error(), "File already exists (pass `--overwrite` to overwrite)") {
		t.Errorf("message = %q", err.Error())
	}
	if data, _ := afero.ReadFile(fs, ciPath); string(data) != "mine" {
		t.Error("existing file was modified")
	}
}

func TestAddOverwrite(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, ciPath, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	exec := processtest.New()
	if err := newManager(fs, exec, platform.Linux, nil).Add(context.Background(), CI(), true, FollowupNone); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if data, _ := afero.ReadFile(fs, ciPath); !bytes.Equal(data, CI().Contents) {
		t.Error("file was not overwritten")
	}
	if calls := exec.Calls(); len(calls) != 0 {
		t.Errorf("followup none ran %q", calls)
	}
}

func TestAddReveal(t *testing.T) {
	t.Parallel()

	exec := processtest.New().OK("", "open", "-R", "/repo/.github/workflows/publish-github-release.yaml")
	m := newManager(afero.NewMemMapFs(), exec, platform.Darwin, nil)
	if err := m.Add(context.Background(), PublishGitHubRelease(), false, FollowupReveal); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
}

func TestAddInvalidFollowup(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	err := newManager(fs, processtest.New(), platform.Linux, nil).Add(context.Background(), CI(), false, "later")
	if !errors.Is(err, ErrInvalidFollowup) {
		t.Fatalf("Add() error = %v", err)
	}
	if ok, _ := afero.Exists(fs, ciPath); ok {
		t.Error("file written despite an invalid followup")
	}
}

func TestEditDefaultsAndFailure(t *testing.T) {
	t.Parallel()

	exec := processtest.New().Fail("", "vi", ciPath)
	err := newManager(afero.NewMemMapFs(), exec, platform.Linux, nil).Edit(context.Background(), CI())
	if err == nil {
		t.Fatal("Edit() succeeded with a failing editor")
	}
	if is, ok := issue.IssueOf(err); !ok || is.Id() != issue.ExternalToolFailedId {
		t.Errorf("error lacks the tool issue: %v", err)
	}
	if calls := exec.Calls(); len(calls) != 1 || calls[0] != "vi "+ciPath {
		t.Errorf("calls = %q", calls)
	}
}

func TestRevealInSandbox(t *testing.T) {
	t.Parallel()

	exec := processtest.New().OK("", "flatpak-spawn", "--host", "xdg-open", "/repo/.github/workflows")
	m := NewManager(afero.NewMemMapFs(), exec, "/repo",
		WithPlatform(platform.Linux, func(string) string { return "" }, platform.SandboxFlatpak))
	if err := m.Reveal(context.Background(), CI()); err != nil {
		t.Fatalf("Reveal() error: %v", err)
	}
}

func TestParseFollowup(t *testing.T) {
	t.Parallel()

	for _, f := range Followups() {
		if got, err := ParseFollowup(f.String()); err != nil || got != f {
			t.Errorf("ParseFollowup(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseFollowup("open"); !errors.Is(err, ErrInvalidFollowup) {
		t.Errorf("ParseFollowup(open) error = %v", err)
	}
}
