// SPDX-License-Identifier: MPL-2.0

package vcs

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/repokit/repo/internal/process"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/afero"
)

// newGitFixture creates a repository with one commit and returns its folder
// and the commit hash.
func newGitFixture(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"version": "1.0.0"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("package.json"); err != nil {
		t.Fatal(err)
	}
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Fixture", Email: "fixture@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	// git prints resolved paths (e.g. /private/var on macOS).
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	return resolved, hash.String()
}

func TestGitBackendAgainstRealRepository(t *testing.T) {
	// Not parallel: t.Setenv isolates the git binary from user configuration.
	if testing.Short() {
		t.Skip("skipping git integration test in short mode")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Fixture")
	t.Setenv("GIT_AUTHOR_EMAIL", "fixture@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Fixture")
	t.Setenv("GIT_COMMITTER_EMAIL", "fixture@example.com")

	ctx := context.Background()
	dir, initial := newGitFixture(t)
	runner := process.NewOSExecutor()

	detection, ok := NewDetector(runner, afero.NewOsFs()).Detect(ctx, dir)
	if !ok {
		t.Fatal("Detect() found nothing in a git repository")
	}
	if detection.Kind != KindGit || detection.Root != dir {
		t.Errorf("Detect() = %+v, want git at %s", detection, dir)
	}

	b, err := NewBackend(KindGit, runner, dir)
	if err != nil {
		t.Fatal(err)
	}
	hash, err := b.LatestCommitHash(ctx)
	if err != nil {
		t.Fatalf("LatestCommitHash() error: %v", err)
	}
	if hash != initial {
		t.Errorf("LatestCommitHash() = %s, want %s", hash, initial)
	}

	if err := b.PrepCommit(ctx); err != nil {
		t.Fatalf("PrepCommit() on a clean tree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"version": "2.0.0"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := b.PrepCommit(ctx); !errors.Is(err, ErrDirtyWorkingTree) {
		t.Fatalf("PrepCommit() on a dirty tree = %v, want %v", err, ErrDirtyWorkingTree)
	}

	if err := b.Commit(ctx, "Set version to: `v2.0.0`"); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatal(err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatal(err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatal(err)
	}
	if commit.Message != "Set version to: `v2.0.0`\n" {
		t.Errorf("commit message = %q", commit.Message)
	}
	if len(commit.ParentHashes) != 1 || commit.ParentHashes[0].String() != initial {
		t.Errorf("commit parents = %v, want [%s]", commit.ParentHashes, initial)
	}
	if hash, _ := b.LatestCommitHash(ctx); hash != head.Hash().String() {
		t.Errorf("LatestCommitHash() after commit = %s, want %s", hash, head.Hash())
	}
}
