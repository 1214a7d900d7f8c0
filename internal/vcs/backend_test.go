// SPDX-License-Identifier: MPL-2.0

package vcs

import (
	"context"
	"errors"
	"testing"

	"github.com/repokit/repo/internal/process/processtest"
)

var jjCleanSlateQuery = []string{
	"jj", "log", "--color=never", "--no-graph",
	"--revisions", `@ & empty() & ~merges() & description(exact:"")`,
	"--template", "'.'",
}

func TestGitPrepCommit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  string
		fail    bool
		wantErr error
	}{
		{name: "clean", status: ""},
		{name: "dirty", status: " M package.json\n", wantErr: ErrDirtyWorkingTree},
		{name: "untracked", status: "?? notes.txt\n", wantErr: ErrDirtyWorkingTree},
		{name: "status fails", fail: true, wantErr: ErrStatusUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			exec := processtest.New()
			if tt.fail {
				exec.Fail("fatal", "git", "status", "--porcelain")
			} else {
				exec.OK(tt.status, "git", "status", "--porcelain")
			}
			b, _ := NewBackend(KindGit, exec, "")
			err := b.PrepCommit(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("PrepCommit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGitCommit(t *testing.T) {
	t.Parallel()

	exec := processtest.New().OK("", "git", "commit", "--all", "--message", "Set version to: `v2.0.0`")
	b, _ := NewBackend(KindGit, exec, "/repo")
	if err := b.Commit(context.Background(), "Set version to: `v2.0.0`"); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	if dir := exec.Invocations()[0].Dir; dir != "/repo" {
		t.Errorf("commit ran in %q", dir)
	}
}

func TestJjPrepCommitKeepsCleanSlate(t *testing.T) {
	t.Parallel()

	exec := processtest.New().OK(".", jjCleanSlateQuery...)
	b, _ := NewBackend(KindJj, exec, "")
	if err := b.PrepCommit(context.Background()); err != nil {
		t.Fatalf("PrepCommit() error: %v", err)
	}
	if calls := exec.Calls(); len(calls) != 1 {
		t.Errorf("`jj new` must not run when @ is already clean: %v", calls)
	}
}

func TestJjPrepCommitCreatesNewChange(t *testing.T) {
	t.Parallel()

	exec := processtest.New().
		OK("", jjCleanSlateQuery...).
		OK("", "jj", "new")
	b, _ := NewBackend(KindJj, exec, "")
	if err := b.PrepCommit(context.Background()); err != nil {
		t.Fatalf("PrepCommit() error: %v", err)
	}
	calls := exec.Calls()
	if len(calls) != 2 || calls[1] != "jj new" {
		t.Errorf("calls = %v, want the query followed by `jj new`", calls)
	}
}

func TestJjCommitAndLatestHash(t *testing.T) {
	t.Parallel()

	exec := processtest.New().
		OK("", "jj", "commit", "--message", "Bump").
		OK("abc123\n", "jj", "log", "--no-graph", "--ignore-working-copy", "--color=never",
			"--revisions", `::@ & ((~description(exact:"") & ~empty()) | merges())`,
			"--limit=1", "--template", "commit_id")
	b, _ := NewBackend(KindJj, exec, "")
	if err := b.Commit(context.Background(), "Bump"); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	hash, err := b.LatestCommitHash(context.Background())
	if err != nil || hash != "abc123" {
		t.Errorf("LatestCommitHash() = %q, %v", hash, err)
	}
}

func TestGitLatestHash(t *testing.T) {
	t.Parallel()

	exec := processtest.New().OK("deadbeef\n", "git", "rev-parse", "HEAD")
	b, _ := NewBackend(KindGit, exec, "")
	hash, err := b.LatestCommitHash(context.Background())
	if err != nil || hash != "deadbeef" {
		t.Errorf("LatestCommitHash() = %q, %v", hash, err)
	}
}

func TestMercurialIsUnsupported(t *testing.T) {
	t.Parallel()

	exec := processtest.New()
	b, err := NewBackend(KindMercurial, exec, "")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := b.PrepCommit(ctx); !errors.Is(err, ErrUnsupported) {
		t.Errorf("PrepCommit() error = %v", err)
	}
	if err := b.Commit(ctx, "msg"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Commit() error = %v", err)
	}
	if _, err := b.LatestCommitHash(ctx); !errors.Is(err, ErrUnsupported) {
		t.Errorf("LatestCommitHash() error = %v", err)
	}
	if calls := exec.Calls(); len(calls) != 0 {
		t.Errorf("Mercurial must not spawn anything: %v", calls)
	}
}

func TestNewBackendRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	if _, err := NewBackend(Kind("svn"), processtest.New(), ""); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("NewBackend(svn) error = %v", err)
	}
}
