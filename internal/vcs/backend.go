// SPDX-License-Identifier: MPL-2.0

package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/repokit/repo/internal/process"
)

// jj revsets used by the backends.
const (
	// jjCleanSlateRevset matches `@` only if it can receive a new change as is.
	jjCleanSlateRevset = `@ & empty() & ~merges() & description(exact:"")`
	// jjLatestCommitRevset selects the newest "real" commit, skipping an
	// empty or undescribed working-copy change.
	jjLatestCommitRevset = `::@ & ((~description(exact:"") & ~empty()) | merges())`
)

var (
	// ErrDirtyWorkingTree is returned by PrepCommit when git reports changes.
	ErrDirtyWorkingTree = errors.New("`git status` is not clean")

	// ErrStatusUnavailable is returned when the VCS state can't be queried.
	ErrStatusUnavailable = errors.New("could not query VCS status")
)

// Backend is the set of VCS operations `repo` performs. Implementations run
// commands in Dir (empty means the process working directory).
type Backend interface {
	Kind() Kind
	// PrepCommit makes sure the next changes can be committed in isolation.
	PrepCommit(ctx context.Context) error
	// Commit records every change since PrepCommit with message.
	Commit(ctx context.Context, message string) error
	// LatestCommitHash returns the hash of the latest real commit.
	LatestCommitHash(ctx context.Context) (string, error)
}

// NewBackend returns the Backend for kind operating in dir.
func NewBackend(kind Kind, exec process.Executor, dir string) (Backend, error) {
	switch kind {
	case KindGit:
		return &gitBackend{exec: exec, dir: dir}, nil
	case KindJj:
		return &jjBackend{exec: exec, dir: dir}, nil
	case KindMercurial:
		return mercurialBackend{}, nil
	}
	return nil, kind.Validate()
}

type gitBackend struct {
	exec process.Executor
	dir  string
}

func (b *gitBackend) Kind() Kind { return KindGit }

func (b *gitBackend) command(args ...string) process.Invocation {
	return process.Command("git", args...).In(b.dir)
}

// PrepCommit refuses to continue when the working tree has any changes,
// since they would end up in the same commit as the wrapped operation.
func (b *gitBackend) PrepCommit(ctx context.Context) error {
	status, ok := process.StdoutIfSuccess(ctx, b.exec, b.command("status", "--porcelain"))
	if !ok {
		return fmt.Errorf("%w: `git status` failed", ErrStatusUnavailable)
	}
	if status != "" {
		return ErrDirtyWorkingTree
	}
	return nil
}

func (b *gitBackend) Commit(ctx context.Context, message string) error {
	_, err := process.MustSucceed(ctx, b.exec, b.command("commit", "--all", "--message", message))
	return err
}

func (b *gitBackend) LatestCommitHash(ctx context.Context) (string, error) {
	hash, ok := process.StdoutIfSuccess(ctx, b.exec, b.command("rev-parse", "HEAD"))
	if !ok || hash == "" {
		return "", errors.New("could not get latest hash from `git`")
	}
	return hash, nil
}

type jjBackend struct {
	exec process.Executor
	dir  string
}

func (b *jjBackend) Kind() Kind { return KindJj }

func (b *jjBackend) command(args ...string) process.Invocation {
	return process.Command("jj", args...).In(b.dir)
}

// PrepCommit creates a fresh empty change unless `@` already is one.
func (b *jjBackend) PrepCommit(ctx context.Context) error {
	out, ok := process.StdoutIfSuccess(ctx, b.exec, b.command(
		"log", "--color=never", "--no-graph",
		"--revisions", jjCleanSlateRevset,
		"--template", "'.'",
	))
	if !ok {
		return fmt.Errorf("%w: `jj log` failed", ErrStatusUnavailable)
	}
	if out == "." {
		return nil
	}
	_, err := process.MustSucceed(ctx, b.exec, b.command("new"))
	return err
}

// Commit describes `@` and starts a new empty change on top of it.
func (b *jjBackend) Commit(ctx context.Context, message string) error {
	_, err := process.MustSucceed(ctx, b.exec, b.command("commit", "--message", message))
	return err
}

func (b *jjBackend) LatestCommitHash(ctx context.Context) (string, error) {
	hash, ok := process.StdoutIfSuccess(ctx, b.exec, b.command(
		"log", "--no-graph", "--ignore-working-copy", "--color=never",
		"--revisions", jjLatestCommitRevset,
		"--limit=1",
		"--template", "commit_id",
	))
	if !ok || hash == "" {
		return "", errors.New("could not get latest hash from `jj`")
	}
	return hash, nil
}

type mercurialBackend struct{}

func (mercurialBackend) Kind() Kind { return KindMercurial }

func (mercurialBackend) PrepCommit(context.Context) error {
	return unsupportedError(KindMercurial)
}

func (mercurialBackend) Commit(context.Context, string) error {
	return unsupportedError(KindMercurial)
}

func (mercurialBackend) LatestCommitHash(context.Context) (string, error) {
	return "", unsupportedError(KindMercurial)
}
