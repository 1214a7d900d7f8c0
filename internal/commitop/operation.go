// SPDX-License-Identifier: MPL-2.0

package commitop

import (
	"context"
	"errors"
	"fmt"

	"github.com/repokit/repo/internal/issue"
	"github.com/repokit/repo/internal/process"
	"github.com/repokit/repo/internal/vcs"
)

const (
	// Idle is the state of a new Operation.
	Idle State = iota
	// Prepared means the VCS is ready to isolate upcoming changes.
	Prepared
	// Completed means the changes were committed (or committing was not requested).
	Completed
	// Failed is terminal; the Operation can't be reused.
	Failed
)

// ErrInvalidState is returned when a step is called out of order.
var ErrInvalidState = errors.New("invalid commit operation state")

type (
	// State is the lifecycle state of an Operation.
	State int

	// Options configures an Operation.
	Options struct {
		// Commit requests a commit once the mutation succeeds.
		Commit bool
		// Using selects the VCS. Empty means detect it from the directory.
		Using vcs.Kind
	}

	// VCSDetector is the subset of *vcs.Detector used to resolve the VCS.
	VCSDetector interface {
		Detect(ctx context.Context, startDir string) (vcs.Detection, bool)
	}

	// Mutation changes the repository and returns a one-line summary, which
	// becomes the commit message.
	Mutation func(ctx context.Context) (summary string, err error)

	// Operation is a single prep → mutate → finalize cycle.
	Operation struct {
		commit  bool
		backend vcs.Backend
		state   State
	}
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Prepared:
		return "prepared"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// New resolves the VCS for dir and returns an idle Operation. Failing to
// resolve a VCS is an error even when no commit is requested.
func New(ctx context.Context, opts Options, detector VCSDetector, exec process.Executor, dir string) (*Operation, error) {
	kind := opts.Using
	if kind == "" {
		detection, ok := detector.Detect(ctx, dir)
		if !ok {
			return nil, issue.NewErrorContext().
				WithOperation("find a VCS to commit with").
				WithResource(dir).
				WithIssue(issue.NoVcsId).
				BuildError()
		}
		kind = detection.Kind
	}
	backend, err := vcs.NewBackend(kind, exec, dir)
	if err != nil {
		return nil, err
	}
	return &Operation{commit: opts.Commit, backend: backend}, nil
}

// State returns the current lifecycle state.
func (o *Operation) State() State { return o.state }

// Kind returns the VCS the operation commits with.
func (o *Operation) Kind() vcs.Kind { return o.backend.Kind() }

// Prep readies the VCS: git requires a clean tree, jj gets a fresh empty
// change if `@` isn't one already, Mercurial fails.
func (o *Operation) Prep(ctx context.Context) error {
	if o.state != Idle {
		return fmt.Errorf("%w: prep from %s", ErrInvalidState, o.state)
	}
	if err := o.backend.PrepCommit(ctx); err != nil {
		o.state = Failed
		return prepError(o.backend.Kind(), err)
	}
	o.state = Prepared
	return nil
}

// Finalize commits everything changed since Prep with message. It is a
// no-op when no commit was requested. On failure the changes are left in
// the working copy.
func (o *Operation) Finalize(ctx context.Context, message string) error {
	if o.state != Prepared {
		return fmt.Errorf("%w: finalize from %s", ErrInvalidState, o.state)
	}
	if !o.commit {
		o.state = Completed
		return nil
	}
	if err := o.backend.Commit(ctx, message); err != nil {
		o.state = Failed
		return issue.NewErrorContext().
			WithOperation("commit changes").
			WithResource(message).
			WithIssue(issue.UncommittedAfterFailedFinalizeId).
			WithSuggestions(
				"The changes are still in your working copy",
				fmt.Sprintf("Inspect them with `%s diff`, then commit or revert them", o.backend.Kind()),
			).
			Wrap(err).
			BuildError()
	}
	o.state = Completed
	return nil
}

// Perform runs Prep, then fn, then Finalize with fn's summary. fn never
// runs when Prep fails. The summary is returned on success.
func (o *Operation) Perform(ctx context.Context, fn Mutation) (string, error) {
	if err := o.Prep(ctx); err != nil {
		return "", err
	}
	summary, err := fn(ctx)
	if err != nil {
		o.state = Failed
		return "", err
	}
	if err := o.Finalize(ctx, summary); err != nil {
		return "", err
	}
	return summary, nil
}

func prepError(kind vcs.Kind, err error) error {
	ectx := issue.NewErrorContext().
		WithOperation("prepare to commit").
		WithResource(kind.String()).
		Wrap(err)
	switch {
	case errors.Is(err, vcs.ErrDirtyWorkingTree):
		ectx.WithIssue(issue.DirtyWorkingTreeId).
			WithSuggestion("Commit or stash your changes first")
	case errors.Is(err, vcs.ErrUnsupported):
		ectx.WithIssue(issue.UnsupportedVcsId)
	default:
		ectx.WithIssue(issue.ExternalToolFailedId)
	}
	return ectx.BuildError()
}
