// SPDX-License-Identifier: MPL-2.0

package process

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/repokit/repo/pkg/types"
)

type (
	// Executor runs invocations. Implementations block until the program exits.
	Executor interface {
		// Capture runs inv and collects its standard output and error.
		Capture(ctx context.Context, inv Invocation) Result
		// Stream runs inv with its output connected to the executor's writers,
		// for tools whose progress the user should see (npm, cargo publish,
		// editors).
		Stream(ctx context.Context, inv Invocation) Result
	}

	// Observer is notified about every invocation right before it starts.
	Observer func(inv Invocation)

	// OSExecutor is the production Executor backed by os/exec.
	OSExecutor struct {
		stdin     io.Reader
		stdout    io.Writer
		stderr    io.Writer
		observers []Observer
	}

	// Option configures an OSExecutor.
	Option func(*OSExecutor)
)

// WithStreams overrides the writers used by Stream and the reader used when
// an invocation has no Stdin of its own.
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(e *OSExecutor) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// WithObserver registers an observer for every invocation.
func WithObserver(o Observer) Option {
	return func(e *OSExecutor) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// NewOSExecutor creates an executor connected to the process's own stdio.
func NewOSExecutor(opts ...Option) *OSExecutor {
	e := &OSExecutor{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Capture runs inv and captures its output.
func (e *OSExecutor) Capture(ctx context.Context, inv Invocation) Result {
	cmd := e.command(ctx, inv)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := run(cmd, inv)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result
}

// Stream runs inv with inherited output.
func (e *OSExecutor) Stream(ctx context.Context, inv Invocation) Result {
	cmd := e.command(ctx, inv)
	if cmd.Stdin == nil {
		cmd.Stdin = e.stdin
	}
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	return run(cmd, inv)
}

func (e *OSExecutor) command(ctx context.Context, inv Invocation) *exec.Cmd {
	for _, observe := range e.observers {
		observe(inv)
	}
	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}
	if inv.Stdin != nil {
		cmd.Stdin = inv.Stdin
	}
	return cmd
}

func run(cmd *exec.Cmd, inv Invocation) Result {
	result := Result{Invocation: inv}
	err := cmd.Run()
	if err == nil {
		return result
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = types.ExitCode(exitErr.ExitCode())
		if result.ExitCode < 0 {
			// Killed by a signal.
			result.ExitCode = types.ExitFailure
			result.Err = err
		}
		return result
	}

	result.ExitCode = types.ExitSpawnFailure
	result.Err = err
	return result
}

// StdoutIfSuccess captures inv and returns its trimmed stdout. Any failure
// (spawn error, non-zero exit, non-UTF-8 output) is reported as ok == false.
func StdoutIfSuccess(ctx context.Context, e Executor, inv Invocation) (stdout string, ok bool) {
	return e.Capture(ctx, inv).TrimmedStdout()
}

// MustSucceed captures inv and converts any failure into an *ExitError.
func MustSucceed(ctx context.Context, e Executor, inv Invocation) (Result, error) {
	result := e.Capture(ctx, inv)
	return result, result.AsError()
}

// StreamMustSucceed streams inv and converts any failure into an *ExitError.
func StreamMustSucceed(ctx context.Context, e Executor, inv Invocation) error {
	return e.Stream(ctx, inv).AsError()
}
