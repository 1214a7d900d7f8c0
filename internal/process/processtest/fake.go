// SPDX-License-Identifier: MPL-2.0

// Package processtest provides a scripted process.Executor for tests.
package processtest

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/repokit/repo/internal/process"
	"github.com/repokit/repo/pkg/types"
)

type (
	// Response is the scripted outcome for an invocation.
	Response struct {
		Stdout   string
		Stderr   string
		ExitCode types.ExitCode
		Err      error
		// Effect runs when the invocation is executed, e.g. to simulate a
		// tool rewriting a manifest.
		Effect func(inv process.Invocation)
	}

	// Executor matches invocations by their argv (joined with spaces) and
	// returns the scripted Response. Unscripted invocations behave like a
	// missing binary.
	Executor struct {
		mu        sync.Mutex
		responses map[string][]Response
		calls     []process.Invocation
		stdin     []string
	}
)

// New creates an empty scripted executor.
func New() *Executor {
	return &Executor{responses: make(map[string][]Response)}
}

// Key returns the lookup key for an argv.
func Key(argv ...string) string {
	return strings.Join(argv, " ")
}

// On scripts the response for argv. Scripting the same argv several times
// queues responses; the last one repeats once the queue is drained.
func (e *Executor) On(resp Response, argv ...string) *Executor {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := Key(argv...)
	e.responses[key] = append(e.responses[key], resp)
	return e
}

// OK scripts a successful response with the given stdout.
func (e *Executor) OK(stdout string, argv ...string) *Executor {
	return e.On(Response{Stdout: stdout}, argv...)
}

// Fail scripts a response exiting with status 1.
func (e *Executor) Fail(stderr string, argv ...string) *Executor {
	return e.On(Response{Stderr: stderr, ExitCode: types.ExitFailure}, argv...)
}

// Calls returns the argv keys of all invocations in order.
func (e *Executor) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	keys := make([]string, 0, len(e.calls))
	for _, inv := range e.calls {
		keys = append(keys, Key(inv.Argv()...))
	}
	return keys
}

// Invocations returns copies of all recorded invocations.
func (e *Executor) Invocations() []process.Invocation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]process.Invocation(nil), e.calls...)
}

// Stdin returns what each invocation that had a Stdin reader received.
func (e *Executor) Stdin() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.stdin...)
}

// Capture implements process.Executor.
func (e *Executor) Capture(_ context.Context, inv process.Invocation) process.Result {
	return e.respond(inv, true)
}

// Stream implements process.Executor. Output is discarded.
func (e *Executor) Stream(_ context.Context, inv process.Invocation) process.Result {
	return e.respond(inv, false)
}

func (e *Executor) respond(inv process.Invocation, capture bool) process.Result {
	e.mu.Lock()
	e.calls = append(e.calls, inv)
	if inv.Stdin != nil {
		data, _ := io.ReadAll(inv.Stdin)
		e.stdin = append(e.stdin, string(data))
	}
	key := Key(inv.Argv()...)
	queue, ok := e.responses[key]
	var resp Response
	if ok {
		resp = queue[0]
		if len(queue) > 1 {
			e.responses[key] = queue[1:]
		}
	}
	e.mu.Unlock()

	if !ok {
		return process.Result{
			Invocation: inv,
			ExitCode:   types.ExitSpawnFailure,
			Err:        &notScriptedError{key: key},
		}
	}
	if resp.Effect != nil {
		resp.Effect(inv)
	}
	result := process.Result{Invocation: inv, ExitCode: resp.ExitCode, Err: resp.Err}
	if capture {
		result.Stdout = resp.Stdout
		result.Stderr = resp.Stderr
	}
	return result
}

type notScriptedError struct{ key string }

func (e *notScriptedError) Error() string { return "executable not found: " + e.key }
