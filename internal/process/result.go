// SPDX-License-Identifier: MPL-2.0

package process

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/repokit/repo/pkg/types"
)

// Result is the outcome of running an Invocation.
type Result struct {
	Invocation Invocation
	ExitCode   types.ExitCode
	// Stdout and Stderr are only populated by Capture.
	Stdout string
	Stderr string
	// Err is set when the program could not be started or waited on.
	// A non-zero exit alone does not set Err.
	Err error
}

// Success reports whether the program ran and exited with status 0.
func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode.IsSuccess()
}

// AsError converts an unsuccessful result into an *ExitError.
// It returns nil for successful results.
func (r Result) AsError() error {
	if r.Success() {
		return nil
	}
	return &ExitError{Result: r}
}

// ExitError reports an external tool that failed to start or exited non-zero.
type ExitError struct {
	Result Result
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Result.Err != nil {
		return fmt.Sprintf("could not run `%s`: %v", e.Result.Invocation, e.Result.Err)
	}
	msg := fmt.Sprintf("`%s` exited with status %s", e.Result.Invocation, e.Result.ExitCode)
	if stderr := strings.TrimSpace(e.Result.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap returns the spawn error, if any.
func (e *ExitError) Unwrap() error { return e.Result.Err }

// TrimmedStdout returns stdout with surrounding whitespace removed. The
// boolean is false when the result was unsuccessful or the output is not
// valid UTF-8; probes treat both as "absent".
func (r Result) TrimmedStdout() (string, bool) {
	if !r.Success() || !utf8.ValidString(r.Stdout) {
		return "", false
	}
	return strings.TrimSpace(r.Stdout), true
}
