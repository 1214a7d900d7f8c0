// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess is returned when a command completed normally.
	ExitSuccess ExitCode = 0
	// ExitFailure is returned for any fatal command error.
	ExitFailure ExitCode = 1
	// ExitSpawnFailure is recorded when an external tool could not be started
	// at all (missing binary, permission problems, bad working directory).
	ExitSpawnFailure ExitCode = 127
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is a process exit status: the one `repo` exits with, or the
	// one reported by a tool it ran. POSIX limits it to 0-255.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode for errors.Is() compatibility.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports a zero status.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// String returns the status in decimal.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
