// SPDX-License-Identifier: MPL-2.0

package ecosystem

import (
	"errors"
	"fmt"
)

const (
	// JavaScriptID identifies npm-family projects (package.json).
	JavaScriptID ID = "javascript"
	// RustID identifies cargo projects (Cargo.toml).
	RustID ID = "rust"
)

// ErrInvalidID is the sentinel error wrapped by InvalidIDError.
var ErrInvalidID = errors.New("invalid ecosystem")

type (
	// ID names an ecosystem.
	ID string

	// InvalidIDError is returned when parsing an unknown ecosystem name.
	InvalidIDError struct {
		Value string
	}
)

// IDs lists every ecosystem in probe order.
func IDs() []ID {
	return []ID{JavaScriptID, RustID}
}

// ParseID converts a CLI token into an ID.
func ParseID(s string) (ID, error) {
	id := ID(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate returns an error for unknown ecosystems.
func (id ID) Validate() error {
	switch id {
	case JavaScriptID, RustID:
		return nil
	}
	return &InvalidIDError{Value: string(id)}
}

func (id ID) String() string { return string(id) }

// Error implements the error interface.
func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid ecosystem %q (expected javascript or rust)", e.Value)
}

// Unwrap returns ErrInvalidID for errors.Is() compatibility.
func (e *InvalidIDError) Unwrap() error { return ErrInvalidID }
