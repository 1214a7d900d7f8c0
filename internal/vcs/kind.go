// SPDX-License-Identifier: MPL-2.0

package vcs

import (
	"errors"
	"fmt"
)

const (
	// KindGit is Git.
	KindGit Kind = "git"
	// KindJj is Jujutsu.
	KindJj Kind = "jj"
	// KindMercurial is Mercurial. Detectable, not operable.
	KindMercurial Kind = "mercurial"
)

var (
	// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
	ErrInvalidKind = errors.New("invalid VCS kind")

	// ErrUnsupported is returned for operations a VCS kind does not support.
	ErrUnsupported = errors.New("unsupported for this operation")
)

type (
	// Kind identifies a version-control backend.
	Kind string

	// InvalidKindError is returned when parsing an unknown VCS name.
	InvalidKindError struct {
		Value string
	}
)

// Kinds lists every VCS kind in detection order.
func Kinds() []Kind {
	return []Kind{KindJj, KindGit, KindMercurial}
}

// ParseKind converts a CLI token into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// Validate returns an error for unknown kinds.
func (k Kind) Validate() error {
	switch k {
	case KindGit, KindJj, KindMercurial:
		return nil
	}
	return &InvalidKindError{Value: string(k)}
}

// String returns the display name printed by `repo vcs kind`.
func (k Kind) String() string {
	if k == KindMercurial {
		return "Mercurial"
	}
	return string(k)
}

// Error implements the error interface.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid VCS kind %q (expected git, jj, or mercurial)", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// unsupportedError reports kind as unsupported for an operation.
func unsupportedError(k Kind) error {
	return fmt.Errorf("%s is %w", k, ErrUnsupported)
}
