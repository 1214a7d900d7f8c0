// SPDX-License-Identifier: MPL-2.0

package bump

import (
	"errors"
	"fmt"
)

const (
	// Major increments the major component.
	Major Magnitude = "major"
	// Minor increments the minor component.
	Minor Magnitude = "minor"
	// Patch increments the patch component (or finalizes a prerelease).
	Patch Magnitude = "patch"
	// Dev increments the patch component and marks the result as `-dev`.
	Dev Magnitude = "dev"
)

// ErrInvalidMagnitude is the sentinel error wrapped by InvalidMagnitudeError.
var ErrInvalidMagnitude = errors.New("invalid bump magnitude")

type (
	// Magnitude is how far a version is bumped.
	Magnitude string

	// InvalidMagnitudeError is returned when parsing an unknown magnitude.
	InvalidMagnitudeError struct {
		Value string
	}
)

// Magnitudes lists every magnitude in CLI order.
func Magnitudes() []Magnitude {
	return []Magnitude{Major, Minor, Patch, Dev}
}

// ParseMagnitude converts a CLI token into a Magnitude.
func ParseMagnitude(s string) (Magnitude, error) {
	m := Magnitude(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate returns an error for magnitudes outside Magnitudes().
func (m Magnitude) Validate() error {
	switch m {
	case Major, Minor, Patch, Dev:
		return nil
	}
	return &InvalidMagnitudeError{Value: string(m)}
}

// String returns the CLI token for the magnitude.
func (m Magnitude) String() string { return string(m) }

// Error implements the error interface.
func (e *InvalidMagnitudeError) Error() string {
	return fmt.Sprintf("invalid bump magnitude %q (expected major, minor, patch, or dev)", e.Value)
}

// Unwrap returns ErrInvalidMagnitude for errors.Is() compatibility.
func (e *InvalidMagnitudeError) Unwrap() error { return ErrInvalidMagnitude }
