// SPDX-License-Identifier: MPL-2.0

package bump

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DevPrerelease is the prerelease label attached by a Dev bump.
const DevPrerelease = "dev"

// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
var ErrInvalidVersion = errors.New("invalid version")

// InvalidVersionError is returned when user input is not a semantic version.
type InvalidVersionError struct {
	Value string
	Cause error
}

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: %v", e.Value, e.Cause)
}

// Unwrap returns ErrInvalidVersion for errors.Is() compatibility.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }

// StripPrefix removes a single leading `v`.
func StripPrefix(s string) string {
	return strings.TrimPrefix(s, "v")
}

// ParseVersion parses s as a strict semantic version after removing a single
// optional leading `v`. Partial versions such as `1.2` are rejected.
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(StripPrefix(s))
	if err != nil {
		return nil, &InvalidVersionError{Value: s, Cause: err}
	}
	return v, nil
}

// Format renders v for display, with the `v` prefix unless prefix is false.
func Format(v string, prefix bool) string {
	v = StripPrefix(v)
	if prefix {
		return "v" + v
	}
	return v
}

// DevBump increments the patch component and replaces any prerelease label
// with `dev`. Build metadata is dropped.
func DevBump(v *semver.Version) *semver.Version {
	return semver.New(v.Major(), v.Minor(), v.Patch()+1, DevPrerelease, "")
}

// FinalizePrerelease drops the prerelease label and build metadata while
// keeping the numeric components, e.g. `1.2.3-beta.1` becomes `1.2.3`.
func FinalizePrerelease(v *semver.Version) *semver.Version {
	return semver.New(v.Major(), v.Minor(), v.Patch(), "", "")
}
