// SPDX-License-Identifier: MPL-2.0

package bump

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

type (
	// Rules captures how an ecosystem's native bump tool behaves.
	Rules struct {
		// NativePatchFinalizesPrerelease is true when the ecosystem's tool
		// already turns `1.2.3-beta.1` into `1.2.3` on a patch bump (npm).
		// When false, Plan computes that case locally (cargo-bump).
		NativePatchFinalizesPrerelease bool
	}

	// Step is the outcome of planning a bump. Exactly one of Exact and
	// Native is set.
	Step struct {
		// Exact is the version to write verbatim.
		Exact *semver.Version
		// Native is the magnitude to hand to the ecosystem's bump tool.
		Native Magnitude
	}
)

// IsNative reports whether the step delegates to the ecosystem's tool.
func (s Step) IsNative() bool { return s.Exact == nil }

// String describes the step for logs.
func (s Step) String() string {
	if s.IsNative() {
		return fmt.Sprintf("native %s bump", s.Native)
	}
	return "set " + s.Exact.String()
}

// Plan decides how to move current by magnitude m.
//
// Dev bumps are always computed locally because no ecosystem tool knows
// about them. A patch bump of a prerelease is computed locally unless the
// rules say the native tool finalizes prereleases itself. Everything else is
// delegated.
func Plan(current *semver.Version, m Magnitude, rules Rules) (Step, error) {
	if err := m.Validate(); err != nil {
		return Step{}, err
	}
	switch m {
	case Dev:
		return Step{Exact: DevBump(current)}, nil
	case Patch:
		if current.Prerelease() != "" && !rules.NativePatchFinalizesPrerelease {
			return Step{Exact: FinalizePrerelease(current)}, nil
		}
	}
	return Step{Native: m}, nil
}
