// SPDX-License-Identifier: MPL-2.0

package bump

import (
	"errors"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	npmRules   = Rules{NativePatchFinalizesPrerelease: true}
	cargoRules = Rules{}
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1.2.3", want: "1.2.3"},
		{in: "v1.2.3", want: "1.2.3"},
		{in: "v2.0.0-beta.1", want: "2.0.0-beta.1"},
		{in: "vv1.2.3", wantErr: true},
		{in: "1.2", wantErr: true},
		{in: "banana", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			v, err := ParseVersion(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidVersion))
				var invalid *InvalidVersionError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.in, invalid.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "v2.0.0", Format("2.0.0", true))
	assert.Equal(t, "v2.0.0", Format("v2.0.0", true))
	assert.Equal(t, "2.0.0", Format("v2.0.0", false))
	assert.Equal(t, "2.0.0", Format("2.0.0", false))
}

func TestDevBumpIncrementsEveryTime(t *testing.T) {
	t.Parallel()

	v := mustParse(t, "1.2.3")
	first := DevBump(v)
	assert.Equal(t, "1.2.4-dev", first.String())

	second := DevBump(first)
	assert.Equal(t, "1.2.5-dev", second.String())
}

func TestDevBumpReplacesPrerelease(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.2.4-dev", DevBump(mustParse(t, "1.2.3-beta.1+build.5")).String())
}

func TestPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		current    string
		magnitude  Magnitude
		rules      Rules
		wantNative Magnitude
		wantExact  string
	}{
		{name: "npm major is native", current: "1.2.3", magnitude: Major, rules: npmRules, wantNative: Major},
		{name: "npm minor is native", current: "1.2.3", magnitude: Minor, rules: npmRules, wantNative: Minor},
		{name: "npm patch is native", current: "1.2.3", magnitude: Patch, rules: npmRules, wantNative: Patch},
		{name: "npm patch on prerelease is native", current: "1.2.3-beta.1", magnitude: Patch, rules: npmRules, wantNative: Patch},
		{name: "npm dev is local", current: "1.2.3", magnitude: Dev, rules: npmRules, wantExact: "1.2.4-dev"},
		{name: "cargo major is native", current: "1.2.3-beta.1", magnitude: Major, rules: cargoRules, wantNative: Major},
		{name: "cargo patch is native", current: "1.2.3", magnitude: Patch, rules: cargoRules, wantNative: Patch},
		{name: "cargo patch on prerelease strips it", current: "1.2.3-beta.1", magnitude: Patch, rules: cargoRules, wantExact: "1.2.3"},
		{name: "cargo dev on dev", current: "1.2.4-dev", magnitude: Dev, rules: cargoRules, wantExact: "1.2.5-dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			step, err := Plan(mustParse(t, tt.current), tt.magnitude, tt.rules)
			require.NoError(t, err)
			if tt.wantExact != "" {
				require.False(t, step.IsNative(), "step = %s", step)
				assert.Equal(t, tt.wantExact, step.Exact.String())
				return
			}
			require.True(t, step.IsNative(), "step = %s", step)
			assert.Equal(t, tt.wantNative, step.Native)
		})
	}
}

func TestPlanRejectsUnknownMagnitude(t *testing.T) {
	t.Parallel()

	_, err := Plan(mustParse(t, "1.0.0"), Magnitude("huge"), npmRules)
	require.ErrorIs(t, err, ErrInvalidMagnitude)
}

func TestParseMagnitude(t *testing.T) {
	t.Parallel()

	for _, m := range Magnitudes() {
		got, err := ParseMagnitude(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMagnitude("prerelease")
	require.ErrorIs(t, err, ErrInvalidMagnitude)
}

func mustParse(t *testing.T, s string) *semver.Version {
	t.Helper()
	v, err := ParseVersion(s)
	require.NoError(t, err)
	return v
}
