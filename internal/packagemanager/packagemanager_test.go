// SPDX-License-Identifier: MPL-2.0

package packagemanager

import (
	"path/filepath"
	"testing"

	"github.com/repokit/repo/internal/ecosystem"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fsWith(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("/p", f), nil, 0o644))
	}
	return fs
}

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		id    ecosystem.ID
		want  PackageManager
	}{
		{"bun beats package-lock", []string{BunLockb, PackageLockJSON, PackageJSON}, ecosystem.JavaScriptID, Bun},
		{"bun beats yarn", []string{BunLockb, YarnLock}, ecosystem.JavaScriptID, Bun},
		{"yarn beats pnpm", []string{YarnLock, PnpmLockYAML, PackageJSON}, ecosystem.JavaScriptID, Yarn},
		{"pnpm beats npm", []string{PnpmLockYAML, PackageJSON}, ecosystem.JavaScriptID, Pnpm},
		{"bare manifest is npm", []string{PackageJSON}, ecosystem.JavaScriptID, Npm},
		{"cargo", []string{CargoToml, PackageJSON}, ecosystem.RustID, Cargo},
		{"no javascript files", []string{CargoToml}, ecosystem.JavaScriptID, nil},
		{"no cargo manifest", []string{PackageJSON}, ecosystem.RustID, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Select(fsWith(t, tt.files...), "/p", tt.id)
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.id, got.Ecosystem())
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		m, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}

	m, err := Parse("cargo")
	require.NoError(t, err)
	assert.Equal(t, ecosystem.RustID, m.Ecosystem())

	_, err = Parse("pip")
	assert.ErrorIs(t, err, ErrInvalidName)
}
