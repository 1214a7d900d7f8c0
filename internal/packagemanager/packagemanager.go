// SPDX-License-Identifier: MPL-2.0

package packagemanager

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/repokit/repo/internal/ecosystem"

	"github.com/spf13/afero"
)

const (
	Npm  JavaScriptManager = "npm"
	Bun  JavaScriptManager = "bun"
	Yarn JavaScriptManager = "yarn"
	Pnpm JavaScriptManager = "pnpm"

	Cargo RustManager = "cargo"
)

// Litmus files.
const (
	BunLockb        = "bun.lockb"
	YarnLock        = "yarn.lock"
	PnpmLockYAML    = "pnpm-lock.yaml"
	PackageJSON     = ecosystem.PackageJSON
	CargoToml       = ecosystem.CargoToml
	PackageLockJSON = "package-lock.json"
)

// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
var ErrInvalidName = errors.New("invalid package manager")

type (
	// PackageManager is implemented by JavaScriptManager and RustManager.
	PackageManager interface {
		fmt.Stringer
		Ecosystem() ecosystem.ID
	}

	// JavaScriptManager is a package manager of the JavaScript ecosystem.
	JavaScriptManager string

	// RustManager is a package manager of the Rust ecosystem.
	RustManager string

	// InvalidNameError is returned when parsing an unknown package manager.
	InvalidNameError struct {
		Value string
	}
)

func (m JavaScriptManager) String() string        { return string(m) }
func (JavaScriptManager) Ecosystem() ecosystem.ID { return ecosystem.JavaScriptID }
func (m RustManager) String() string              { return string(m) }
func (RustManager) Ecosystem() ecosystem.ID       { return ecosystem.RustID }

// JavaScriptManagers lists the JavaScript managers in selection order.
func JavaScriptManagers() []JavaScriptManager {
	return []JavaScriptManager{Bun, Yarn, Pnpm, Npm}
}

// Names lists every accepted CLI value.
func Names() []string {
	return []string{string(Npm), string(Bun), string(Yarn), string(Pnpm), string(Cargo)}
}

// Parse converts a CLI token into a PackageManager.
func Parse(s string) (PackageManager, error) {
	switch m := JavaScriptManager(s); m {
	case Npm, Bun, Yarn, Pnpm:
		return m, nil
	}
	if RustManager(s) == Cargo {
		return Cargo, nil
	}
	return nil, &InvalidNameError{Value: s}
}

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid package manager %q (expected npm, bun, yarn, pnpm, or cargo)", e.Value)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// SelectJavaScript returns the JavaScript manager for the project in dir:
// bun.lockb, then yarn.lock, then pnpm-lock.yaml, then a bare package.json.
func SelectJavaScript(fs afero.Fs, dir string) (JavaScriptManager, bool) {
	litmus := []struct {
		file    string
		manager JavaScriptManager
	}{
		{BunLockb, Bun},
		{YarnLock, Yarn},
		{PnpmLockYAML, Pnpm},
		{PackageJSON, Npm},
	}
	for _, l := range litmus {
		if exists(fs, filepath.Join(dir, l.file)) {
			return l.manager, true
		}
	}
	return "", false
}

// SelectRust returns cargo when dir has a Cargo.toml.
func SelectRust(fs afero.Fs, dir string) (RustManager, bool) {
	if exists(fs, filepath.Join(dir, CargoToml)) {
		return Cargo, true
	}
	return "", false
}

// Select returns the preferred package manager of ecosystem id in dir.
func Select(fs afero.Fs, dir string, id ecosystem.ID) (PackageManager, bool) {
	switch id {
	case ecosystem.JavaScriptID:
		if m, ok := SelectJavaScript(fs, dir); ok {
			return m, true
		}
	case ecosystem.RustID:
		if m, ok := SelectRust(fs, dir); ok {
			return m, true
		}
	}
	return nil, false
}

func exists(fs afero.Fs, path string) bool {
	ok, err := afero.Exists(fs, path)
	return err == nil && ok
}
