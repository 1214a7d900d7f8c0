// SPDX-License-Identifier: MPL-2.0

package ecosystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/repokit/repo/internal/bump"
	"github.com/repokit/repo/internal/process"

	"github.com/Masterminds/semver/v3"
)

// CargoToml is the Rust manifest file name.
const CargoToml = "Cargo.toml"

// ErrNoRootPackage is returned when cargo metadata lists no usable package.
var ErrNoRootPackage = errors.New("could not find a root package in `Cargo.toml`")

type (
	// Rust drives cargo projects. Bumps require the `cargo-bump` plugin.
	Rust struct {
		exec process.Executor
		dir  string
	}

	// cargoMetadata is the subset of `cargo metadata --format-version 1`
	// needed to find the root package.
	cargoMetadata struct {
		Packages                []cargoPackage `json:"packages"`
		WorkspaceMembers        []string       `json:"workspace_members"`
		WorkspaceDefaultMembers []string       `json:"workspace_default_members"`
		WorkspaceRoot           string         `json:"workspace_root"`
	}

	cargoPackage struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Version      string `json:"version"`
		ManifestPath string `json:"manifest_path"`
	}
)

// NewRust returns the Rust ecosystem for the project in dir.
func NewRust(exec process.Executor, dir string) *Rust {
	return &Rust{exec: exec, dir: dir}
}

func (*Rust) ID() ID { return RustID }

// Rules reports that `cargo bump patch` does not finalize prereleases.
func (*Rust) Rules() bump.Rules { return bump.Rules{} }

// ReadVersion asks cargo for the root package's version.
func (r *Rust) ReadVersion(ctx context.Context) (string, error) {
	manifest := filepath.Join(r.dir, CargoToml)
	if r.dir == "" {
		manifest = "./" + CargoToml
	}
	result, err := process.MustSucceed(ctx, r.exec, process.Command("cargo",
		"metadata", "--format-version", "1", "--no-deps", "--manifest-path", manifest,
	).In(r.dir))
	if err != nil {
		return "", err
	}
	var meta cargoMetadata
	if err := json.Unmarshal([]byte(result.Stdout), &meta); err != nil {
		return "", fmt.Errorf("could not parse `cargo metadata` output: %w", err)
	}
	pkg, err := meta.rootPackage()
	if err != nil {
		return "", err
	}
	return bump.StripPrefix(pkg.Version), nil
}

// rootPackage returns the package whose manifest sits at the workspace
// root, falling back to the first default member and then the first member.
func (m *cargoMetadata) rootPackage() (cargoPackage, error) {
	rootManifest := filepath.Join(m.WorkspaceRoot, CargoToml)
	for _, pkg := range m.Packages {
		if filepath.Clean(pkg.ManifestPath) == rootManifest {
			return pkg, nil
		}
	}
	if len(m.WorkspaceDefaultMembers) > 0 {
		if pkg, ok := m.packageByID(m.WorkspaceDefaultMembers[0]); ok {
			slog.Warn("no root package; using the first default workspace member", "package", pkg.Name)
			return pkg, nil
		}
	}
	if len(m.WorkspaceMembers) > 0 {
		if pkg, ok := m.packageByID(m.WorkspaceMembers[0]); ok {
			slog.Warn("no root package or default workspace member; using the first workspace member", "package", pkg.Name)
			return pkg, nil
		}
	}
	return cargoPackage{}, ErrNoRootPackage
}

func (m *cargoMetadata) packageByID(id string) (cargoPackage, bool) {
	for _, pkg := range m.Packages {
		if pkg.ID == id {
			return pkg, true
		}
	}
	return cargoPackage{}, false
}

func (r *Rust) SetVersion(ctx context.Context, v *semver.Version) error {
	return r.cargoBump(ctx, v.String())
}

func (r *Rust) NativeBump(ctx context.Context, m bump.Magnitude) error {
	slog.Info("Assuming `cargo-bump` is installed…")
	return r.cargoBump(ctx, m.String())
}

func (r *Rust) cargoBump(ctx context.Context, target string) error {
	return process.StreamMustSucceed(ctx, r.exec, process.Command("cargo", "bump", target).In(r.dir))
}

func (r *Rust) Publish(ctx context.Context) error {
	return process.StreamMustSucceed(ctx, r.exec, process.Command("cargo", "publish").In(r.dir))
}
