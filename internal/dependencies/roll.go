// SPDX-License-Identifier: MPL-2.0

package dependencies

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/repokit/repo/internal/commitop"
	"github.com/repokit/repo/internal/ecosystem"
	"github.com/repokit/repo/internal/issue"
	"github.com/repokit/repo/internal/packagemanager"
	"github.com/repokit/repo/internal/process"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
)

// ErrUnsupportedManager is the sentinel error wrapped by
// UnsupportedManagerError.
var ErrUnsupportedManager = errors.New("dependency rolling is not implemented")

type (
	// Manifest is the subset of package.json listing dependencies.
	Manifest struct {
		Dependencies         map[string]string `json:"dependencies"`
		DevDependencies      map[string]string `json:"devDependencies"`
		PeerDependencies     map[string]string `json:"peerDependencies"`
		OptionalDependencies map[string]string `json:"optionalDependencies"`
	}

	// Wrapper wraps a mutation in a commit-wrapped operation.
	Wrapper interface {
		Perform(ctx context.Context, fn commitop.Mutation) (string, error)
	}

	// NewWrapper starts a fresh commit-wrapped operation.
	NewWrapper func(ctx context.Context) (Wrapper, error)

	// Roller rolls JavaScript dependencies.
	Roller struct {
		exec       process.Executor
		fs         afero.Fs
		dir        string
		newWrapper NewWrapper
	}

	// UnsupportedManagerError is returned for package managers that cannot
	// roll dependencies.
	UnsupportedManagerError struct {
		Manager packagemanager.PackageManager
	}
)

// Section returns the entries of the given kind.
func (m *Manifest) Section(k Kind) map[string]string {
	switch k {
	case Dev:
		return m.DevDependencies
	case Peer:
		return m.PeerDependencies
	case Optional:
		return m.OptionalDependencies
	default:
		return m.Dependencies
	}
}

// Has reports whether name is listed in the section k.
func (m *Manifest) Has(k Kind, name string) bool {
	_, ok := m.Section(k)[name]
	return ok
}

// NewRoller creates a Roller running `npm root` in dir.
func NewRoller(exec process.Executor, fs afero.Fs, dir string, newWrapper NewWrapper) *Roller {
	return &Roller{exec: exec, fs: fs, dir: dir, newWrapper: newWrapper}
}

// Roll installs the newest published version of name as `^<version>` in
// every section that already lists it. Each section is its own
// commit-wrapped operation; the install commands are returned in order.
// Nothing is rolled, and no error is returned, when name is not a
// dependency yet.
func (r *Roller) Roll(ctx context.Context, pm packagemanager.PackageManager, name string) ([]string, error) {
	if pm != packagemanager.Npm && pm != packagemanager.Bun {
		return nil, &UnsupportedManagerError{Manager: pm}
	}

	manifestDir, manifest, err := r.readManifest(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := r.latestVersion(ctx, name)
	if err != nil {
		return nil, err
	}

	var rolled []string
	for _, kind := range Kinds() {
		if !manifest.Has(kind, name) {
			continue
		}
		cmd := installCommand(pm, kind, name, latest)
		op, err := r.newWrapper(ctx)
		if err != nil {
			return rolled, err
		}
		summary, err := op.Perform(ctx, func(ctx context.Context) (string, error) {
			inv := cmd.In(manifestDir)
			if _, err := process.MustSucceed(ctx, r.exec, inv); err != nil {
				return "", toolError("install "+name, inv, err)
			}
			return cmd.String(), nil
		})
		if err != nil {
			return rolled, err
		}
		rolled = append(rolled, summary)
	}

	if len(rolled) == 0 {
		slog.Warn("Must already have as a dependency in order to roll versions: " + name)
	}
	return rolled, nil
}

// installCommand builds the install invocation. `--` keeps names starting
// with `-` from being read as flags.
func installCommand(pm packagemanager.PackageManager, kind Kind, name string, v *semver.Version) process.Invocation {
	target := fmt.Sprintf("%s@^%s", name, v)
	if pm == packagemanager.Bun {
		args := []string{"add"}
		if flag := kind.BunFlag(); flag != "" {
			args = append(args, flag)
		}
		return process.Command("bun", append(args, "--", target)...)
	}
	return process.Command("npm", "install", kind.NpmFlag(), "--", target)
}

// readManifest locates package.json next to the folder reported by
// `npm root`.
func (r *Roller) readManifest(ctx context.Context) (string, *Manifest, error) {
	inv := process.Command("npm", "root").In(r.dir)
	res, err := process.MustSucceed(ctx, r.exec, inv)
	if err != nil {
		return "", nil, toolError("find node_modules", inv, err)
	}
	nodeModules, _ := res.TrimmedStdout()
	dir := filepath.Dir(nodeModules)
	path := filepath.Join(dir, ecosystem.PackageJSON)

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return "", nil, issue.WrapWithContext(err, "read the package manifest", path)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return "", nil, issue.WrapWithContext(err, "parse the package manifest", path)
	}
	return dir, &m, nil
}

func (r *Roller) latestVersion(ctx context.Context, name string) (*semver.Version, error) {
	inv := process.Command("npm", "show", "--", name, "version").In(r.dir)
	res, err := process.MustSucceed(ctx, r.exec, inv)
	if err != nil {
		return nil, toolError("look up the latest version of "+name, inv, err)
	}
	out, _ := res.TrimmedStdout()
	v, err := semver.StrictNewVersion(out)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse the latest version of " + name).
			WithResource(out).
			WithIssue(issue.InvalidVersionId).
			Wrap(err).
			BuildError()
	}
	return v, nil
}

func toolError(op string, inv process.Invocation, err error) error {
	return issue.NewErrorContext().
		WithOperation(op).
		WithResource(inv.String()).
		WithIssue(issue.ExternalToolFailedId).
		Wrap(err).
		BuildError()
}

// Error implements the error interface.
func (e *UnsupportedManagerError) Error() string {
	return fmt.Sprintf("Dependency rolling is not implemented for package manager: %s", e.Manager)
}

// Unwrap returns ErrUnsupportedManager for errors.Is() compatibility.
func (e *UnsupportedManagerError) Unwrap() error { return ErrUnsupportedManager }
