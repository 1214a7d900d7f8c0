// SPDX-License-Identifier: MPL-2.0

package ecosystem

import (
	"context"
	"log/slog"

	"github.com/repokit/repo/internal/bump"
	"github.com/repokit/repo/internal/issue"

	"github.com/Masterminds/semver/v3"
)

// Ecosystem is the set of version operations a language ecosystem supports.
type Ecosystem interface {
	ID() ID
	// ReadVersion returns the project version without a `v` prefix.
	ReadVersion(ctx context.Context) (string, error)
	// SetVersion writes v through the ecosystem's tool.
	SetVersion(ctx context.Context, v *semver.Version) error
	// NativeBump asks the ecosystem's tool to bump by m.
	NativeBump(ctx context.Context, m bump.Magnitude) error
	// Rules describes how NativeBump treats prereleases.
	Rules() bump.Rules
	// Publish releases the package to the ecosystem's registry.
	Publish(ctx context.Context) error
}

// DetectVersion probes ecosystems in order and returns the first one whose
// version can be read. A non-empty only restricts probing to that ecosystem.
func DetectVersion(ctx context.Context, ecosystems []Ecosystem, only ID) (Ecosystem, string, bool) {
	for _, eco := range ecosystems {
		if only != "" && eco.ID() != only {
			continue
		}
		version, err := eco.ReadVersion(ctx)
		if err != nil {
			slog.Debug("no version found", "ecosystem", eco.ID(), "error", err)
			continue
		}
		return eco, version, true
	}
	return nil, "", false
}

// RequireVersion is DetectVersion for commands that cannot continue
// without an ecosystem.
func RequireVersion(ctx context.Context, ecosystems []Ecosystem, only ID) (Ecosystem, string, error) {
	eco, version, ok := DetectVersion(ctx, ecosystems, only)
	if ok {
		return eco, version, nil
	}
	ectx := issue.NewErrorContext().
		WithOperation("detect an ecosystem for this repo").
		WithIssue(issue.NoEcosystemId).
		WithSuggestion("Run the command from the folder containing package.json or Cargo.toml")
	if only != "" {
		ectx.WithResource(only.String())
	}
	return nil, "", ectx.BuildError()
}

// Set validates raw and writes it. Nothing is touched when raw is not a
// valid version.
func Set(ctx context.Context, eco Ecosystem, raw string) (*semver.Version, error) {
	v, err := bump.ParseVersion(raw)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("set version").
			WithResource(raw).
			WithIssue(issue.InvalidVersionId).
			Wrap(err).
			BuildError()
	}
	slog.Info("setting version", "version", bump.Format(v.String(), true))
	if err := eco.SetVersion(ctx, v); err != nil {
		return nil, toolError("set version", eco, err)
	}
	return v, nil
}

// Bump moves the version of eco by m and returns the new version read back
// from the manifest.
func Bump(ctx context.Context, eco Ecosystem, m bump.Magnitude) (string, error) {
	raw, err := eco.ReadVersion(ctx)
	if err != nil {
		return "", issue.WrapWithContext(err, "read current version", eco.ID().String())
	}
	current, err := bump.ParseVersion(raw)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("parse current version").
			WithResource(raw).
			WithIssue(issue.InvalidVersionId).
			Wrap(err).
			BuildError()
	}

	step, err := bump.Plan(current, m, eco.Rules())
	if err != nil {
		return "", err
	}
	slog.Debug("planned bump", "ecosystem", eco.ID(), "from", current, "step", step)

	if step.IsNative() {
		err = eco.NativeBump(ctx, step.Native)
	} else {
		err = eco.SetVersion(ctx, step.Exact)
	}
	if err != nil {
		return "", toolError("bump version", eco, err)
	}
	slog.Info("bumped version", "ecosystem", eco.ID())

	next, err := eco.ReadVersion(ctx)
	if err != nil {
		return "", issue.WrapWithContext(err, "read bumped version", eco.ID().String())
	}
	return next, nil
}

// Publish releases eco's package.
func Publish(ctx context.Context, eco Ecosystem) error {
	if err := eco.Publish(ctx); err != nil {
		return toolError("publish", eco, err)
	}
	return nil
}

func toolError(op string, eco Ecosystem, err error) error {
	return issue.NewErrorContext().
		WithOperation(op).
		WithResource(eco.ID().String()).
		WithIssue(issue.ExternalToolFailedId).
		Wrap(err).
		BuildError()
}
