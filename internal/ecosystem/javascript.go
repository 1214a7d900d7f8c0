// SPDX-License-Identifier: MPL-2.0

package ecosystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/repokit/repo/internal/bump"
	"github.com/repokit/repo/internal/process"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
)

// PackageJSON is the JavaScript manifest file name.
const PackageJSON = "package.json"

var (
	// ErrManifestNotFound is returned when the manifest file does not exist.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrNoVersionField is returned when package.json has no version.
	ErrNoVersionField = errors.New("no version field found in `package.json`")
)

type (
	// JavaScript drives npm-family projects.
	JavaScript struct {
		exec process.Executor
		fs   afero.Fs
		dir  string
	}

	packageJSONVersion struct {
		Version *string `json:"version"`
	}
)

// NewJavaScript returns the JavaScript ecosystem for the project in dir.
func NewJavaScript(exec process.Executor, fs afero.Fs, dir string) *JavaScript {
	return &JavaScript{exec: exec, fs: fs, dir: dir}
}

func (*JavaScript) ID() ID { return JavaScriptID }

// Rules reports that `npm version patch` turns 1.2.3-beta.1 into 1.2.3.
func (*JavaScript) Rules() bump.Rules {
	return bump.Rules{NativePatchFinalizesPrerelease: true}
}

// ReadVersion reads the version field of package.json.
func (j *JavaScript) ReadVersion(context.Context) (string, error) {
	path := filepath.Join(j.dir, PackageJSON)
	data, err := afero.ReadFile(j.fs, path)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return "", fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return "", fmt.Errorf("could not read `%s`: %w", path, err)
	}
	var manifest packageJSONVersion
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", fmt.Errorf("could not parse `%s`: %w", path, err)
	}
	if manifest.Version == nil {
		return "", ErrNoVersionField
	}
	return bump.StripPrefix(*manifest.Version), nil
}

func (j *JavaScript) SetVersion(ctx context.Context, v *semver.Version) error {
	return j.npmVersion(ctx, v.String())
}

func (j *JavaScript) NativeBump(ctx context.Context, m bump.Magnitude) error {
	return j.npmVersion(ctx, m.String())
}

func (j *JavaScript) npmVersion(ctx context.Context, target string) error {
	return process.StreamMustSucceed(ctx, j.exec,
		process.Command("npm", "version", target, "--no-git-tag-version").In(j.dir))
}

func (j *JavaScript) Publish(ctx context.Context) error {
	return process.StreamMustSucceed(ctx, j.exec, process.Command("npm", "publish").In(j.dir))
}
