// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"context"
	"encoding/json"

	"github.com/repokit/repo/internal/process"
	"github.com/repokit/repo/internal/vcs"

	"github.com/spf13/afero"
)

// Litmus files whose presence marks a workspace root when no VCS or cargo
// workspace is found.
const (
	PackageJSON = "package.json"
	GoMod       = "go.mod"
)

type (
	// VCSDetector is the subset of *vcs.Detector used here.
	VCSDetector interface {
		Detect(ctx context.Context, startDir string) (vcs.Detection, bool)
	}

	// Detector resolves workspace roots.
	Detector struct {
		vcs  VCSDetector
		exec process.Executor
		fs   afero.Fs
	}

	cargoWorkspace struct {
		WorkspaceRoot string `json:"workspace_root"`
	}
)

// NewDetector creates a Detector.
func NewDetector(v VCSDetector, exec process.Executor, fs afero.Fs) *Detector {
	return &Detector{vcs: v, exec: exec, fs: fs}
}

// Detect returns the workspace root for startDir, trying in order:
//  1. the VCS root
//  2. `cargo metadata`'s workspace_root
//  3. the closest directory containing package.json or go.mod
func (d *Detector) Detect(ctx context.Context, startDir string) (string, bool) {
	if detection, ok := d.vcs.Detect(ctx, startDir); ok {
		return detection.Root, true
	}
	if root, ok := d.cargoWorkspaceRoot(ctx, startDir); ok {
		return root, true
	}
	return vcs.FindAncestorWith(d.fs, startDir, PackageJSON, GoMod)
}

func (d *Detector) cargoWorkspaceRoot(ctx context.Context, dir string) (string, bool) {
	out, ok := process.StdoutIfSuccess(ctx, d.exec,
		process.Command("cargo", "metadata", "--format-version", "1", "--no-deps").In(dir))
	if !ok {
		return "", false
	}
	var meta cargoWorkspace
	if err := json.Unmarshal([]byte(out), &meta); err != nil || meta.WorkspaceRoot == "" {
		return "", false
	}
	return meta.WorkspaceRoot, true
}
