// SPDX-License-Identifier: MPL-2.0

package vcs

import (
	"context"
	"path/filepath"

	"github.com/repokit/repo/internal/process"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"
)

// MercurialMarker is the path segment whose presence marks a Mercurial root.
const MercurialMarker = ".hg"

// detectionCacheSize bounds memoized detections per invocation.
const detectionCacheSize = 64

type (
	// Detection is a detected VCS and the root of its working copy.
	Detection struct {
		Kind Kind
		Root string
	}

	// Detector finds the VCS governing a directory.
	Detector struct {
		exec  process.Executor
		fs    afero.Fs
		cache *lru.Cache[string, detectionEntry]
	}

	detectionEntry struct {
		detection Detection
		found     bool
	}
)

// NewDetector creates a Detector. Results are memoized per start directory
// for the lifetime of the Detector, which is one CLI invocation.
func NewDetector(exec process.Executor, fs afero.Fs) *Detector {
	// lru.New only fails for non-positive sizes.
	cache, _ := lru.New[string, detectionEntry](detectionCacheSize)
	return &Detector{exec: exec, fs: fs, cache: cache}
}

// Detect returns the VCS governing startDir, trying in order:
//  1. `jj root`
//  2. `git rev-parse --show-toplevel`
//  3. startDir and its ancestors, closest first, for a `.hg` entry
//
// Any probe failure counts as absence.
func (d *Detector) Detect(ctx context.Context, startDir string) (Detection, bool) {
	if entry, ok := d.cache.Get(startDir); ok {
		return entry.detection, entry.found
	}
	detection, found := d.detect(ctx, startDir)
	d.cache.Add(startDir, detectionEntry{detection: detection, found: found})
	return detection, found
}

func (d *Detector) detect(ctx context.Context, startDir string) (Detection, bool) {
	if root, ok := process.StdoutIfSuccess(ctx, d.exec, process.Command("jj", "root").In(startDir)); ok && root != "" {
		return Detection{Kind: KindJj, Root: root}, true
	}
	if root, ok := process.StdoutIfSuccess(ctx, d.exec, process.Command("git", "rev-parse", "--show-toplevel").In(startDir)); ok && root != "" {
		return Detection{Kind: KindGit, Root: root}, true
	}
	if root, ok := FindAncestorWith(d.fs, startDir, MercurialMarker); ok {
		return Detection{Kind: KindMercurial, Root: root}, true
	}
	return Detection{}, false
}

// FindAncestorWith walks dir and its ancestors, closest first, and returns
// the first one containing any of names (file or directory).
func FindAncestorWith(fs afero.Fs, dir string, names ...string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		for _, name := range names {
			if _, err := fs.Stat(filepath.Join(dir, name)); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
