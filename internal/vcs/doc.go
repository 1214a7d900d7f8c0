// SPDX-License-Identifier: MPL-2.0

// Package vcs detects which version-control system governs a directory and
// drives the commit operations `repo` needs from it.
//
// Detection order is jj, then git, then a Mercurial `.hg` ancestor search.
// jj wins over git so colocated jj+git repositories are handled through jj.
// Mercurial is detect-only: every Backend operation on it fails with
// ErrUnsupported.
package vcs
