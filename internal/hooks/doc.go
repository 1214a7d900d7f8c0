// SPDX-License-Identifier: MPL-2.0

// Package hooks runs the user scripts configured under `scripts` at fixed
// points of a version change.
package hooks
