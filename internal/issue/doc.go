// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into messages a user can act on.
//
// ActionableError says which step failed, on what, and what to try next.
// The catalog maps issue IDs (no VCS, dirty working tree, failed tool, …)
// to Markdown guidance that the CLI renders with glamour under --verbose.
package issue
