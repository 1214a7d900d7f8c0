// SPDX-License-Identifier: MPL-2.0

// Package boilerplate writes the repository files `repo` ships templates
// for, and opens them for editing or in the file browser.
package boilerplate
