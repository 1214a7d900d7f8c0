// SPDX-License-Identifier: MPL-2.0

// Package bump contains the version arithmetic behind `repo version set` and
// `repo version bump`. It never touches files: callers receive a Step that
// either names an exact version to write or asks the ecosystem's own tool to
// perform a native bump.
package bump
