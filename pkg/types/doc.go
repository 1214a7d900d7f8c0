// SPDX-License-Identifier: MPL-2.0

// Package types holds small validated value types shared by the CLI layer
// and the internal packages (exit codes, user-supplied filesystem paths).
package types
