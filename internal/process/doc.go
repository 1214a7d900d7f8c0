// SPDX-License-Identifier: MPL-2.0

// Package process invokes external tools (git, jj, npm, cargo, bun, editors).
//
// Every call is described by an Invocation record before it is spawned. The
// record is what gets echoed for debugging (see Observer) and what tests
// assert against, so spawning and printing never diverge.
package process
