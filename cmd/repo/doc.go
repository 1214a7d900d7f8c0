// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the cobra command tree of `repo`.
//
// Commands are thin: they parse flags, ask the App for its services and
// print results. Everything that touches the repository lives in the
// internal packages so it can be tested without a terminal.
package cmd
