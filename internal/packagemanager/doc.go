// SPDX-License-Identifier: MPL-2.0

// Package packagemanager picks the package manager a project uses from the
// lockfiles and manifests present in its folder.
//
// JavaScript and Rust managers are separate closed types so a manager can
// never be paired with the wrong ecosystem.
package packagemanager
