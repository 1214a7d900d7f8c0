// SPDX-License-Identifier: MPL-2.0

// Package ecosystem reads, sets, bumps and publishes the version of a
// project through the tools of its language ecosystem (npm, cargo).
package ecosystem
