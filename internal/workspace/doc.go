// SPDX-License-Identifier: MPL-2.0

// Package workspace finds the root folder of the project containing a path,
// whether or not it is under version control.
package workspace
