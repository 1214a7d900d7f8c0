// SPDX-License-Identifier: MPL-2.0

// Package dependencies moves a JavaScript dependency to the newest version
// published on the registry, one commit per dependency section.
package dependencies
