// SPDX-License-Identifier: MPL-2.0

// Package platform builds the commands that hand files to the desktop:
// the user's editor and the platform file browser, routed through the host
// when running inside a Flatpak or Snap sandbox.
package platform
