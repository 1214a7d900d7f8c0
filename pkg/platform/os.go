// SPDX-License-Identifier: MPL-2.0

package platform

// runtime.GOOS values the platform helpers branch on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	FreeBSD = "freebsd"
	OpenBSD = "openbsd"
	NetBSD  = "netbsd"
)

// usesXDG reports whether goos desktops follow the freedesktop.org
// conventions (xdg-open).
func usesXDG(goos string) bool {
	switch goos {
	case Linux, FreeBSD, OpenBSD, NetBSD:
		return true
	}
	return false
}
