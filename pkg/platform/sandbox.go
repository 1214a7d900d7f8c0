// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

// Sandbox type constants.
const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak SandboxType = "flatpak"
	// SandboxSnap indicates a Snap sandbox environment.
	SandboxSnap SandboxType = "snap"
)

// detectOnce caches the sandbox detection result for the lifetime of the process.
//
// INVARIANT: detectSandboxFrom MUST NOT panic; sync.OnceValue re-panics on
// every call.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// SandboxType identifies the type of application sandbox, if any.
type SandboxType string

// DetectSandbox returns the sandbox the current process runs in. The result
// is cached after the first call.
func DetectSandbox() SandboxType {
	return detectOnce()
}

// OnHost rewrites argv so that it runs on the host system when st is a
// sandbox. Desktop openers inside a sandbox can't see the user's files.
func OnHost(st SandboxType, argv []string) []string {
	var prefix []string
	switch st {
	case SandboxFlatpak:
		prefix = []string{"flatpak-spawn", "--host"}
	case SandboxSnap:
		prefix = []string{"snap", "run", "--shell"}
	default:
		return argv
	}
	return append(prefix, argv...)
}

// detectSandboxFrom performs sandbox detection using the provided lookup functions.
func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) SandboxType {
	// The /.flatpak-info file is always present inside Flatpak sandboxes.
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}
	if lookupEnv("SNAP_NAME") != "" {
		return SandboxSnap
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
