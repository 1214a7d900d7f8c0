// SPDX-License-Identifier: MPL-2.0

// Command repo is a tool for repo management.
package main

import (
	"os"

	cmd "github.com/repokit/repo/cmd/repo"
)

func main() {
	os.Exit(cmd.Main())
}
