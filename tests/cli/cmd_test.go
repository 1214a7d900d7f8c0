// SPDX-License-Identifier: MPL-2.0

// Package cli contains CLI integration tests using testscript.
//
// The repo command is linked into the test binary and exposed to scripts
// as the `repo` program, so scripts exercise real process boundaries:
// argv parsing, exit codes, stdout and stderr.
package cli

import (
	"os"
	"path/filepath"
	"testing"

	cmd "github.com/repokit/repo/cmd/repo"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"repo": func() { os.Exit(cmd.Main()) },
	})
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			// Keep git from discovering a repository above $WORK.
			env.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(env.WorkDir))
			// Editors must never be spawned from a script.
			env.Setenv("VISUAL", "false")
			env.Setenv("EDITOR", "false")
			env.Setenv("DEBUG_PRINT_SHELL_COMMANDS", "")
			return nil
		},
		// Continue running all tests even if one fails
		ContinueOnError: true,
	})
}
