// SPDX-License-Identifier: MPL-2.0

package process

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DebugEnvVar enables echoing of every invocation when set to "true".
const DebugEnvVar = "DEBUG_PRINT_SHELL_COMMANDS"

var echoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))

// EchoTo returns an Observer that prints each invocation to w, one per line.
// Output is dimmed when w is a terminal.
func EchoTo(w io.Writer) Observer {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}
	return func(inv Invocation) {
		line := inv.String()
		if styled {
			line = echoStyle.Render(line)
		}
		_, _ = io.WriteString(w, line+"\n")
	}
}
