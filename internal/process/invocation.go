// SPDX-License-Identifier: MPL-2.0

package process

import (
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Invocation describes a single external program call.
type Invocation struct {
	// Name is the program to run, resolved through PATH.
	Name string
	// Args are passed verbatim (no shell involved).
	Args []string
	// Dir is the working directory. Empty means the working directory of
	// this process.
	Dir string
	// Stdin is optional input for the program.
	Stdin io.Reader
}

// Command builds an Invocation for name with args in the current directory.
func Command(name string, args ...string) Invocation {
	return Invocation{Name: name, Args: args}
}

// In returns a copy of the invocation that runs in dir.
func (inv Invocation) In(dir string) Invocation {
	inv.Dir = dir
	return inv
}

// WithStdin returns a copy of the invocation that reads r as standard input.
func (inv Invocation) WithStdin(r io.Reader) Invocation {
	inv.Stdin = r
	return inv
}

// Argv returns the program name followed by its arguments.
func (inv Invocation) Argv() []string {
	return append([]string{inv.Name}, inv.Args...)
}

// String renders the invocation as a copy-pasteable POSIX shell command.
// The working directory, if set, is rendered as a leading `cd`.
func (inv Invocation) String() string {
	var sb strings.Builder
	if inv.Dir != "" {
		sb.WriteString("cd ")
		sb.WriteString(quote(inv.Dir))
		sb.WriteString(" && ")
	}
	for i, arg := range inv.Argv() {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(quote(arg))
	}
	return sb.String()
}

// quote shell-quotes s only when needed, so simple argv stays readable.
func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}()<>|&;#~=%") {
		return s
	}
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		// Only reachable for strings containing NUL bytes, which can't be
		// passed to a program anyway.
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return q
}
