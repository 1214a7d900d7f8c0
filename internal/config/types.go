// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// PostVersionScript is the name of the script run after a version change.
const PostVersionScript = "postVersion"

var (
	// ErrInvalidScript is the sentinel error wrapped by InvalidScriptError.
	ErrInvalidScript = errors.New("invalid script")
)

type (
	// Script is an argument list. The first element is the program.
	Script []string

	// InvalidScriptError is returned when a script value has the wrong shape.
	InvalidScriptError struct {
		Name   string
		Reason string
	}

	// Config holds the repository configuration.
	Config struct {
		// Scripts maps script names to commands. Keys are stored lowercased.
		Scripts map[string]Script
		// Debug holds diagnostics switches.
		Debug DebugConfig
		// Source is the file the configuration was read from; empty for
		// defaults.
		Source string
	}

	// DebugConfig holds diagnostics switches.
	DebugConfig struct {
		// PrintShellCommands echoes every external command to stderr.
		PrintShellCommands bool `mapstructure:"print_shell_commands"`
	}
)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{Scripts: map[string]Script{}}
}

// Script returns the script registered under name, matching names
// case-insensitively.
func (c *Config) Script(name string) (Script, bool) {
	s, ok := c.Scripts[strings.ToLower(name)]
	return s, ok && len(s) > 0
}

// ParseScript converts a decoded configuration value into a Script. Strings
// are split with POSIX shell quoting rules; nothing is expanded.
func ParseScript(name string, value any) (Script, error) {
	switch v := value.(type) {
	case string:
		fields, err := shell.Fields(v, func(string) string { return "" })
		if err != nil {
			return nil, &InvalidScriptError{Name: name, Reason: err.Error()}
		}
		if len(fields) == 0 {
			return nil, &InvalidScriptError{Name: name, Reason: "empty command"}
		}
		return fields, nil
	case []any:
		script := make(Script, 0, len(v))
		for i, arg := range v {
			s, ok := arg.(string)
			if !ok {
				return nil, &InvalidScriptError{Name: name, Reason: fmt.Sprintf("argument %d is %T, not a string", i, arg)}
			}
			script = append(script, s)
		}
		if len(script) == 0 {
			return nil, &InvalidScriptError{Name: name, Reason: "empty command"}
		}
		return script, nil
	case []string:
		return ParseScript(name, toAnySlice(v))
	}
	return nil, &InvalidScriptError{Name: name, Reason: fmt.Sprintf("expected a string or a list of strings, got %T", value)}
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// Error implements the error interface.
func (e *InvalidScriptError) Error() string {
	return fmt.Sprintf("invalid script %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidScript for errors.Is() compatibility.
func (e *InvalidScriptError) Unwrap() error { return ErrInvalidScript }
