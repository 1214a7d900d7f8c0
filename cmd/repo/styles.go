// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette for help text and error output, picked for dark backgrounds.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorError     = lipgloss.Color("#EF4444")
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle renders the tool name in help headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	// SubtitleStyle renders section labels in help text.
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// ErrorStyle renders the `Error:` label of failures.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	// CmdStyle renders command lines and file paths inside help text.
	CmdStyle = lipgloss.NewStyle().Foreground(ColorHighlight)
)
