// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/repokit/repo/internal/config"
	"github.com/repokit/repo/internal/process"
	"github.com/repokit/repo/pkg/types"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// configView is the TOML rendering of the effective configuration.
type configView struct {
	Scripts map[string][]string `toml:"scripts,omitempty"`
	Debug   struct {
		PrintShellCommands bool `toml:"print_shell_commands"`
	} `toml:"debug"`
}

// newConfigCommand creates the `repo config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect repo configuration",
		Long: `Inspect repo configuration.

Configuration is read from the first existing file of:
  - ./.config/repo.json
  - ./.config/repo.cue
  - ./.config/repo.toml

Run ` + CmdStyle.Render("repo print-schema config") + ` for the accepted fields.`,
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var view configView
			view.Scripts = make(map[string][]string, len(app.cfg.Scripts))
			for name, script := range app.cfg.Scripts {
				view.Scripts[name] = script
			}
			view.Debug.PrintShellCommands = app.cfg.Debug.PrintShellCommands

			data, err := toml.Marshal(view)
			if err != nil {
				return fmt.Errorf("failed to render configuration: %w", err)
			}
			_, err = app.stdout.Write(data)
			return err
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.Source != "" {
				fmt.Fprint(app.stdout, app.cfg.Source)
				return nil
			}
			fmt.Fprintln(app.stderr, "No configuration file found. Searched:")
			for _, p := range config.SearchPaths(app.dir) {
				fmt.Fprintln(app.stderr, "  "+p)
			}
			return &ExitError{Code: types.ExitFailure}
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "scripts",
		Short: "List configured scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range slices.Sorted(maps.Keys(app.cfg.Scripts)) {
				script := app.cfg.Scripts[name]
				fmt.Fprintf(app.stdout, "%s: %s\n", name, process.Command(script[0], script[1:]...))
			}
			return nil
		},
	})

	return cfgCmd
}
