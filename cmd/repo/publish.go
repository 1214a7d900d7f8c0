// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/repokit/repo/internal/ecosystem"

	"github.com/spf13/cobra"
)

// newPublishCommand creates the `repo publish` command.
func newPublishCommand(app *App) *cobra.Command {
	var eco ecosystemFlag
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the package with the ecosystem's tool",
		Long:  "Publish the package with `npm publish` or `cargo publish`, depending on the detected ecosystem.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			only, err := eco.id()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			target, _, err := ecosystem.RequireVersion(ctx, app.services.ecosystems, only)
			if err != nil {
				return err
			}
			return ecosystem.Publish(ctx, target)
		},
	}
	eco.register(cmd)
	return cmd
}
