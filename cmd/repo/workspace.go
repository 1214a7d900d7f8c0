// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/repokit/repo/pkg/types"

	"github.com/spf13/cobra"
)

// fallbackClosestDir prints the path itself, or its folder, when no root is found.
const fallbackClosestDir = "closest-dir"

// newWorkspaceCommand creates the `repo workspace` command tree.
func newWorkspaceCommand(app *App) *cobra.Command {
	workspaceCmd := &cobra.Command{
		Use:   "workspace",
		Short: "Inspect the workspace",
	}

	var (
		path     string
		fallback string
	)
	rootCmd := &cobra.Command{
		Use:   "root",
		Short: "Print the workspace root folder",
		Long: `Print the workspace root folder, based on the VCS or on litmus files
(the cargo workspace, package.json, go.mod).

Also consider ` + CmdStyle.Render("repo vcs root") + ` when only VCS roots matter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fallback != "" && fallback != fallbackClosestDir {
				return fmt.Errorf("invalid --fallback %q (expected %s)", fallback, fallbackClosestDir)
			}
			start := types.FilesystemPath(app.dir)
			if path != "" {
				start = types.FilesystemPath(path).Resolve(app.dir)
			}
			dir := start.ClosestDir(app.fs)

			if root, ok := app.services.workspace.Detect(cmd.Context(), dir); ok {
				fmt.Fprint(app.stdout, root)
				return nil
			}
			if fallback == fallbackClosestDir {
				fmt.Fprint(app.stdout, dir)
			}
			return &ExitError{Code: types.ExitFailure}
		},
	}
	rootCmd.Flags().StringVar(&path, "path", "", "file or folder to start from (default is the working directory)")
	rootCmd.Flags().StringVar(&fallback, "fallback", "", "what to print when no root is found ("+fallbackClosestDir+")")
	_ = rootCmd.RegisterFlagCompletionFunc("fallback", cobra.FixedCompletions([]string{fallbackClosestDir}, cobra.ShellCompDirectiveNoFileComp))
	workspaceCmd.AddCommand(rootCmd)

	return workspaceCmd
}
