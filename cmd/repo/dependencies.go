// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/repokit/repo/internal/dependencies"
	"github.com/repokit/repo/internal/ecosystem"
	"github.com/repokit/repo/internal/issue"
	"github.com/repokit/repo/internal/packagemanager"

	"github.com/spf13/cobra"
)

// newDependenciesCommand creates the `repo dependencies` command tree.
func newDependenciesCommand(app *App) *cobra.Command {
	depsCmd := &cobra.Command{
		Use:   "dependencies",
		Short: "Manage project dependencies",
	}

	var (
		eco     ecosystemFlag
		commit  commitFlags
		manager string
	)
	rollCmd := &cobra.Command{
		Use:   "roll <name>",
		Short: "Move a dependency to its latest published version",
		Long: `Move a dependency to its latest published version.

Every package.json section that already lists the dependency is updated to
` + "`^<latest>`" + ` in its own step, each committed separately with --commit.
Only npm and bun are supported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pm, err := app.resolvePackageManager(ctx, manager, &eco)
			if err != nil {
				return err
			}
			roller := dependencies.NewRoller(app.services.exec, app.fs, app.dir,
				func(ctx context.Context) (dependencies.Wrapper, error) {
					return app.newOperation(ctx, &commit)
				})
			rolled, err := roller.Roll(ctx, pm, args[0])
			for _, summary := range rolled {
				fmt.Fprintln(app.stdout, summary)
			}
			return err
		},
	}
	eco.register(rollCmd)
	commit.register(rollCmd)
	rollCmd.Flags().StringVar(&manager, "package-manager", "", "package manager to use; detected from lockfiles when omitted")
	_ = rollCmd.RegisterFlagCompletionFunc("package-manager", cobra.FixedCompletions(packagemanager.Names(), cobra.ShellCompDirectiveNoFileComp))
	depsCmd.AddCommand(rollCmd)

	return depsCmd
}

// resolvePackageManager returns the --package-manager value, or the manager
// preferred by the lockfiles of the detected ecosystem.
func (a *App) resolvePackageManager(ctx context.Context, name string, eco *ecosystemFlag) (packagemanager.PackageManager, error) {
	if name != "" {
		return packagemanager.Parse(name)
	}
	only, err := eco.id()
	if err != nil {
		return nil, err
	}
	target, _, err := ecosystem.RequireVersion(ctx, a.services.ecosystems, only)
	if err != nil {
		return nil, err
	}
	pm, ok := packagemanager.Select(a.fs, a.dir, target.ID())
	if !ok {
		return nil, issue.NewErrorContext().
			WithOperation("detect a package manager").
			WithResource(target.ID().String()).
			WithSuggestion("Pass --package-manager explicitly").
			BuildError()
	}
	return pm, nil
}
