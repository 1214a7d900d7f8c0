// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/repokit/repo/internal/bump"
	"github.com/repokit/repo/internal/ecosystem"
	"github.com/repokit/repo/internal/hooks"
	"github.com/repokit/repo/internal/issue"
	"github.com/repokit/repo/pkg/types"

	"github.com/spf13/cobra"
)

// newVersionCommand creates the `repo version` command tree.
func newVersionCommand(app *App) *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Get, set or bump the project version",
	}
	versionCmd.AddCommand(
		newVersionGetCommand(app),
		newVersionSetCommand(app),
		newVersionBumpCommand(app),
	)
	return versionCmd
}

func newVersionGetCommand(app *App) *cobra.Command {
	var (
		eco      ecosystemFlag
		noPrefix bool
	)
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			only, err := eco.id()
			if err != nil {
				return err
			}
			_, version, ok := ecosystem.DetectVersion(cmd.Context(), app.services.ecosystems, only)
			if !ok {
				fmt.Fprintln(app.stderr, "No version found.")
				return &ExitError{Code: types.ExitFailure}
			}
			fmt.Fprint(app.stdout, bump.Format(version, !noPrefix))
			return nil
		},
	}
	eco.register(cmd)
	cmd.Flags().BoolVar(&noPrefix, "no-prefix", false, "do not print the `v` prefix (e.g. print `0.1.3` instead of `v0.1.3`)")
	return cmd
}

func newVersionSetCommand(app *App) *cobra.Command {
	var (
		eco    ecosystemFlag
		commit commitFlags
	)
	cmd := &cobra.Command{
		Use:   "set <version>",
		Short: "Set the current version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			only, err := eco.id()
			if err != nil {
				return err
			}
			if _, err := bump.ParseVersion(args[0]); err != nil {
				return issue.NewErrorContext().
					WithOperation("set version").
					WithResource(args[0]).
					WithIssue(issue.InvalidVersionId).
					Wrap(err).
					BuildError()
			}
			return app.performVersionChange(cmd.Context(), &commit, func(ctx context.Context) (string, error) {
				target, previous, err := ecosystem.RequireVersion(ctx, app.services.ecosystems, only)
				if err != nil {
					return "", err
				}
				v, err := ecosystem.Set(ctx, target, args[0])
				if err != nil {
					return "", err
				}
				if err := app.runPostVersion(ctx, hooks.PostVersion{
					Ecosystem:       target.ID(),
					PreviousVersion: previous,
					Version:         v.String(),
				}); err != nil {
					return "", err
				}
				return fmt.Sprintf("Set version to: `%s`", bump.Format(v.String(), true)), nil
			})
		},
	}
	eco.register(cmd)
	commit.register(cmd)
	return cmd
}

func newVersionBumpCommand(app *App) *cobra.Command {
	var (
		eco    ecosystemFlag
		commit commitFlags
	)
	names := make([]string, 0, len(bump.Magnitudes()))
	for _, m := range bump.Magnitudes() {
		names = append(names, m.String())
	}
	cmd := &cobra.Command{
		Use:       "bump <" + strings.Join(names, "|") + ">",
		Short:     "Bump the current version",
		Long:      "Bump the current version.\n\n`dev` moves to the next patch version with a `-dev` prerelease, e.g. v1.2.3 → v1.2.4-dev.",
		ValidArgs: names,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := bump.ParseMagnitude(args[0])
			if err != nil {
				return err
			}
			only, err := eco.id()
			if err != nil {
				return err
			}
			return app.performVersionChange(cmd.Context(), &commit, func(ctx context.Context) (string, error) {
				target, previous, err := ecosystem.RequireVersion(ctx, app.services.ecosystems, only)
				if err != nil {
					return "", err
				}
				next, err := ecosystem.Bump(ctx, target, m)
				if err != nil {
					return "", err
				}
				if err := app.runPostVersion(ctx, hooks.PostVersion{
					Ecosystem:       target.ID(),
					PreviousVersion: previous,
					Version:         next,
					Magnitude:       m,
				}); err != nil {
					return "", err
				}
				return fmt.Sprintf("Bump to next %s version: `%s`", m, bump.Format(next, true)), nil
			})
		},
	}
	eco.register(cmd)
	commit.register(cmd)
	return cmd
}

// performVersionChange runs change inside a commit-wrapped operation and
// prints its summary.
func (a *App) performVersionChange(ctx context.Context, f *commitFlags, change func(context.Context) (string, error)) error {
	op, err := a.newOperation(ctx, f)
	if err != nil {
		return err
	}
	summary, err := op.Perform(ctx, change)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, summary)
	return nil
}

func (a *App) runPostVersion(ctx context.Context, p hooks.PostVersion) error {
	_, err := a.services.hooks.PostVersion(ctx, p)
	return err
}
