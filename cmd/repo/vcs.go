// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/repokit/repo/internal/issue"
	"github.com/repokit/repo/internal/vcs"

	"github.com/spf13/cobra"
)

// newVCSCommand creates the `repo vcs` command tree.
func newVCSCommand(app *App) *cobra.Command {
	vcsCmd := &cobra.Command{
		Use:   "vcs",
		Short: "Inspect the version control repository",
	}

	vcsCmd.AddCommand(&cobra.Command{
		Use:   "kind",
		Short: "Print the kind of VCS",
		Long: `Print the kind of VCS (jj, git or mercurial).

If there are several in the same project (e.g. jj colocated with git), at
most one is printed, consistent with ` + CmdStyle.Render("repo vcs root") + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			detection, err := app.detectVCS(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, detection.Kind)
			return nil
		},
	})

	vcsCmd.AddCommand(&cobra.Command{
		Use:   "root",
		Short: "Print the repository root folder",
		Long: `Print the repository root folder.

Also consider ` + CmdStyle.Render("repo workspace root") + ` when a project root is
enough and it doesn't need to be under version control.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			detection, err := app.detectVCS(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, detection.Root)
			return nil
		},
	})

	latestCmd := &cobra.Command{
		Use:   "latest-commit",
		Short: "Operate on the latest commit",
		Long: `Operate on the latest commit.

This excludes the working copy. For jj, an empty or undescribed non-merge
` + "`@`" + ` is skipped as well.`,
	}
	latestCmd.AddCommand(&cobra.Command{
		Use:   "hash",
		Short: "Print the commit hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			detection, err := app.detectVCS(ctx)
			if err != nil {
				return err
			}
			backend, err := vcs.NewBackend(detection.Kind, app.services.exec, app.dir)
			if err != nil {
				return err
			}
			hash, err := backend.LatestCommitHash(ctx)
			if err != nil {
				ectx := issue.NewErrorContext().
					WithOperation("get the latest commit hash").
					WithResource(detection.Root)
				if errors.Is(err, vcs.ErrUnsupported) {
					ectx.WithIssue(issue.UnsupportedVcsId)
				} else {
					ectx.WithIssue(issue.ExternalToolFailedId)
				}
				return ectx.Wrap(err).BuildError()
			}
			fmt.Fprint(app.stdout, hash)
			return nil
		},
	})
	vcsCmd.AddCommand(latestCmd)

	return vcsCmd
}

func (a *App) detectVCS(ctx context.Context) (vcs.Detection, error) {
	detection, ok := a.services.vcs.Detect(ctx, a.dir)
	if !ok {
		return vcs.Detection{}, issue.NewErrorContext().
			WithOperation("detect a VCS repo").
			WithResource(a.dir).
			WithIssue(issue.NoVcsId).
			BuildError()
	}
	return detection, nil
}
