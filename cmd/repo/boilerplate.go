// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/repokit/repo/internal/boilerplate"

	"github.com/spf13/cobra"
)

// newBoilerplateCommand creates the `repo boilerplate` command tree.
func newBoilerplateCommand(app *App) *cobra.Command {
	boilerplateCmd := &cobra.Command{
		Use:   "boilerplate",
		Short: "Add repository boilerplate files",
	}
	boilerplateCmd.AddCommand(
		newTemplateFileCommand(app, "ci", boilerplate.CI(),
			"Set up a CI template for GitHub and open it for editing"),
		newTemplateFileCommand(app, "auto-publish-github-release", boilerplate.PublishGitHubRelease(),
			"Set up a workflow publishing a GitHub release for every pushed version tag"),
	)
	return boilerplateCmd
}

// newCICommand creates the `repo ci` command tree.
func newCICommand(app *App) *cobra.Command {
	ciCmd := &cobra.Command{
		Use:   "ci",
		Short: "Work with the CI workflow",
	}
	ciCmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Open the CI file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.services.files.Edit(cmd.Context(), boilerplate.CI())
		},
	})
	add := newTemplateAddCommand(app, boilerplate.CI())
	add.Use = "boilerplate"
	add.Short = "Alias for `repo boilerplate ci add`"
	ciCmd.AddCommand(add)
	return ciCmd
}

// newTemplateFileCommand creates the add/edit/reveal tree for one template.
func newTemplateFileCommand(app *App, name string, f boilerplate.File, short string) *cobra.Command {
	fileCmd := &cobra.Command{
		Use:   name,
		Short: short,
		Long:  short + ", at: " + CmdStyle.Render(f.Path),
	}
	fileCmd.AddCommand(
		newTemplateAddCommand(app, f),
		&cobra.Command{
			Use:   "edit",
			Short: "Open the file for editing",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.services.files.Edit(cmd.Context(), f)
			},
		},
		&cobra.Command{
			Use:   "reveal",
			Short: "Show the file in the file browser",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.services.files.Reveal(cmd.Context(), f)
			},
		},
	)
	return fileCmd
}

func newTemplateAddCommand(app *App, f boilerplate.File) *cobra.Command {
	var (
		overwrite bool
		followup  string
	)
	names := make([]string, 0, len(boilerplate.Followups()))
	for _, fu := range boilerplate.Followups() {
		names = append(names, fu.String())
	}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write the file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fu, err := boilerplate.ParseFollowup(followup)
			if err != nil {
				return err
			}
			return app.services.files.Add(cmd.Context(), f, overwrite, fu)
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the file if it exists")
	cmd.Flags().StringVar(&followup, "followup", boilerplate.FollowupEdit.String(),
		"what to do after writing ("+strings.Join(names, ", ")+")")
	_ = cmd.RegisterFlagCompletionFunc("followup", cobra.FixedCompletions(names, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}
