// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/repokit/repo/internal/config"
	"github.com/repokit/repo/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// annotationStandalone marks commands that neither read the configuration
// nor touch the repository, so a broken config file can't stop them.
const annotationStandalone = "repo.standalone"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "A tool for repo management",
		Long: TitleStyle.Render("repo") + SubtitleStyle.Render(" - a tool for repo management") + `

repo reads and bumps project versions, publishes packages, rolls
dependencies and answers questions about the repository it runs in.
It works with npm-family JavaScript projects and cargo projects, in
git or jj repositories.

` + SubtitleStyle.Render("Examples:") + `
  repo version get                  Print the current version
  repo version bump patch --commit  Bump and commit the new version
  repo vcs root                     Print the repository root
  repo workspace root               Print the workspace root`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.setupLogging()
			if cmd.Annotations[annotationStandalone] == "true" {
				return nil
			}
			return app.load(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is ./.config/repo.{json,cue,toml})")

	rootCmd.AddCommand(
		newVersionCommand(app),
		newVCSCommand(app),
		newWorkspaceCommand(app),
		newPublishCommand(app),
		newDependenciesCommand(app),
		newBoilerplateCommand(app),
		newCICommand(app),
		newPrintSchemaCommand(app),
		newConfigCommand(app),
		newCompletionCommand(),
	)

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	return rootCmd
}

// Main runs the CLI with the process arguments and returns the exit code.
func Main() int {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		return 1
	}
	return int(app.Execute(context.Background(), os.Args[1:]))
}

// Execute runs the command tree with args and returns the exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	rootCmd := NewRootCommand(a)
	rootCmd.SetArgs(args)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(a.renderError),
	)
	return int(exitCodeOf(err))
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// setupLogging routes log/slog through a charmbracelet logger on stderr.
func (a *App) setupLogging() {
	level := log.InfoLevel
	if a.verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	slog.SetDefault(slog.New(logger))
}

// renderError prints err for the user. Actionable errors get their
// suggestions and, when they reference one, the issue catalog entry.
func (a *App) renderError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(a.verbose))
	if !a.verbose {
		return
	}
	if entry, ok := issue.IssueOf(err); ok {
		rendered, renderErr := entry.Render(glamourStyle(w))
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", entry.Id(), "error", renderErr)
			return
		}
		fmt.Fprint(w, rendered)
	}
}

// glamourStyle picks a colored style for terminals and plain text otherwise.
func glamourStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}
