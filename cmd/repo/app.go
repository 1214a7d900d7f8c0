// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/repokit/repo/internal/boilerplate"
	"github.com/repokit/repo/internal/commitop"
	"github.com/repokit/repo/internal/config"
	"github.com/repokit/repo/internal/ecosystem"
	"github.com/repokit/repo/internal/hooks"
	"github.com/repokit/repo/internal/process"
	"github.com/repokit/repo/internal/vcs"
	"github.com/repokit/repo/internal/workspace"
	"github.com/repokit/repo/pkg/types"

	"github.com/spf13/afero"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every command handler receives an App and
	// delegates to the services it builds once the configuration is loaded.
	App struct {
		Config config.Provider

		fs          afero.Fs
		exec        process.Executor
		dir         string
		stdin       io.Reader
		stdout      io.Writer
		stderr      io.Writer
		boilerplate []boilerplate.Option

		// Set by the root command's persistent flags.
		verbose bool
		cfgFile string

		// Built by load.
		cfg      *config.Config
		services *services
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		FS     afero.Fs
		// Exec runs external tools. When nil, an os/exec backed executor is
		// built after the configuration is loaded.
		Exec process.Executor
		// Dir is the folder commands operate on. Defaults to the working
		// directory.
		Dir    string
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// Boilerplate customizes how template files are opened.
		Boilerplate []boilerplate.Option
	}

	// services are the per-run objects commands work with.
	services struct {
		exec       process.Executor
		vcs        *vcs.Detector
		workspace  *workspace.Detector
		ecosystems []ecosystem.Ecosystem
		hooks      *hooks.Runner
		files      *boilerplate.Manager
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider(deps.FS)
	}
	if deps.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		deps.Dir = wd
	}

	return &App{
		Config:      deps.Config,
		fs:          deps.FS,
		exec:        deps.Exec,
		dir:         deps.Dir,
		stdin:       deps.Stdin,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
		boilerplate: deps.Boilerplate,
	}, nil
}

// load reads the configuration and builds the services. It runs once per
// command invocation, before the command's RunE.
func (a *App) load(ctx context.Context) error {
	opts := config.LoadOptions{Dir: types.FilesystemPath(a.dir)}
	if a.cfgFile != "" {
		opts.ConfigFilePath = types.FilesystemPath(a.cfgFile).Resolve(a.dir)
	}
	cfg, err := a.Config.Load(ctx, opts)
	if err != nil {
		return err
	}
	a.cfg = cfg

	exec := a.exec
	if exec == nil {
		opts := []process.Option{process.WithStreams(a.stdin, a.stdout, a.stderr)}
		if cfg.Debug.PrintShellCommands {
			opts = append(opts, process.WithObserver(process.EchoTo(a.stderr)))
		}
		exec = process.NewOSExecutor(opts...)
	}

	vcsDetector := vcs.NewDetector(exec, a.fs)
	a.services = &services{
		exec:      exec,
		vcs:       vcsDetector,
		workspace: workspace.NewDetector(vcsDetector, exec, a.fs),
		ecosystems: []ecosystem.Ecosystem{
			ecosystem.NewJavaScript(exec, a.fs, a.dir),
			ecosystem.NewRust(exec, a.dir),
		},
		hooks: hooks.NewRunner(exec, cfg, a.dir),
		files: boilerplate.NewManager(a.fs, exec, a.dir, a.boilerplate...),
	}
	return nil
}

// newOperation starts a commit-wrapped operation in the App's folder.
func (a *App) newOperation(ctx context.Context, f *commitFlags) (*commitop.Operation, error) {
	opts, err := f.options()
	if err != nil {
		return nil, err
	}
	return commitop.New(ctx, opts, a.services.vcs, a.services.exec, a.dir)
}
