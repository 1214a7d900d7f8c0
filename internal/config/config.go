// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/repokit/repo/internal/issue"
	"github.com/repokit/repo/internal/process"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "repo"
	// ConfigDirName is the folder holding the config file, relative to the
	// working directory.
	ConfigDirName = ".config"

	// MaxFileSize bounds config files read into memory.
	MaxFileSize = 1 << 20

	printShellCommandsKey = "debug.print_shell_commands"
)

// Schema is the CUE schema every configuration file is validated against.
//
//go:embed config_schema.cue
var Schema string

// ErrConfigNotFound is returned when an explicitly requested file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// SearchPaths returns the candidate config files for dir in lookup order.
func SearchPaths(dir string) []string {
	base := filepath.Join(dir, ConfigDirName, AppName)
	return []string{base + ".json", base + ".cue", base + ".toml"}
}

// Find returns the first existing config file for dir.
func Find(fs afero.Fs, dir string) (string, bool) {
	for _, path := range SearchPaths(dir) {
		if fileExists(fs, path) {
			return path, true
		}
	}
	return "", false
}

// load performs option-driven config loading with a fresh Viper instance.
func load(ctx context.Context, fs afero.Fs, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("scripts", map[string]any{})
	v.SetDefault(printShellCommandsKey, false)
	if err := v.BindEnv(printShellCommandsKey, process.DebugEnvVar); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", process.DebugEnvVar, err)
	}

	path := string(opts.ConfigFilePath)
	if path != "" {
		if !fileExists(fs, path) {
			return nil, loadError(path, fmt.Errorf("%w: %s", ErrConfigNotFound, path),
				"Verify the file path is correct")
		}
	} else {
		path, _ = Find(fs, opts.dir())
	}

	if path != "" {
		if err := mergeFileIntoViper(fs, v, path); err != nil {
			return nil, loadError(path, err,
				"Verify the configuration values match the schema (`repo print-schema config`)")
		}
	}

	var rawScripts map[string]any
	if err := v.UnmarshalKey("scripts", &rawScripts); err != nil {
		return nil, loadError(path, fmt.Errorf("failed to parse scripts: %w", err))
	}
	cfg := DefaultConfig()
	cfg.Source = path
	for name, value := range rawScripts {
		script, err := ParseScript(name, value)
		if err != nil {
			return nil, loadError(path, err)
		}
		cfg.Scripts[strings.ToLower(name)] = script
	}
	cfg.Debug.PrintShellCommands = v.GetString(printShellCommandsKey) == "true"

	return cfg, nil
}

func loadError(path string, err error, suggestions ...string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId).
		WithSuggestions(suggestions...).
		Wrap(err).
		BuildError()
}

// mergeFileIntoViper decodes the file at path according to its extension,
// validates it against #Config and merges it into v.
func mergeFileIntoViper(fs afero.Fs, v *viper.Viper, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > MaxFileSize {
		return fmt.Errorf("file size %d bytes exceeds maximum %d bytes", len(data), MaxFileSize)
	}

	cctx := cuecontext.New()
	var userValue cue.Value
	switch ext := filepath.Ext(path); ext {
	case ".json", ".cue":
		// JSON is a subset of CUE.
		userValue = cctx.CompileBytes(data, cue.Filename(path))
	case ".toml":
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("invalid TOML: %w", err)
		}
		userValue = cctx.Encode(doc)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err())
	}

	configMap, err := validate(cctx, userValue)
	if err != nil {
		return err
	}
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// validate unifies a user value with #Config and decodes the result.
func validate(cctx *cue.Context, userValue cue.Value) (map[string]any, error) {
	schemaValue := cctx.CompileString(Schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}
	unified := schemaValue.LookupPath(cue.ParsePath("#Config")).Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}
	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return nil, formatCUEError(err)
	}
	return configMap, nil
}

// formatCUEError renders each CUE error as `<path>: <message>`.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := e.Error()
		if path := strings.Join(cueerrors.Path(e), "."); path != "" && !strings.HasPrefix(msg, path) {
			msg = path + ": " + msg
		}
		lines = append(lines, msg)
	}
	lines = slices.Compact(lines)
	if len(lines) == 1 {
		return errors.New(lines[0])
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func fileExists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && !info.IsDir()
}
