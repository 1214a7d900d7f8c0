// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/repokit/repo/internal/issue"
	"github.com/repokit/repo/internal/process"

	"github.com/spf13/afero"
)

const repoDir = "/work/repo"

func writeConfig(t *testing.T, fs afero.Fs, name, body string) string {
	t.Helper()
	path := filepath.Join(repoDir, ConfigDirName, name)
	if err := afero.WriteFile(fs, path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadFrom(t *testing.T, fs afero.Fs) (*Config, error) {
	t.Helper()
	return NewProvider(fs).Load(context.Background(), LoadOptions{Dir: repoDir})
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadFrom(t, afero.NewMemMapFs())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if len(cfg.Scripts) != 0 {
		t.Errorf("Scripts = %v, want none", cfg.Scripts)
	}
	if _, ok := cfg.Script(PostVersionScript); ok {
		t.Error("Script(postVersion) found in default config")
	}
}

func TestLoadFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		body string
		want Script
	}{
		{
			name: "json argv",
			file: "repo.json",
			body: `{"$schema": "./schema.json", "scripts": {"postVersion": ["bun", "run", "script/postVersion.ts"]}}`,
			want: Script{"bun", "run", "script/postVersion.ts"},
		},
		{
			name: "cue shell string",
			file: "repo.cue",
			body: `scripts: postVersion: "make 'release notes' VERSION=next"`,
			want: Script{"make", "release notes", "VERSION=next"},
		},
		{
			name: "toml argv",
			file: "repo.toml",
			body: "[scripts]\npostVersion = [\"./scripts/post-version.sh\", \"--quiet\"]\n",
			want: Script{"./scripts/post-version.sh", "--quiet"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			path := writeConfig(t, fs, tt.file, tt.body)

			cfg, err := loadFrom(t, fs)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if cfg.Source != path {
				t.Errorf("Source = %q, want %q", cfg.Source, path)
			}
			got, ok := cfg.Script(PostVersionScript)
			if !ok || !slices.Equal(got, tt.want) {
				t.Errorf("Script(postVersion) = %q, %v; want %q", got, ok, tt.want)
			}
		})
	}
}

func TestJSONTakesPrecedence(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	jsonPath := writeConfig(t, fs, "repo.json", `{"scripts": {"postVersion": ["from-json"]}}`)
	writeConfig(t, fs, "repo.toml", "[scripts]\npostVersion = [\"from-toml\"]\n")

	cfg, err := loadFrom(t, fs)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source != jsonPath {
		t.Errorf("Source = %q, want the JSON file", cfg.Source)
	}
	if s, _ := cfg.Script("postversion"); s[0] != "from-json" {
		t.Errorf("Script() = %q", s)
	}
}

func TestSchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		body string
	}{
		{"script is a number", "repo.json", `{"scripts": {"postVersion": 3}}`},
		{"empty argv", "repo.json", `{"scripts": {"postVersion": []}}`},
		{"unknown field", "repo.cue", `colour: "red"`},
		{"debug is not a bool", "repo.toml", "[debug]\nprint_shell_commands = \"yes\"\n"},
		{"malformed json", "repo.json", `{"scripts": `},
		{"malformed toml", "repo.toml", "scripts = [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			writeConfig(t, fs, tt.file, tt.body)

			_, err := loadFrom(t, fs)
			if err == nil {
				t.Fatal("Load() succeeded")
			}
			if is, ok := issue.IssueOf(err); !ok || is.Id() != issue.ConfigLoadFailedId {
				t.Errorf("Load() error lacks the config issue: %v", err)
			}
		})
	}
}

func TestExplicitConfigFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := writeConfig(t, fs, "custom.toml", "[debug]\nprint_shell_commands = true\n")
	cfg, err := NewProvider(fs).Load(context.Background(), LoadOptions{ConfigFilePath: "/work/repo/.config/custom.toml"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source != path || !cfg.Debug.PrintShellCommands {
		t.Errorf("Load() = %+v", cfg)
	}

	_, err = NewProvider(fs).Load(context.Background(), LoadOptions{ConfigFilePath: "/missing.json"})
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestDebugEnvironmentVariable(t *testing.T) {
	t.Setenv(process.DebugEnvVar, "true")

	cfg, err := loadFrom(t, afero.NewMemMapFs())
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug.PrintShellCommands {
		t.Errorf("%s=true did not enable shell command printing", process.DebugEnvVar)
	}
}

func TestDebugEnvironmentVariableOnlyAcceptsTrue(t *testing.T) {
	t.Setenv(process.DebugEnvVar, "1")

	cfg, err := loadFrom(t, afero.NewMemMapFs())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Debug.PrintShellCommands {
		t.Error("only the literal `true` enables shell command printing")
	}
}

func TestLoadCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider(afero.NewMemMapFs()).Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoadOptionsValidate(t *testing.T) {
	t.Parallel()

	if err := (LoadOptions{}).Validate(); err != nil {
		t.Errorf("empty LoadOptions should be valid: %v", err)
	}
	err := LoadOptions{ConfigFilePath: "   ", Dir: "\t"}.Validate()
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Fatalf("Validate() error = %v", err)
	}
	var loadErr *InvalidLoadOptionsError
	if !errors.As(err, &loadErr) || len(loadErr.FieldErrors) != 2 {
		t.Errorf("expected 2 field errors, got %v", err)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	want := []string{
		filepath.Join("d", ".config", "repo.json"),
		filepath.Join("d", ".config", "repo.cue"),
		filepath.Join("d", ".config", "repo.toml"),
	}
	if got := SearchPaths("d"); !slices.Equal(got, want) {
		t.Errorf("SearchPaths() = %v", got)
	}
}
