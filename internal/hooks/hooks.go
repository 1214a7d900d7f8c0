// SPDX-License-Identifier: MPL-2.0

package hooks

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/repokit/repo/internal/bump"
	"github.com/repokit/repo/internal/config"
	"github.com/repokit/repo/internal/ecosystem"
	"github.com/repokit/repo/internal/issue"
	"github.com/repokit/repo/internal/process"
)

// PostVersionSchema describes the document a postVersion script reads from
// standard input.
//
//go:embed post_version_schema.cue
var PostVersionSchema string

type (
	// PostVersion is the payload sent to `scripts.postVersion`.
	PostVersion struct {
		Ecosystem       ecosystem.ID   `json:"ecosystem"`
		PreviousVersion string         `json:"previousVersion"`
		Version         string         `json:"version"`
		Magnitude       bump.Magnitude `json:"magnitude,omitempty"`
	}

	// Scripts resolves configured scripts by name.
	Scripts interface {
		Script(name string) (config.Script, bool)
	}

	// Runner starts configured scripts in a fixed directory.
	Runner struct {
		exec    process.Executor
		scripts Scripts
		dir     string
	}
)

// NewRunner creates a Runner. A nil scripts runs nothing.
func NewRunner(exec process.Executor, scripts Scripts, dir string) *Runner {
	return &Runner{exec: exec, scripts: scripts, dir: dir}
}

// PostVersion runs `scripts.postVersion` with p on standard input. It reports
// whether a script was configured.
func (r *Runner) PostVersion(ctx context.Context, p PostVersion) (bool, error) {
	if r.scripts == nil {
		return false, nil
	}
	script, ok := r.scripts.Script(config.PostVersionScript)
	if !ok {
		return false, nil
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return true, fmt.Errorf("failed to encode %s payload: %w", config.PostVersionScript, err)
	}
	inv := process.Command(script[0], script[1:]...).In(r.dir).WithStdin(bytes.NewReader(payload))
	slog.Debug("running script", "name", config.PostVersionScript, "command", inv.String())

	if err := process.StreamMustSucceed(ctx, r.exec, inv); err != nil {
		return true, issue.NewErrorContext().
			WithOperation("run the " + config.PostVersionScript + " script").
			WithResource(inv.String()).
			WithIssue(issue.ExternalToolFailedId).
			WithSuggestion("The version change has not been committed; fix the script and rerun it by hand").
			Wrap(err).
			BuildError()
	}
	return true, nil
}
