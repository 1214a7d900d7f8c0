// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/repokit/repo/internal/commitop"
	"github.com/repokit/repo/internal/ecosystem"
	"github.com/repokit/repo/internal/vcs"

	"github.com/spf13/cobra"
)

type (
	// commitFlags are shared by every command that mutates the repository.
	commitFlags struct {
		commit      bool
		commitUsing string
	}

	// ecosystemFlag restricts version detection to one ecosystem.
	ecosystemFlag struct {
		value string
	}
)

func (f *commitFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.commit, "commit", false, "commit the change once it succeeds")
	cmd.Flags().StringVar(&f.commitUsing, "commit-using", "", "VCS to commit with (git, jj, mercurial); detected when omitted")
	_ = cmd.RegisterFlagCompletionFunc("commit-using", cobra.FixedCompletions(kindNames(), cobra.ShellCompDirectiveNoFileComp))
}

func (f *commitFlags) options() (commitop.Options, error) {
	opts := commitop.Options{Commit: f.commit}
	if f.commitUsing != "" {
		kind, err := vcs.ParseKind(f.commitUsing)
		if err != nil {
			return commitop.Options{}, err
		}
		opts.Using = kind
	}
	return opts, nil
}

func (f *ecosystemFlag) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.value, "ecosystem", "", "only consider this ecosystem (javascript, rust)")
	ids := make([]string, 0, len(ecosystem.IDs()))
	for _, id := range ecosystem.IDs() {
		ids = append(ids, id.String())
	}
	_ = cmd.RegisterFlagCompletionFunc("ecosystem", cobra.FixedCompletions(ids, cobra.ShellCompDirectiveNoFileComp))
}

// id returns the selected ecosystem, or "" for any.
func (f *ecosystemFlag) id() (ecosystem.ID, error) {
	if f.value == "" {
		return "", nil
	}
	return ecosystem.ParseID(f.value)
}

func kindNames() []string {
	names := make([]string, 0, len(vcs.Kinds()))
	for _, k := range vcs.Kinds() {
		names = append(names, string(k))
	}
	return names
}
