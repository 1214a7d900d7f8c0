// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/repokit/repo/internal/config"
	"github.com/repokit/repo/internal/hooks"

	"github.com/spf13/cobra"
)

// newPrintSchemaCommand creates the `repo print-schema` command tree.
func newPrintSchemaCommand(app *App) *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "print-schema",
		Short: "Print CUE schemas for the files and documents repo reads or writes",
	}

	schemas := []struct {
		use     string
		aliases []string
		short   string
		schema  string
	}{
		{"config", nil, "Schema of .config/repo.{json,cue,toml}", config.Schema},
		{"post-version", []string{"postVersion"}, "Schema of the JSON document scripts.postVersion reads from stdin", hooks.PostVersionSchema},
	}
	for _, s := range schemas {
		schemaCmd.AddCommand(&cobra.Command{
			Use:         s.use,
			Aliases:     s.aliases,
			Short:       s.short,
			Args:        cobra.NoArgs,
			Annotations: map[string]string{annotationStandalone: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := fmt.Fprint(app.stdout, s.schema)
				return err
			},
		})
	}
	return schemaCmd
}
