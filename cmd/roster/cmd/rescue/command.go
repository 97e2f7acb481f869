// Package rescue implements the rescue command.
package rescue

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/roster/internal/cmd/application"
)

// NewCommand creates the rescue command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "rescue <registry>",
		GroupID: "core",
		Short:   "Relocate missing files found elsewhere in the tree",
		Args:    cobra.ExactArgs(1),
		Long: `Rescue looks for every record whose canonical file is missing and searches
the whole tree for a file with the same basename (case-insensitive).

A file is moved only when exactly one candidate exists. Several candidates are
reported as ambiguous with every path listed, and no candidate is reported as
missing. The registry document is never modified.`,
		Example: `  roster rescue agents.yaml
  roster rescue --dry-run agents.yaml
  roster rescue --root ./agents --suffix .md agents.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The configured suffix is only known once the root command has
			// loaded --config, so it is resolved here rather than as a default.
			if !cmd.Flags().Changed("suffix") {
				flags.Suffix = app.Suffix()
			}
			return Execute(cmd.Context(), app, cmd.OutOrStdout(), args[0], flags)
		},
	}

	flags = addFlags(cmd)

	return cmd
}
