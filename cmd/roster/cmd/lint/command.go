// Package lint implements the lint command.
package lint

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/roster/internal/cmd/application"
)

// NewCommand creates the lint command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "lint <registry>",
		GroupID: "core",
		Short:   "Validate and normalize a registry document",
		Args:    cobra.ExactArgs(1),
		Long: `Lint loads a registry document, resolves every record's category and
canonical path, removes duplicate identity keys and plans the file moves that
would bring the tree in line with the registry.

Without --fix only the report is printed. With --fix the original document is
copied to <registry>.bak and the normalized document is written back in the
format it was read in. With --apply-moves (requires --fix) the planned moves
are applied to the tree; an existing destination is never overwritten.`,
		Example: `  roster lint agents.yaml                          # Report only
  roster lint --fix agents.yaml                    # Back up and rewrite the registry
  roster lint --fix --apply-moves agents.yaml      # Also move files into place
  roster lint --fix --apply-moves --dry-run agents.yaml
  roster lint -o json agents.yaml                  # Machine-readable report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd.Context(), app, cmd.OutOrStdout(), args[0], flags)
		},
	}

	flags = addFlags(cmd)

	return cmd
}
