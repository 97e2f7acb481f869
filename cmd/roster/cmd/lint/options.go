package lint

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/roster/internal/cmd/cmdutil"
	"github.com/agentstation/roster/pkg/errors"
)

// Flags holds the lint command flags.
type Flags struct {
	*cmdutil.TreeFlags
	Fix        bool
	ApplyMoves bool
}

func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{TreeFlags: cmdutil.AddTreeFlags(cmd)}

	cmd.Flags().BoolVar(&flags.Fix, "fix", false,
		"Back up the registry and write the normalized document")
	cmd.Flags().BoolVar(&flags.ApplyMoves, "apply-moves", false,
		"Apply the planned file moves (requires --fix)")

	return flags
}

// Validate checks flag combinations.
func (f *Flags) Validate() error {
	if f.ApplyMoves && !f.Fix {
		return errors.NewValidationError("apply-moves", true, "requires --fix")
	}
	return nil
}
