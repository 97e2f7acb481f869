package rescue

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/roster/internal/cmd/cmdutil"
)

// Flags holds the rescue command flags.
type Flags struct {
	*cmdutil.TreeFlags
	Suffix string
}

func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{TreeFlags: cmdutil.AddTreeFlags(cmd)}

	cmd.Flags().StringVar(&flags.Suffix, "suffix", "",
		"Only index files ending in this suffix (default from config, .md)")

	return flags
}
