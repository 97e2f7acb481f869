// Package cmdutil provides flags and helpers shared by roster commands.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// TreeFlags holds the flags of commands that touch the file tree.
type TreeFlags struct {
	Root   string
	DryRun bool
}

// AddTreeFlags adds --root and --dry-run to a command.
func AddTreeFlags(cmd *cobra.Command) *TreeFlags {
	flags := &TreeFlags{}

	cmd.Flags().StringVar(&flags.Root, "root", "",
		"Root of the file tree (default is the registry's directory)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Report what would change without writing anything")

	return flags
}
