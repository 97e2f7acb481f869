package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			_, err := fmt.Fprintf(w, "roster version %s\ncommit: %s\nbuilt: %s\nbuilt by: %s\ngo version: %s\nplatform: %s/%s\n",
				a.version, a.commit, a.date, a.builtBy, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}

