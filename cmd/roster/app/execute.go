package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/roster/cmd/roster/cmd/lint"
	"github.com/agentstation/roster/cmd/roster/cmd/rescue"
	"github.com/agentstation/roster/pkg/logging"
)

// rootFlags holds the persistent flag values until setupCommand merges
// them into the configuration.
type rootFlags struct {
	configFile string
	verbose    bool
	quiet      bool
	noColor    bool
	format     string
	logLevel   string
}

// Execute runs the roster CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	if a.out != nil {
		rootCmd.SetOut(a.out)
	}
	if a.err != nil {
		rootCmd.SetErr(a.err)
	}
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "roster",
		Short:   "Agent registry reconciliation",
		Version: a.version,
		Long: `Roster keeps a declarative registry of agent definitions and the file tree
holding them in agreement.

lint validates and normalizes the registry and can move files to their
canonical locations. rescue finds files whose canonical location is empty
elsewhere in the tree and moves them back when the match is unique.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.PersistentFlags().StringVar(&a.flags.configFile, "config", "", "config file (default is $HOME/.roster.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.flags.format, "format", "o", "", "report format: text, table, json, yaml, markdown")
	rootCmd.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("roster {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if a.flags.configFile != "" {
		config, err := LoadConfig(a.flags.configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(a.flags.verbose, a.flags.quiet, a.flags.noColor, a.flags.format, a.flags.logLevel)
	if err := a.config.Validate(); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	ctx := logging.WithLogger(cmd.Context(), a.logger)
	ctx = logging.WithRunID(ctx, "")
	cmd.SetContext(ctx)

	logging.FromContext(ctx).Debug().
		Str("command", cmd.Name()).
		Str("config_file", a.config.ConfigFile).
		Msg("starting")
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(lint.NewCommand(a))
	rootCmd.AddCommand(rescue.NewCommand(a))
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
