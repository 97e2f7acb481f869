// Package logging provides structured logging for roster using zerolog.
//
// Library packages pull their logger from the context so a run id and the
// registry path travel with every event:
//
//	ctx = logging.WithRunID(ctx, "")
//	ctx = logging.WithRegistry(ctx, "agents.yaml")
//	logging.FromContext(ctx).Debug().Str("key", "api-designer").Msg("planned move")
//
// User-facing diagnostics belong in the report, not here.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agentstation/roster/pkg/constants"
)

// defaultLogger is used until the CLI installs one built from its config.
var defaultLogger = NewLoggerFromConfig(envConfig())

// envConfig reads ROSTER_LOG_LEVEL and ROSTER_LOG_FORMAT so library callers
// get sensible logs without the CLI. DEBUG=1 lowers the level to debug.
func envConfig() *Config {
	cfg := DefaultConfig()
	if level := os.Getenv(constants.EnvPrefix + "_LOG_LEVEL"); level != "" {
		cfg.Level = level
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if format := os.Getenv(constants.EnvPrefix + "_LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	return cfg
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a new logger with the given writer.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
