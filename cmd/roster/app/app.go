// Package app provides the application context and dependency management
// for the roster CLI. It centralizes configuration, logging and the
// reconciler construction that commands depend on.
package app

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/roster/internal/cmd/application"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/reconciler"
	"github.com/agentstation/roster/pkg/registry"
)

// App represents the roster application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config
	flags  rootFlags

	// Logger
	logger *zerolog.Logger

	// Output streams, defaulting to the process streams
	out io.Writer
	err io.Writer
}

// New creates a new App instance with the given version information.
// The app is initialized with the loaded configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured report format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Layout returns the configured directory policy.
func (a *App) Layout() registry.Layout {
	return a.config.Layout()
}

// Suffix returns the configured rescue index suffix.
func (a *App) Suffix() string {
	return a.config.Suffix
}

// Reconciler builds a reconciler from the configuration; opts are applied
// last.
func (a *App) Reconciler(opts ...reconciler.Option) (reconciler.Reconciler, error) {
	base := []reconciler.Option{
		reconciler.WithLayout(a.Layout()),
		reconciler.WithDescriptionLimit(a.config.DescriptionLimit),
		reconciler.WithSuffix(a.config.Suffix),
	}
	r, err := reconciler.New(append(base, opts...)...)
	if err != nil {
		return nil, errors.NewConfigError("reconciler", err.Error(), err)
	}
	return r, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "cannot be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithOutput redirects command output and error streams.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) error {
		a.out = out
		a.err = errOut
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
