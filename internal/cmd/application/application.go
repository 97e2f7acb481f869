// Package application provides the application interface for roster commands.
//
// Commands accept an Application rather than the concrete App type so they
// can be tested with a Mock:
//
//	mock := &application.Mock{
//	    OutputFormatFunc: func() string { return "json" },
//	}
//	cmd := lint.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/roster/pkg/reconciler"
	"github.com/agentstation/roster/pkg/registry"
)

// Application provides what commands need from the application layer.
type Application interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured report format (text, table, json, yaml).
	OutputFormat() string

	// Layout returns the configured directory policy.
	Layout() registry.Layout

	// Suffix returns the configured rescue index suffix.
	Suffix() string

	// Reconciler returns a reconciler built from the configuration. Options
	// are applied after the configured ones.
	Reconciler(opts ...reconciler.Option) (reconciler.Reconciler, error)

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
