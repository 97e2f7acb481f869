package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/reconciler"
	"github.com/agentstation/roster/pkg/registry"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	LayoutFunc       func() registry.Layout
	SuffixFunc       func() string
	ReconcilerFunc   func(opts ...reconciler.Option) (reconciler.Reconciler, error)
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "text".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "text"
}

// Layout returns a layout using the mock function or the default layout.
func (m *Mock) Layout() registry.Layout {
	if m.LayoutFunc != nil {
		return m.LayoutFunc()
	}
	return registry.DefaultLayout()
}

// Suffix returns the suffix using the mock function or the default.
func (m *Mock) Suffix() string {
	if m.SuffixFunc != nil {
		return m.SuffixFunc()
	}
	return constants.Suffix
}

// Reconciler returns a reconciler using the mock function or one built from
// the mock layout.
func (m *Mock) Reconciler(opts ...reconciler.Option) (reconciler.Reconciler, error) {
	if m.ReconcilerFunc != nil {
		return m.ReconcilerFunc(opts...)
	}
	base := []reconciler.Option{reconciler.WithLayout(m.Layout()), reconciler.WithSuffix(m.Suffix())}
	return reconciler.New(append(base, opts...)...)
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
