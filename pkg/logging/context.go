package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey int

const (
	loggerKey contextKey = iota
	runIDKey
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithRunID tags the context logger with a run id. An empty id is replaced
// with a fresh UUID.
func WithRunID(ctx context.Context, runID string) context.Context {
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = context.WithValue(ctx, runIDKey, runID)
	return WithField(ctx, "run_id", runID)
}

// RunID extracts the run id from context.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithField adds a single field to the logger in the context.
func WithField(ctx context.Context, key string, value any) context.Context {
	logCtx := FromContext(ctx).With()
	switch v := value.(type) {
	case string:
		logCtx = logCtx.Str(key, v)
	case int:
		logCtx = logCtx.Int(key, v)
	case bool:
		logCtx = logCtx.Bool(key, v)
	case error:
		if key == "error" || key == "err" {
			logCtx = logCtx.Err(v)
		} else {
			logCtx = logCtx.Str(key, v.Error())
		}
	default:
		logCtx = logCtx.Interface(key, v)
	}
	logger := logCtx.Logger()
	return WithLogger(ctx, &logger)
}

// WithRegistry adds the registry document path to the logger.
func WithRegistry(ctx context.Context, path string) context.Context {
	return WithField(ctx, "registry", path)
}

// WithOperation adds operation context to the logger.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}
