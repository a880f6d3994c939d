// Package logctx carries a zerolog logger through context.Context so that
// fields added for a benchmark session (run_id) or a single run (algorithm,
// dataset) reach every log line below it.
//
//	ctx, runID := logctx.WithRun(ctx)
//	ctx = logctx.WithStr(ctx, "algorithm", "merge")
//	log := logctx.FromContext(ctx)
//	log.Info().Msg("sorted")
package logctx

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eunmann/algobench/pkg/logging"
)

// loggerKey is the private key type for storing loggers in context.
type loggerKey struct{}

// runIDKey is the private key type for the session run ID.
type runIDKey struct{}

// WithLogger returns a new context with the given logger attached.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext extracts the logger from the context. Without one it returns
// the process-wide logger from pkg/logging.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
			return logger
		}
	}
	return *logging.L()
}

// WithStr returns a new context whose logger has the string field added.
func WithStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, logger)
}

// WithInt returns a new context whose logger has the int field added.
func WithInt(ctx context.Context, key string, value int) context.Context {
	logger := FromContext(ctx).With().Int(key, value).Logger()
	return WithLogger(ctx, logger)
}

// WithRun tags the context with a fresh time-ordered run ID. The ID is added
// to the logger as run_id and can be read back with RunID.
func WithRun(ctx context.Context) (context.Context, string) {
	id := uuid.Must(uuid.NewV7()).String()
	ctx = WithStr(ctx, "run_id", id)
	return context.WithValue(ctx, runIDKey{}, id), id
}

// RunID returns the run ID set by WithRun, or "".
func RunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
