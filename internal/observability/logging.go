// Package observability provides structured logging for the application.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// requestIDKey is the context key carrying the request ID set by middleware.
type requestIDKey struct{}

// WithRequestID returns a new context carrying the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID retrieves the request ID from the context, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// LogAsyncError logs a failure in a fire-and-forget operation. These errors
// never propagate to the request path.
func LogAsyncError(ctx context.Context, operation string, err error) {
	GlobalLogger.ErrorContext(ctx, "async operation failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
		slog.String("request_id", RequestID(ctx)),
	)
}
