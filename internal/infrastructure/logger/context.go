package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	syncRunKey   contextKey = "sync_run"
)

// SyncRun identifies one reconciliation pass in logs
type SyncRun struct {
	ID        string
	Direction string
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from context, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID adds request ID to context and returns enriched logger.
// The context keeps the base logger; L adds the request ID when reading it back.
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = contextWithRequestID(WithContext(ctx, logger), requestID)
	return ctx, logger.With(zap.String("request_id", requestID))
}

func contextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithSyncRun tags the context and logger with a reconciliation pass
func WithSyncRun(ctx context.Context, logger *zap.Logger, run SyncRun) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, syncRunKey, run)
	enriched := logger.With(
		zap.String("sync_run", run.ID),
		zap.String("direction", run.Direction),
	)
	return WithContext(ctx, enriched), enriched
}

// GetSyncRun retrieves the reconciliation pass from context
func GetSyncRun(ctx context.Context) (SyncRun, bool) {
	run, ok := ctx.Value(syncRunKey).(SyncRun)
	return run, ok
}

// WithTraceContext adds trace_id and span_id to the logger from the context's span.
// If no valid span exists, returns the original logger unchanged.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}

// L returns the context logger enriched with trace and request fields.
// Usage: logger.L(ctx).Info("message", zap.String("sku", sku))
func L(ctx context.Context) *zap.Logger {
	l := WithTraceContext(ctx, FromContext(ctx))
	if requestID := GetRequestID(ctx); requestID != "" {
		l = l.With(zap.String("request_id", requestID))
	}
	return l
}

// SKU returns a field naming the product being reconciled
func SKU(sku string) zap.Field {
	return zap.String("sku", sku)
}
