package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("predictions-api/internal/interfaces/httpapi")

// detachedSpan ends harmlessly, so helpers can defer span.End() without
// touching the request span.
var detachedSpan = trace.SpanFromContext(context.Background())

// startSpan opens a child span for handler-level work. Internal helpers
// (response writers, error mapping) and untraced routes such as /healthz fall
// through without a new span so they never start standalone roots.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, detachedSpan
	}
	if !strings.HasPrefix(name, "httpapi.Handler.") {
		return ctx, detachedSpan
	}
	return apiTracer.Start(ctx, name)
}
