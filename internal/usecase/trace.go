package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("predictions-api/internal/usecase")

// startUsecaseSpan opens a child span only when the caller is already traced.
// Scheduler jobs and tests run the services without a sampled parent and must
// not emit orphan root spans.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if name == "" || !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name)
}
