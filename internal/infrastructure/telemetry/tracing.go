package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer used for service-level spans
const TracerName = "foodapp-billing"

// StartServiceSpan starts an internal span named "<service>.<method>".
// The caller ends it, usually through EndSpan.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "create_direct")
//	defer func() { telemetry.EndSpan(span, err) }()
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(append(attrs,
			attribute.String("service.name", service),
			attribute.String("service.method", method),
		)...),
	)
}

// EndSpan marks the span failed when err is non-nil, otherwise OK, then ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// TraceID returns the hex trace id of the span in ctx, or "" when there is none
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
