package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Denwa799/openapi-example"

// Span names.
const (
	SpanHTTPRequest = "http.request"
	SpanAPICall     = "openapi.call"
)

// Attribute keys shared by spans.
const (
	AttrServiceName   = "service.name"
	AttrOperationName = "operation.name"
	AttrRoute         = "openapi.route"
	AttrValidStatus   = "openapi.valid_status"
	AttrStatusCode    = "http.response.status_code"
	AttrTransportCode = "openapi.transport_code"
	AttrDurationMs    = "duration_ms"
	AttrStatus        = "status"
)

// StartSpan starts a span on the global tracer provider.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, opts...)
}

// SetSpanError marks the span in ctx as failed.
func SetSpanError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
