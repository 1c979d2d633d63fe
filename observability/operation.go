package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation tracks one traced and measured unit of work.
type Operation struct {
	ServiceName   string
	OperationName string
	StartTime     time.Time
	Metrics       *Metrics

	span trace.Span
}

// StartOperation starts a span named spanName and records the request
// start metric. A nil metrics skips metric recording.
func StartOperation(ctx context.Context, serviceName, operationName, spanName string, metrics *Metrics, attrs ...attribute.KeyValue) (context.Context, *Operation) {
	ctx, span := StartSpan(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String(AttrServiceName, serviceName),
		attribute.String(AttrOperationName, operationName),
	)
	span.SetAttributes(attrs...)

	op := &Operation{
		ServiceName:   serviceName,
		OperationName: operationName,
		StartTime:     time.Now(),
		Metrics:       metrics,
		span:          span,
	}
	if metrics != nil {
		metrics.RecordRequestStart(ctx)
	}
	return ctx, op
}

// Span returns the operation's span.
func (op *Operation) Span() trace.Span { return op.span }

// End finishes the span and records the request end metric with status.
func (op *Operation) End(ctx context.Context, status string, err error, attrs ...attribute.KeyValue) {
	duration := time.Since(op.StartTime)

	if err != nil {
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
	}
	op.span.SetAttributes(attrs...)
	op.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	op.span.End()

	if op.Metrics != nil {
		op.Metrics.RecordRequestEnd(ctx, op.ServiceName, op.OperationName, status, duration)
		if err != nil {
			op.Metrics.RecordError(ctx, "call", op.ServiceName)
		}
	}
}

// Duration returns the elapsed time since the operation started.
func (op *Operation) Duration() time.Duration {
	return time.Since(op.StartTime)
}
