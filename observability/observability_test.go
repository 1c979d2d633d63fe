package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1, "ParentBased{root:AlwaysOnSampler"},
		{2, "ParentBased{root:AlwaysOnSampler"},
		{0, "ParentBased{root:AlwaysOffSampler"},
		{0.25, "ParentBased{root:TraceIDRatioBased{0.25}"},
	}
	for _, tc := range tests {
		got := samplerFor(tc.rate).Description()
		if !strings.HasPrefix(got, tc.want) {
			t.Errorf("samplerFor(%v) = %q, want prefix %q", tc.rate, got, tc.want)
		}
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.SampleRate != 1.0 || cfg.Interval != 15*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled config should validate, got %v", err)
	}

	cfg.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing service name")
	}
	cfg.ServiceName = "svc"
	cfg.SampleRate = 2
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sample rate above 1")
	}
}

func TestInitDisabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestNewMetricsNoop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"), "")
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordRequestStart(ctx)
	metrics.RecordRequestEnd(ctx, "svc", "GET /text", "200", 100*time.Millisecond)
	metrics.RecordOperation(ctx, "svc", "GET /text", "400", 50*time.Millisecond)
	metrics.RecordError(ctx, "decode", "openapi")
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestMetricsPrefixAndCounts(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"), "demo")
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordOperation(ctx, "demo-server", "GET /text", "200", time.Millisecond)
	metrics.RecordOperation(ctx, "demo-server", "GET /text", "200", time.Millisecond)

	data := collect(t, reader)
	sum, ok := data["demo.operation.total"].(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("demo.operation.total missing or wrong type: %T", data["demo.operation.total"])
	}
	if len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 2 {
		t.Errorf("unexpected data points %+v", sum.DataPoints)
	}
}

func TestOperationRecordsSpanAndMetrics(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())
	metrics, err := NewMetrics(mp.Meter("test"), "")
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	ctx, op := StartOperation(context.Background(), "demo-client", "GET /text", SpanAPICall, metrics,
		attribute.String(AttrRoute, "/text"))
	op.End(ctx, "ERR_NETWORK", errors.New("connection refused"))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != SpanAPICall {
		t.Errorf("span name = %q", spans[0].Name)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected the error to be recorded as a span event")
	}

	data := collect(t, reader)
	if _, ok := data["request.total"]; !ok {
		t.Error("request.total not recorded")
	}
	if _, ok := data["error.total"]; !ok {
		t.Error("error.total not recorded")
	}
}

func TestOperationNilMetrics(t *testing.T) {
	ctx, op := StartOperation(context.Background(), "svc", "GET /json", SpanAPICall, nil)
	if op.Span() == nil {
		t.Fatal("expected a span")
	}
	op.End(ctx, "200", nil)
	if op.Duration() <= 0 {
		t.Error("expected positive duration")
	}
}

type staticChecker Health

func (s staticChecker) CheckHealth(context.Context) Health { return Health(s) }

func TestCheckFoldsComponents(t *testing.T) {
	sh := Check(context.Background(), "demo-server", "1.0.0",
		staticChecker{Name: "scenario", Status: HealthStatusUp},
		staticChecker{Name: "exporter", Status: HealthStatusDegraded},
	)
	if sh.Status != HealthStatusDegraded {
		t.Errorf("expected degraded, got %s", sh.Status)
	}
	if len(sh.Components) != 2 {
		t.Errorf("expected 2 components, got %d", len(sh.Components))
	}
}

func TestCheckDownWins(t *testing.T) {
	sh := Check(context.Background(), "svc", "1.0.0",
		staticChecker{Name: "a", Status: HealthStatusDown},
		staticChecker{Name: "b", Status: HealthStatusDegraded},
	)
	if sh.Status != HealthStatusDown {
		t.Errorf("expected 'down' not overridden by 'degraded', got %s", sh.Status)
	}
}

func TestCheckWithoutCheckers(t *testing.T) {
	sh := Check(context.Background(), "svc", "1.0.0")
	if sh.Status != HealthStatusUp || len(sh.Components) != 0 {
		t.Errorf("unexpected health %+v", sh)
	}
}

func TestSetSpanError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartSpan(context.Background(), "failing")
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	got := exporter.GetSpans()[0]
	if got.Status.Code != codes.Error || got.Status.Description != "boom" {
		t.Errorf("unexpected status %+v", got.Status)
	}
	if len(got.Events) != 1 {
		t.Errorf("expected one error event, got %d", len(got.Events))
	}
}

func TestSetSpanErrorWithoutSpan(t *testing.T) {
	SetSpanError(context.Background(), errors.New("ignored"))
}
