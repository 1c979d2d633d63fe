// Package observability wires OpenTelemetry tracing and metrics for the
// demo binaries and the typed client.
//
//	shutdown, err := observability.Init(ctx, cfg)
//	defer shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("demo-client"), "client")
//	ctx, op := observability.StartOperation(ctx, "demo-client", "GET /text", observability.SpanAPICall, metrics)
//	defer op.End(ctx, "200", nil)
//
// A disabled Config leaves the global no-op providers in place, so spans
// and instruments cost nothing until an exporter is configured.
package observability
