// Package middleware provides the HTTP observability stack of the catalog
// server.
//
// This package includes:
//   - Prometheus collectors for requests, loadables and live sessions
//   - OpenTelemetry request tracing
//   - Structured request logging with slog
//
// # Prometheus
//
// Metrics are registered on a configurable registry, so tests and
// embedders can keep them isolated:
//
//	reg := prometheus.NewRegistry()
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(m.Handler)
//
// Metrics also implements loadable.Observer; pass it in views.Env to count
// settled loads by status.
//
// # OpenTelemetry
//
// OpenTelemetry wraps each request in a server span named after the chi
// route pattern. Handlers reach the span with trace.SpanFromContext.
//
//	r.Use(middleware.OpenTelemetry())
package middleware
