package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/patterns/pkg/loadable"
)

func newRouter(mw ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(mw...)
	r.Get("/pattern/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	return r
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	r := newRouter(m.Handler)

	serve(r, "/pattern/singleton")
	serve(r, "/pattern/observer")
	serve(r, "/pattern/missing")

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/pattern/{id}", "GET", "200")); got != 2 {
		t.Errorf("expected 2 ok requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/pattern/{id}", "GET", "404")); got != 1 {
		t.Errorf("expected 1 not found request, got %v", got)
	}
	if n := testutil.CollectAndCount(m.requestDuration); n != 1 {
		t.Errorf("expected one duration series, got %d", n)
	}
}

func TestMetricsObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	var obs loadable.Observer = m
	obs.Settled("pattern.get", loadable.Resolved, 10*time.Millisecond)
	obs.Settled("pattern.get", loadable.Errored, 5*time.Millisecond)
	obs.Settled("pattern.get", loadable.Errored, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.loadsTotal.WithLabelValues("pattern.get", "errored")); got != 2 {
		t.Errorf("expected 2 errored loads, got %v", got)
	}

	expected := `
# HELP test_loads_total Total number of settled loadables by status
# TYPE test_loads_total counter
test_loads_total{name="pattern.get",status="errored"} 2
test_loads_total{name="pattern.get",status="resolved"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_loads_total"); err != nil {
		t.Error(err)
	}
}

func TestMetricsSessions(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.FrameSent()
	m.WebSocketError("read")

	if got := testutil.ToFloat64(m.liveSessions); got != 1 {
		t.Errorf("expected 1 live session, got %v", got)
	}
	if got := testutil.ToFloat64(m.liveFrames); got != 1 {
		t.Errorf("expected 1 frame, got %v", got)
	}
	if got := testutil.ToFloat64(m.wsErrors.WithLabelValues("read")); got != 1 {
		t.Errorf("expected 1 read error, got %v", got)
	}
}

func TestOpenTelemetry(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	var sawSpan bool
	r := chi.NewRouter()
	r.Use(OpenTelemetry(WithTracerProvider(tp)))
	r.Get("/pattern/{id}", func(w http.ResponseWriter, r *http.Request) {
		sawSpan = trace.SpanFromContext(r.Context()).SpanContext().IsValid()
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	serve(r, "/pattern/singleton")
	serve(r, "/boom")

	if !sawSpan {
		t.Error("handler should see the request span")
	}

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != "GET /pattern/{id}" {
		t.Errorf("unexpected span name %q", spans[0].Name())
	}
	if spans[0].SpanKind() != trace.SpanKindServer {
		t.Errorf("expected server span, got %v", spans[0].SpanKind())
	}

	var route string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == attribute.Key("http.route") {
			route = kv.Value.AsString()
		}
	}
	if route != "/pattern/{id}" {
		t.Errorf("expected route attribute, got %q", route)
	}
	if spans[1].Status().Code.String() != "Error" {
		t.Errorf("5xx should mark the span as error, got %v", spans[1].Status().Code)
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	r := newRouter(OpenTelemetry(
		WithTracerProvider(tp),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/boom" }),
	))
	serve(r, "/boom")

	if n := len(sr.Ended()); n != 0 {
		t.Errorf("filtered request should not be traced, got %d spans", n)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r := newRouter(Logger(logger))

	serve(r, "/pattern/singleton")
	serve(r, "/boom")

	out := buf.String()
	if !strings.Contains(out, "route=/pattern/{id}") || !strings.Contains(out, "status=200") {
		t.Errorf("expected request line, got %s", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "status=500") {
		t.Errorf("expected warn line for 5xx, got %s", out)
	}
}
