package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/patterns/internal/config"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TracingConfig{ServiceName: "test"}, "dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopShutdownIgnoresCancelledContext(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TracingConfig{}, "dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no actual export happens.
	for _, endpoint := range []string{"192.0.2.1:4318", "http://192.0.2.1:4318"} {
		ratio := 0.5
		cfg := config.TracingConfig{
			Endpoint:    endpoint,
			Insecure:    true,
			ServiceName: "test",
			SampleRatio: &ratio,
		}
		shutdown, err := Setup(context.Background(), cfg, "dev")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", endpoint, err)
		}
		if err := shutdown(context.Background()); err != nil {
			t.Fatalf("%s: shutdown error: %v", endpoint, err)
		}
	}
}

func TestSampler(t *testing.T) {
	if got := sampler(config.TracingConfig{}).Description(); got != "AlwaysOnSampler" {
		t.Errorf("default sampler = %q", got)
	}
	ratio := 0.25
	if got := sampler(config.TracingConfig{SampleRatio: &ratio}).Description(); !strings.Contains(got, "TraceIDRatioBased") {
		t.Errorf("ratio sampler = %q", got)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LogConfig{Level: "warn", Format: "json"})

	logger.Info("hidden")
	logger.Warn("shown", "id", "singleton")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"id":"singleton"`) {
		t.Errorf("expected JSON record, got %s", out)
	}

	buf.Reset()
	NewLogger(&buf, config.LogConfig{Level: "bogus"}).Debug("nope")
	if buf.Len() != 0 {
		t.Error("unknown level should fall back to info")
	}
}
