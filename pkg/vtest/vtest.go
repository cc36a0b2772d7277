package vtest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/patterns/pkg/binding"
	"github.com/vango-dev/patterns/pkg/render"
	"github.com/vango-dev/patterns/pkg/vdom"
)

// SettleTimeout bounds each wait inside Settle.
var SettleTimeout = time.Second

// maxPasses bounds the render passes inside Settle.
const maxPasses = 5

// Scope returns a scope without a refresh callback, disposed when the
// test ends.
func Scope(t testing.TB) *binding.Scope {
	t.Helper()
	s := binding.NewScope(nil)
	t.Cleanup(s.Dispose)
	return s
}

// Settle renders until render reports it is no longer pending. Each pass
// starts with s.Begin.
func Settle(t testing.TB, s *binding.Scope, render func() (pending bool)) {
	t.Helper()
	for i := 0; i < maxPasses; i++ {
		s.Begin()
		if !render() {
			return
		}
		Wait(t, s)
	}
	t.Fatalf("still pending after %d render passes", maxPasses)
}

// Wait blocks until every loadable bound to s has settled.
func Wait(t testing.TB, s *binding.Scope) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), SettleTimeout)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("scope did not settle: %v", err)
	}
}

// RenderToString renders a VNode and returns the HTML string. Render
// failures fail the test.
func RenderToString(t testing.TB, node *vdom.VNode) string {
	t.Helper()
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(t, node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(t, node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(t, node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(t, node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
