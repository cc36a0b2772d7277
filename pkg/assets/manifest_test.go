package assets

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint("live.js", []byte("one"))
	b := Fingerprint("live.js", []byte("two"))

	if !strings.HasPrefix(a, "live.") || !strings.HasSuffix(a, ".js") {
		t.Errorf("unexpected name %q", a)
	}
	if len(a) != len("live..js")+8 {
		t.Errorf("expected an 8 character hash in %q", a)
	}
	if a == b {
		t.Error("different content should give different names")
	}
	if a != Fingerprint("live.js", []byte("one")) {
		t.Error("fingerprint should be stable")
	}
}

func TestManifestResolve(t *testing.T) {
	m := NewManifest("/assets")
	url := m.Add("style.css", []byte("body{}"))

	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"found entry", "style.css", url},
		{"missing entry keeps the name", "unknown.js", "/assets/unknown.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Asset(tt.source); got != tt.expected {
				t.Errorf("Asset(%q) = %q, want %q", tt.source, got, tt.expected)
			}
		})
	}

	if !strings.HasPrefix(url, "/assets/style.") {
		t.Errorf("unexpected url %q", url)
	}
	if !m.Has("style.css") || m.Has("unknown.js") {
		t.Error("Has mismatch")
	}
}

func TestManifestReplace(t *testing.T) {
	m := NewManifest("/a/")
	first := m.Add("x.js", []byte("1"))
	second := m.Add("x.js", []byte("2"))

	if first == second {
		t.Fatal("new content should give a new url")
	}
	if m.Len() != 1 || len(m.All()) != 1 {
		t.Errorf("expected one entry, got %v", m.All())
	}

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, first, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("stale name should be gone, got %d", rec.Code)
	}
}

func TestServeHTTP(t *testing.T) {
	m := NewManifest("/assets/")
	url := m.Add("live.js", []byte("console.log(1)"))

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "console.log(1)" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Content-Type"), "javascript") {
		t.Errorf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Header().Get("Cache-Control"), "immutable") {
		t.Error("fingerprinted assets should be immutable")
	}

	etag := rec.Header().Get("ETag")
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	m.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Errorf("expected 304 for a matching ETag, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/live.js", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unhashed names are not served, got %d", rec.Code)
	}
}
