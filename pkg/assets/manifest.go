// Package assets serves fingerprinted static assets from memory.
//
// Each asset is registered under its source name and published under a
// content-hashed name, so the URL changes whenever the content does:
//
//	m := assets.NewManifest("/assets/")
//	m.Add("style.css", css)
//	m.Asset("style.css") // "/assets/style.3f9a61c2.css"
//
// The Manifest is also the http.Handler for its prefix. Fingerprinted
// responses are immutable and carry a strong ETag.
package assets

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"
)

// Resolver maps a source asset name to its URL path.
type Resolver interface {
	Asset(source string) string
}

type asset struct {
	name string
	etag string
	data []byte
}

// Manifest holds the registered assets. It is safe for concurrent use.
type Manifest struct {
	prefix string

	mu       sync.RWMutex
	bySource map[string]*asset
	byName   map[string]*asset
}

// NewManifest creates an empty manifest serving under prefix.
func NewManifest(prefix string) *Manifest {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Manifest{
		prefix:   prefix,
		bySource: make(map[string]*asset),
		byName:   make(map[string]*asset),
	}
}

// Fingerprint returns the content-hashed file name for source:
// "live.js" becomes "live.<8 hex>.js".
func Fingerprint(source string, data []byte) string {
	ext := path.Ext(source)
	return strings.TrimSuffix(source, ext) + "." + digest(data) + ext
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:4])
}

// Add registers data under source, replacing any previous version, and
// returns its URL path.
func (m *Manifest) Add(source string, data []byte) string {
	name := Fingerprint(source, data)
	a := &asset{
		name: name,
		etag: `"` + digest(data) + `"`,
		data: bytes.Clone(data),
	}

	m.mu.Lock()
	if old, ok := m.bySource[source]; ok {
		delete(m.byName, old.name)
	}
	m.bySource[source] = a
	m.byName[name] = a
	m.mu.Unlock()

	return m.prefix + name
}

// Asset returns the URL path for source. Unknown sources resolve to the
// unhashed path under the prefix.
func (m *Manifest) Asset(source string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if a, ok := m.bySource[source]; ok {
		return m.prefix + a.name
	}
	return m.prefix + source
}

// Has reports whether source is registered.
func (m *Manifest) Has(source string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.bySource[source]
	return ok
}

// Len returns the number of registered assets.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.bySource)
}

// All returns a copy of the source to fingerprinted name mapping.
func (m *Manifest) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.bySource))
	for source, a := range m.bySource {
		result[source] = a.name
	}
	return result
}

// ServeHTTP serves a fingerprinted asset by the last element of the
// request path.
func (m *Manifest) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	a, ok := m.byName[path.Base(r.URL.Path)]
	m.mu.RUnlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("ETag", a.etag)
	http.ServeContent(w, r, a.name, time.Time{}, bytes.NewReader(a.data))
}
