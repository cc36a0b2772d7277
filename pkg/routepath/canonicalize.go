// Package routepath normalizes page paths before they are routed.
//
// The server serves each page under exactly one canonical path. Both the
// HTTP handlers and the live endpoint, which receives the page path as a
// query value, run it through Canonicalize first.
package routepath

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// Canonicalization errors.
var (
	ErrBackslash     = errors.New("path contains backslash")
	ErrNullByte      = errors.New("path contains null byte")
	ErrPercentEscape = errors.New("invalid percent escape sequence")
	ErrEscapesRoot   = errors.New("path escapes root via ..")
	ErrEncodedSlash  = errors.New("encoded slash in path segment")
	ErrAbsoluteURL   = errors.New("path is an absolute URL")
)

// Canonicalize normalizes a path without its query:
//   - a leading slash is added
//   - repeated slashes collapse (/pattern//x is /pattern/x)
//   - "." segments are dropped and ".." segments resolved
//   - the trailing slash is removed, except for "/"
//
// Backslashes, NUL bytes, malformed percent escapes and ".." above the
// root are rejected. The boolean reports whether the path changed.
func Canonicalize(path string) (string, bool, error) {
	if path == "" {
		return "/", true, nil
	}
	if strings.Contains(path, "\\") {
		return "", false, ErrBackslash
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", false, ErrNullByte
	}
	if strings.Contains(path, "%") {
		if err := validEscapes(path); err != nil {
			return "", false, err
		}
	}

	var out []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return "", false, ErrEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}

	canonical := "/" + strings.Join(out, "/")
	return canonical, canonical != path, nil
}

// Validate canonicalizes a client supplied page path, which must be
// relative to this site.
func Validate(path string) (string, error) {
	if strings.HasPrefix(path, "//") || strings.Contains(path, "://") {
		return "", ErrAbsoluteURL
	}
	canonical, _, err := Canonicalize(path)
	return canonical, err
}

// Segments splits a canonical path and decodes each segment. A segment
// that decodes to a slash is rejected.
func Segments(path string) ([]string, error) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil, nil
	}

	raw := strings.Split(path, "/")
	out := make([]string, 0, len(raw))
	for _, seg := range raw {
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			return nil, ErrPercentEscape
		}
		if strings.Contains(decoded, "/") {
			return nil, ErrEncodedSlash
		}
		out = append(out, decoded)
	}
	return out, nil
}

// Redirect sends GET and HEAD requests for non-canonical paths to their
// canonical form with 308 Permanent Redirect, keeping the query. Paths
// that cannot be canonicalized get 400.
func Redirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		raw := r.URL.EscapedPath()
		canonical, changed, err := Canonicalize(raw)
		if err != nil {
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}
		if !changed {
			next.ServeHTTP(w, r)
			return
		}

		target := canonical
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
	})
}

func validEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHex(path[i+1]) || !isHex(path[i+2]) {
			return ErrPercentEscape
		}
		i += 2
	}
	return nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
