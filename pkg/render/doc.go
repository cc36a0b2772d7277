// Package render converts vdom trees into HTML.
//
// Text and attribute values are escaped, attributes are written in sorted
// order so output is deterministic, and void elements are never closed:
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// RenderPage wraps a body in a complete HTML5 document.
package render
