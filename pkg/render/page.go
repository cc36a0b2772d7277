package render

import (
	"io"

	"github.com/vango-dev/patterns/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Title is the page title.
	Title string

	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Description is written as a meta description when set.
	Description string

	// Stylesheets are linked CSS URLs placed in the head.
	Stylesheets []string

	// Styles are inline CSS blocks placed in the head.
	Styles []string

	// ScriptURLs are deferred external scripts placed in the head.
	ScriptURLs []string

	// Scripts are inline scripts appended to the body.
	Scripts []string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string
}

// RenderPage writes a complete HTML5 document.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
		vdom.If(page.Description != "", vdom.Meta(vdom.Name("description"), vdom.Content(page.Description))),
		vdom.Title(page.Title),
		vdom.Range(page.Stylesheets, func(_ int, href string) *vdom.VNode {
			return vdom.Link(vdom.Rel("stylesheet"), vdom.Href(href))
		}),
		vdom.Range(page.Styles, func(_ int, css string) *vdom.VNode {
			return vdom.Style(vdom.Raw(css))
		}),
		vdom.Range(page.ScriptURLs, func(_ int, src string) *vdom.VNode {
			return vdom.Script(vdom.Src(src), vdom.Defer())
		}),
	)

	body := vdom.Body(
		page.Body,
		vdom.Range(page.Scripts, func(_ int, js string) *vdom.VNode {
			return vdom.Script(vdom.Raw(js))
		}),
	)

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return r.RenderToWriter(w, vdom.Html(vdom.Lang(lang), head, body))
}
