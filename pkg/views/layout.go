package views

import (
	"net/http"
	"net/url"

	"github.com/vango-dev/patterns/pkg/vdom"
)

// SiteName is the product name used in titles.
const SiteName = "Interactive Patterns"

// RootID is the id of the element live sessions replace on refresh.
const RootID = "app"

// Page is a rendered view plus the metadata a surface needs.
type Page struct {
	Title string
	Body  *vdom.VNode

	// Status is the HTTP status matching the page state.
	Status int

	// Pending is true while the page shows a loading indicator.
	Pending bool
}

// Layout wraps content in the site shell.
func Layout(content *vdom.VNode) *vdom.VNode {
	return vdom.Div(vdom.ID(RootID), vdom.Class("shell"),
		vdom.A(vdom.Href("#main-content"), vdom.Class("skip-link"), "Skip to content"),
		vdom.Header(vdom.Role("banner"),
			vdom.A(vdom.Href("/"), vdom.Class("brand"), vdom.AriaLabel(SiteName+" home"),
				vdom.Span(vdom.Class("muted"), vdom.AriaHidden(true), ">"),
				vdom.Strong("interactive-patterns"),
				vdom.Span(vdom.Class("cursor"), vdom.AriaHidden(true), "_"),
			),
			vdom.Span(vdom.Class("muted", "tagline"), vdom.AriaHidden(true), "// design patterns, visualized"),
		),
		vdom.Main(vdom.ID("main-content"), vdom.Role("main"), content),
		vdom.Footer(vdom.Role("contentinfo"),
			vdom.Span("go + chi + websocket"),
			vdom.Span(vdom.AriaHidden(true), "+------+"),
		),
	)
}

// loading renders the pending indicator.
func loading(text string) *vdom.VNode {
	return vdom.Div(vdom.Class("loading"), vdom.Role("status"), vdom.AriaLive("polite"), vdom.AriaBusy(true),
		vdom.Span(vdom.Class("cursor"), vdom.AriaHidden(true), "_"),
		text,
	)
}

// alert renders an error box.
func alert(title string, detail ...*vdom.VNode) *vdom.VNode {
	return vdom.Div(vdom.Class("alert"), vdom.Role("alert"),
		vdom.P(vdom.Class("alert-title"), title),
		vdom.P(vdom.Class("muted"), detail),
	)
}

func backLink() *vdom.VNode {
	return vdom.A(vdom.Href("/"), vdom.Class("back"), "<-- back")
}

// Missing renders the page for a path nothing handles.
func Missing(path string) Page {
	return Page{
		Title:  "Not found | " + SiteName,
		Status: http.StatusNotFound,
		Body: Layout(vdom.Div(vdom.Class("stack"),
			backLink(),
			alert("Page not found", vdom.Textf("Nothing lives at %s.", path)),
		)),
	}
}

// PatternURL is the detail path for a pattern id.
func PatternURL(id string) string {
	return "/pattern/" + url.PathEscape(id)
}
