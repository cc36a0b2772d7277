package views

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vango-dev/patterns/pkg/binding"
	"github.com/vango-dev/patterns/pkg/catalog"
	"github.com/vango-dev/patterns/pkg/vdom"
)

// Detail renders the page of the pattern with the given id.
func Detail(ctx context.Context, s *binding.Scope, env Env, id string) Page {
	pattern := UsePattern(ctx, s, env, id)
	all := UsePatterns(ctx, s, env)

	r := pattern.Read()
	switch {
	case r.IsPending():
		return Page{
			Title:   SiteName,
			Status:  http.StatusOK,
			Pending: true,
			Body:    Layout(loading("Loading pattern...")),
		}

	case r.IsErrored():
		if missing, ok := catalog.IsNotFound(r.Err); ok {
			return Page{
				Title:  "Pattern not found | " + SiteName,
				Status: http.StatusNotFound,
				// The suggestion fills in once the full list settles.
				Pending: all.Pending(),
				Body:    Layout(notFound(missing, all.Read().Value)),
			}
		}
		return Page{
			Title:  SiteName,
			Status: http.StatusInternalServerError,
			Body: Layout(vdom.Div(vdom.Class("stack"),
				backLink(),
				alert("Failed to load pattern", vdom.Text("An unexpected error occurred.")),
			)),
		}
	}

	p := r.Value
	siblings := catalog.Siblings(all.Read().Value, p)
	return Page{
		Title:   p.Name + " | " + SiteName,
		Status:  http.StatusOK,
		Pending: all.Pending(),
		Body: Layout(vdom.Div(vdom.Class("stack"),
			breadcrumb(p),
			vdom.Div(vdom.Class("detail"),
				vdom.Div(vdom.Class("detail-main"), vdom.Role("region"), vdom.AriaLabel("Pattern details"),
					summary(p),
					vdom.If(p.HasDiagram(), diagramBox(p)),
					demoPlaceholder(p),
				),
				vdom.Aside(vdom.Class("detail-side"), vdom.AriaLabel("Pattern metadata"),
					quickReference(p.Category),
					whenToUse(p.Category),
					vdom.If(len(siblings) > 0, related(p.Category, siblings)),
				),
			),
		)),
	}
}

func notFound(id string, all []catalog.Pattern) *vdom.VNode {
	var hint *vdom.VNode
	if s, ok := catalog.Suggest(all, id); ok {
		hint = vdom.P(vdom.Class("hint"),
			"Did you mean ",
			vdom.A(vdom.Href(PatternURL(s.ID)), s.Name),
			"?",
		)
	}
	return vdom.Div(vdom.Class("stack"),
		backLink(),
		vdom.Div(vdom.Class("alert"), vdom.Role("alert"),
			vdom.P(vdom.Class("alert-title"), "Pattern not found"),
			vdom.P(vdom.Class("muted"), fmt.Sprintf("No pattern matches %q", id)),
			hint,
		),
	)
}

func breadcrumb(p catalog.Pattern) *vdom.VNode {
	return vdom.Nav(vdom.Class("breadcrumb"), vdom.AriaLabel("Breadcrumb"),
		vdom.A(vdom.Href("/"), "Patterns"),
		vdom.Span(vdom.AriaHidden(true), "/"),
		vdom.Span(p.Category.String()),
		vdom.Span(vdom.AriaHidden(true), "/"),
		vdom.Strong(vdom.AriaCurrent("page"), p.Name),
	)
}

func summary(p catalog.Pattern) *vdom.VNode {
	return vdom.Div(vdom.Class("panel", "panel-"+p.Category.String()),
		vdom.Div(vdom.Class("category-tag"),
			vdom.Span(vdom.Class("dot", "dot-"+p.Category.String()), vdom.AriaHidden(true)),
			vdom.Span(vdom.Class("muted"), p.Category.Label()),
		),
		vdom.H1(p.Name),
		vdom.P(vdom.Class("muted"), p.Description),
	)
}

func diagramBox(p catalog.Pattern) *vdom.VNode {
	return vdom.Div(vdom.Class("panel"), vdom.Role("img"), vdom.AriaLabel(p.Name+" pattern diagram"),
		panelTitle("Diagram"),
		vdom.Div(vdom.Class("diagram"), vdom.Pre(p.Diagram)),
	)
}

func demoPlaceholder(p catalog.Pattern) *vdom.VNode {
	return vdom.Div(vdom.Class("demo"),
		vdom.P(vdom.Strong("Interactive demo coming soon")),
		vdom.P(vdom.Class("muted"),
			fmt.Sprintf("You'll be able to run, step through, and reset a live %s simulation here.", p.Name)),
	)
}

func quickReference(c catalog.Category) *vdom.VNode {
	row := func(term, def string) *vdom.VNode {
		return vdom.Div(vdom.Class("row"), vdom.Dt(term), vdom.Dd(def))
	}
	return vdom.Div(vdom.Class("panel", "panel-ref"),
		panelTitle("Quick Reference"),
		vdom.Dl(
			row("Type", c.String()),
			row("Intent", c.Intent()),
			row("Scope", c.Scope()),
		),
	)
}

func whenToUse(c catalog.Category) *vdom.VNode {
	return vdom.Div(vdom.Class("panel"),
		panelTitle("When to Use"),
		vdom.Ul(vdom.Range(c.WhenToUse(), func(_ int, item string) *vdom.VNode {
			return vdom.Li(vdom.Span(vdom.AriaHidden(true), "- "), item)
		})),
	)
}

func related(c catalog.Category, siblings []catalog.Pattern) *vdom.VNode {
	return vdom.Nav(vdom.Class("panel"), vdom.AriaLabel("Related patterns"),
		panelTitle("Also in "+c.Label()),
		vdom.Range(siblings, func(_ int, s catalog.Pattern) *vdom.VNode {
			return vdom.A(vdom.Href(PatternURL(s.ID)), vdom.Class("sibling"),
				vdom.Span(s.Name),
				vdom.Span(vdom.AriaHidden(true), ">"),
			)
		}),
	)
}

func panelTitle(text string) *vdom.VNode {
	return vdom.Div(vdom.Class("panel-title"), text)
}
