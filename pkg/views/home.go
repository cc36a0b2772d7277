package views

import (
	"context"
	"net/http"

	"github.com/vango-dev/patterns/pkg/binding"
	"github.com/vango-dev/patterns/pkg/catalog"
	"github.com/vango-dev/patterns/pkg/loadable"
	"github.com/vango-dev/patterns/pkg/vdom"
)

// Home renders every pattern grouped by category.
func Home(ctx context.Context, s *binding.Scope, env Env) Page {
	groups := UseGroups(ctx, s, env)
	r := groups.Read()

	page := Page{Title: SiteName, Status: http.StatusOK, Pending: r.IsPending()}
	if r.IsErrored() {
		page.Status = http.StatusInternalServerError
	}

	page.Body = Layout(vdom.Div(vdom.Class("stack-lg"),
		hero(),
		loadable.MatchResult(r,
			loadable.OnPending[catalog.Groups](func() *vdom.VNode {
				return loading("Loading patterns...")
			}),
			loadable.OnErrored[catalog.Groups](func(error) *vdom.VNode {
				return alert("Failed to load patterns", vdom.Text("An unexpected error occurred."))
			}),
			loadable.OnResolved(func(g catalog.Groups) *vdom.VNode {
				return vdom.Fragment(vdom.Range(g, categorySection))
			}),
		),
	))
	return page
}

func hero() *vdom.VNode {
	return vdom.Section(vdom.Class("hero"), vdom.AriaLabelledBy("hero-title"),
		vdom.H1(vdom.ID("hero-title"), SiteName),
		vdom.P(vdom.Class("muted"),
			"Design patterns you can see and play with. Pick one, poke around, break things."),
	)
}

func categorySection(_ int, g catalog.Group) *vdom.VNode {
	headingID := "cat-" + g.Category.String()
	return vdom.Section(vdom.Class("category"), vdom.Data("category", g.Category.String()), vdom.AriaLabelledBy(headingID),
		vdom.Div(vdom.Class("category-head"),
			vdom.Span(vdom.Class("dot", "dot-"+g.Category.String()), vdom.AriaHidden(true)),
			vdom.H2(vdom.ID(headingID), g.Category.Label()),
			vdom.Div(vdom.Class("rule"), vdom.AriaHidden(true)),
		),
		vdom.Div(vdom.Class("grid"), vdom.Role("list"),
			vdom.Range(g.Patterns, patternCard),
		),
	)
}

func patternCard(_ int, p catalog.Pattern) *vdom.VNode {
	return vdom.Div(vdom.Role("listitem"), vdom.Class("card-slot"),
		vdom.A(vdom.Href(PatternURL(p.ID)), vdom.Class("card"), vdom.AriaLabel(p.Name+", "+p.Description),
			vdom.If(p.HasDiagram(), vdom.Div(vdom.Class("card-art"),
				vdom.Pre(vdom.AriaHidden(true), p.Diagram),
			)),
			vdom.Div(vdom.Class("card-body"),
				vdom.H3(p.Name),
				vdom.P(vdom.Class("muted"), p.Description),
			),
		),
	)
}
