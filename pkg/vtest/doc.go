// Package vtest provides testing helpers for views bound to a scope.
//
// # Quick Start
//
//	func TestHome(t *testing.T) {
//	    s := vtest.Scope(t)
//	    var page views.Page
//	    vtest.Settle(t, s, func() bool {
//	        page = views.Home(ctx, s, env)
//	        return page.Pending
//	    })
//	    vtest.ExpectContains(t, page.Body, "Creational")
//	}
//
// Settle begins a render pass, runs the render function and, while it
// reports pending, waits for the scope's loadables before rendering
// again.
//
// # Render Assertions
//
//	vtest.ExpectContains(t, node, "Singleton")
//	vtest.ExpectNotContains(t, node, "Loading")
//	vtest.ExpectElement(t, node, "pre")
//	vtest.ExpectAttribute(t, node, "href", "/pattern/observer")
package vtest
