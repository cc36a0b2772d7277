// Package vdom provides the in-memory markup tree rendered by the catalog
// pages.
//
// Elements are created using variadic factory functions that accept
// attributes, child nodes and plain strings in any order:
//
//	Div(Class("card"), ID("singleton"),
//	    H3(Text("Singleton")),
//	    P("Ensures a class has only one instance."),
//	)
//
// Nil arguments are ignored, which keeps conditional markup terse:
//
//	Div(If(len(siblings) > 0, Related(siblings)))
package vdom
