// Package loadable wraps a one-shot asynchronous producer in an observable
// cell, exposing pending, resolved and errored phases to subscribers.
//
// Basic usage:
//
//	pattern := loadable.New(ctx, func(ctx context.Context) (catalog.Pattern, error) {
//	    return svc.Get(ctx, id)
//	}, catalog.Pattern{})
//
//	return pattern.Match(
//	    loadable.OnPending[catalog.Pattern](func() *vdom.VNode { return Loading() }),
//	    loadable.OnErrored[catalog.Pattern](func(err error) *vdom.VNode { return NotFound(err) }),
//	    loadable.OnResolved(func(p catalog.Pattern) *vdom.VNode { return Detail(p) }),
//	)
//
// The producer's outcome is applied through a loop.Dispatcher. Pass the
// rendering surface's loop with WithDispatcher so the cell write and its
// notifications run on that surface's single logical thread.
//
// Transitions are one-way: Pending to Resolved or Pending to Errored, once.
// Cancel cancels the producer's context; a producer that honours it
// settles Errored with context.Canceled.
package loadable
