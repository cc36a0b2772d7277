package loadable

import "github.com/vango-dev/patterns/pkg/vdom"

// Handler renders one phase of a Loadable.
type Handler[T any] interface {
	handle(Result[T]) *vdom.VNode
}

// Match renders the first handler matching the current phase. It returns
// nil when no handler matches.
func (l *Loadable[T]) Match(handlers ...Handler[T]) *vdom.VNode {
	return MatchResult(l.Read(), handlers...)
}

// MatchResult is Match for an already read Result.
func MatchResult[T any](r Result[T], handlers ...Handler[T]) *vdom.VNode {
	for _, h := range handlers {
		if node := h.handle(r); node != nil {
			return node
		}
	}
	return nil
}

type pendingHandler[T any] struct {
	fn func() *vdom.VNode
}

func (h pendingHandler[T]) handle(r Result[T]) *vdom.VNode {
	if r.Status == Pending {
		return h.fn()
	}
	return nil
}

type resolvedHandler[T any] struct {
	fn func(T) *vdom.VNode
}

func (h resolvedHandler[T]) handle(r Result[T]) *vdom.VNode {
	if r.Status == Resolved {
		return h.fn(r.Value)
	}
	return nil
}

type erroredHandler[T any] struct {
	fn func(error) *vdom.VNode
}

func (h erroredHandler[T]) handle(r Result[T]) *vdom.VNode {
	if r.Status == Errored {
		return h.fn(r.Err)
	}
	return nil
}

// OnPending handles the Pending phase.
func OnPending[T any](fn func() *vdom.VNode) Handler[T] {
	return pendingHandler[T]{fn: fn}
}

// OnResolved handles the Resolved phase.
func OnResolved[T any](fn func(T) *vdom.VNode) Handler[T] {
	return resolvedHandler[T]{fn: fn}
}

// OnErrored handles the Errored phase.
func OnErrored[T any](fn func(error) *vdom.VNode) Handler[T] {
	return erroredHandler[T]{fn: fn}
}
