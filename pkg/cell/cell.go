package cell

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// registration is one Subscribe call. Subscribing the same func twice
// produces two registrations.
type registration[T any] struct {
	id     uint64
	fn     func(T)
	active atomic.Bool
}

// Cell is an observable holder of a single current value.
type Cell[T any] struct {
	// mu protects value, subs, pending and notifying.
	mu sync.Mutex

	value T

	// subs are the live registrations in registration order.
	subs []*registration[T]

	// pending holds writes issued while a notification loop is running.
	pending []T

	// notifying is true while some goroutine drains pending writes.
	notifying bool

	equal  func(a, b T) bool
	logger *slog.Logger
	name   string
}

// New creates a cell holding initial.
func New[T any](initial T, opts ...Option[T]) *Cell[T] {
	c := &Cell[T]{
		value:  initial,
		equal:  Equal[T],
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set stores v and notifies listeners if v differs from the current value.
//
// When called while the cell is already notifying, including from inside a
// listener, v is queued and Set returns at once. A queued write is not
// visible to Get until the current notification loop has finished; the
// goroutine running that loop applies it before its own Set returns.
// Listeners therefore never observe interleaved writes.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.pending = append(c.pending, v)
	if c.notifying {
		c.mu.Unlock()
		return
	}
	c.drain()
}

// Update atomically derives the next value from the current one. Called
// during notification it derives from the latest queued value and is
// queued like Set.
func (c *Cell[T]) Update(fn func(T) T) {
	c.mu.Lock()
	if c.notifying {
		// Derive from the latest queued value so queued updates compose.
		base := c.value
		if n := len(c.pending); n > 0 {
			base = c.pending[n-1]
		}
		c.pending = append(c.pending, fn(base))
		c.mu.Unlock()
		return
	}
	c.pending = append(c.pending, fn(c.value))
	c.drain()
}

// drain applies queued writes in order. Must be called with mu held; it
// releases mu before returning.
func (c *Cell[T]) drain() {
	c.notifying = true
	for len(c.pending) > 0 {
		next := c.pending[0]
		var zero T
		c.pending[0] = zero
		c.pending = c.pending[1:]

		if c.equal(c.value, next) {
			continue
		}
		c.value = next

		// Copy before notify so listeners may (un)subscribe freely.
		subs := make([]*registration[T], len(c.subs))
		copy(subs, c.subs)

		c.mu.Unlock()
		for _, r := range subs {
			if r.active.Load() {
				c.invoke(r, next)
			}
		}
		c.mu.Lock()
	}
	c.pending = nil
	c.notifying = false
	c.mu.Unlock()
}

// invoke runs a single listener, isolating panics.
func (c *Cell[T]) invoke(r *registration[T], v T) {
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("cell listener panic",
				"cell", c.name,
				"listener", r.id,
				"panic", fmt.Sprint(p),
				"stack", string(debug.Stack()))
		}
	}()
	r.fn(v)
}

// Subscribe registers fn to be called with every new value. The returned
// func removes exactly this registration; calling it again is a no-op.
func (c *Cell[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	r := &registration[T]{id: nextID(), fn: fn}
	r.active.Store(true)

	c.mu.Lock()
	c.subs = append(c.subs, r)
	c.mu.Unlock()

	return func() {
		if !r.active.CompareAndSwap(true, false) {
			return
		}
		c.remove(r)
	}
}

// Watch registers fn to be called on every change without the value.
func (c *Cell[T]) Watch(fn func()) (unwatch func()) {
	if fn == nil {
		return func() {}
	}
	return c.Subscribe(func(T) { fn() })
}

// remove deletes r while keeping the order of the other registrations.
func (c *Cell[T]) remove(r *registration[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.subs {
		if existing.id == r.id {
			subs := make([]*registration[T], 0, len(c.subs)-1)
			subs = append(subs, c.subs[:i]...)
			subs = append(subs, c.subs[i+1:]...)
			c.subs = subs
			return
		}
	}
}

// Len returns the number of live registrations.
func (c *Cell[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
