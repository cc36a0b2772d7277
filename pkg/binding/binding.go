// Package binding connects observable models to a rendering surface.
//
// A Scope represents one mounted surface: an HTTP render, a live websocket
// session or a terminal view. During each render pass the surface calls
// Use once per model, in the same order every time. The first pass builds
// the model and watches it with the surface's refresh func; later passes
// return the stored model while its dependency keys are unchanged. When
// the keys change the old model is released and a fresh one is built.
//
//	scope := binding.NewScope(rerender)
//	defer scope.Dispose()
//
//	scope.Begin()
//	page := binding.Use(scope, func() *loadable.Loadable[catalog.Pattern] {
//	    return loadable.New(ctx, fetch(id), catalog.Pattern{})
//	}, id)
package binding

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vango-dev/patterns/pkg/cell"
)

// Model is anything a surface can watch for changes.
type Model interface {
	Watch(fn func()) (unwatch func())
}

// Canceler is implemented by models owning in-flight work.
type Canceler interface {
	Cancel()
}

// pender is implemented by models that can still be loading.
type pender interface {
	Pending() bool
}

// doner is implemented by models that signal completion.
type doner interface {
	Done() <-chan struct{}
}

// slot is one Use call site.
type slot struct {
	model   Model
	deps    []any
	unwatch func()
}

// Scope holds the bound models of one rendering surface.
type Scope struct {
	mu       sync.Mutex
	slots    []*slot
	idx      int
	disposed bool

	refresh func()
	logger  *slog.Logger
}

// Option configures a Scope.
type Option func(*Scope)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scope) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScope creates a scope whose models call refresh whenever they change.
func NewScope(refresh func(), opts ...Option) *Scope {
	s := &Scope{
		refresh: refresh,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin starts a render pass. Slots are matched to Use calls by position.
func (s *Scope) Begin() {
	s.mu.Lock()
	s.idx = 0
	s.mu.Unlock()
}

// Use returns the model for the current slot, building it with factory on
// first use or when deps differ from the previous pass. After Dispose,
// Use returns an unwatched model.
func Use[M Model](s *Scope, factory func() M, deps ...any) M {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		s.logger.Debug("binding use after dispose")
		return factory()
	}

	idx := s.idx
	s.idx++

	var stale *slot
	if idx < len(s.slots) {
		sl := s.slots[idx]
		if m, ok := sl.model.(M); ok && depsEqual(sl.deps, deps) {
			s.mu.Unlock()
			return m
		}
		stale = sl
	}
	s.mu.Unlock()

	if stale != nil {
		release(stale)
	}

	// Build outside the lock; factories may start goroutines or settle
	// before Watch is registered.
	m := factory()
	sl := &slot{
		model: m,
		deps:  append([]any(nil), deps...),
	}
	sl.unwatch = m.Watch(s.notify)

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		release(sl)
		return m
	}
	if idx < len(s.slots) {
		s.slots[idx] = sl
	} else {
		s.slots = append(s.slots, sl)
	}
	s.mu.Unlock()

	// A model that settled before Watch produced no notification.
	if p, ok := any(m).(pender); ok && !p.Pending() {
		s.notify()
	}

	return m
}

// notify forwards a model change to the surface.
func (s *Scope) notify() {
	s.mu.Lock()
	disposed := s.disposed
	s.mu.Unlock()
	if disposed || s.refresh == nil {
		return
	}
	s.refresh()
}

// Pending reports whether any bound model is still loading.
func (s *Scope) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sl := range s.slots {
		if p, ok := sl.model.(pender); ok && p.Pending() {
			return true
		}
	}
	return false
}

// Wait blocks until every bound model that signals completion is done, or
// ctx expires.
func (s *Scope) Wait(ctx context.Context) error {
	s.mu.Lock()
	var chans []<-chan struct{}
	for _, sl := range s.slots {
		if d, ok := sl.model.(doner); ok {
			chans = append(chans, d.Done())
		}
	}
	s.mu.Unlock()

	for _, ch := range chans {
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Len returns the number of live slots.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

// Disposed reports whether Dispose has been called.
func (s *Scope) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Dispose releases every slot: each stored unwatch runs exactly once and
// cancellable models are cancelled. Safe to call repeatedly.
func (s *Scope) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	slots := s.slots
	s.slots = nil
	s.mu.Unlock()

	// Release in reverse order of creation.
	for i := len(slots) - 1; i >= 0; i-- {
		release(slots[i])
	}
}

func release(sl *slot) {
	if sl.unwatch != nil {
		sl.unwatch()
		sl.unwatch = nil
	}
	if c, ok := sl.model.(Canceler); ok {
		c.Cancel()
	}
}

func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !cell.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
