package binding

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vango-dev/patterns/pkg/cell"
	"github.com/vango-dev/patterns/pkg/loadable"
)

// fakeModel records watch and cancel calls.
type fakeModel struct {
	c         *cell.Cell[int]
	unwatched atomic.Int32
	cancelled atomic.Int32
}

func newFake() *fakeModel {
	return &fakeModel{c: cell.New(0)}
}

func (m *fakeModel) Watch(fn func()) func() {
	unwatch := m.c.Watch(fn)
	return func() {
		m.unwatched.Add(1)
		unwatch()
	}
}

func (m *fakeModel) Cancel() { m.cancelled.Add(1) }

func TestUseReusesModelForEqualDeps(t *testing.T) {
	s := NewScope(nil)
	built := 0
	factory := func() *fakeModel {
		built++
		return newFake()
	}

	s.Begin()
	a := Use(s, factory, "singleton")
	s.Begin()
	b := Use(s, factory, "singleton")

	if a != b {
		t.Error("expected the same model across renders with equal deps")
	}
	if built != 1 {
		t.Errorf("expected one construction, got %d", built)
	}
}

func TestUseReplacesModelWhenDepsChange(t *testing.T) {
	s := NewScope(nil)
	factory := func() *fakeModel { return newFake() }

	s.Begin()
	a := Use(s, factory, "singleton")
	s.Begin()
	b := Use(s, factory, "observer")

	if a == b {
		t.Fatal("expected a new model after deps changed")
	}
	if a.unwatched.Load() != 1 || a.cancelled.Load() != 1 {
		t.Errorf("old model should be unwatched and cancelled once, got %d/%d",
			a.unwatched.Load(), a.cancelled.Load())
	}
	if a.c.Len() != 0 {
		t.Errorf("old model still has %d listeners", a.c.Len())
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 slot, got %d", s.Len())
	}
}

func TestUseSlotsByPosition(t *testing.T) {
	s := NewScope(nil)

	s.Begin()
	a := Use(s, newFake, 1)
	b := Use(s, newFake, 1)
	if a == b {
		t.Fatal("separate call sites need separate models")
	}

	s.Begin()
	if Use(s, newFake, 1) != a || Use(s, newFake, 1) != b {
		t.Error("slots should be stable across renders")
	}
}

func TestRefreshOnChange(t *testing.T) {
	var refreshes atomic.Int32
	s := NewScope(func() { refreshes.Add(1) })

	s.Begin()
	m := Use(s, newFake)
	m.c.Set(1)
	m.c.Set(1)
	m.c.Set(2)

	if refreshes.Load() != 2 {
		t.Errorf("expected 2 refreshes, got %d", refreshes.Load())
	}
}

func TestDisposeUnwatchesExactlyOnce(t *testing.T) {
	var refreshes atomic.Int32
	s := NewScope(func() { refreshes.Add(1) })

	s.Begin()
	a := Use(s, newFake, "a")
	b := Use(s, newFake, "b")

	s.Dispose()
	s.Dispose()

	for _, m := range []*fakeModel{a, b} {
		if m.unwatched.Load() != 1 {
			t.Errorf("expected exactly one unwatch, got %d", m.unwatched.Load())
		}
		if m.cancelled.Load() != 1 {
			t.Errorf("expected exactly one cancel, got %d", m.cancelled.Load())
		}
		if m.c.Len() != 0 {
			t.Errorf("listener leaked: %d", m.c.Len())
		}
	}

	a.c.Set(5)
	if refreshes.Load() != 0 {
		t.Error("refresh after dispose")
	}
	if !s.Disposed() || s.Len() != 0 {
		t.Error("scope should be empty and disposed")
	}
}

func TestNoLeakAcrossRemounts(t *testing.T) {
	shared := newFake()
	for i := 0; i < 5; i++ {
		s := NewScope(func() {})
		s.Begin()
		Use(s, func() *fakeModel { return shared })
		s.Dispose()
	}
	if shared.c.Len() != 0 {
		t.Errorf("expected no listeners after remounts, got %d", shared.c.Len())
	}
}

func TestUseAfterDispose(t *testing.T) {
	s := NewScope(nil)
	s.Dispose()

	m := Use(s, newFake)
	if m.c.Len() != 0 {
		t.Error("model built after dispose must not be watched")
	}
}

func TestPendingAndWait(t *testing.T) {
	release := make(chan struct{})
	var refreshes atomic.Int32
	s := NewScope(func() { refreshes.Add(1) })

	s.Begin()
	l := Use(s, func() *loadable.Loadable[string] {
		return loadable.New(context.Background(), func(ctx context.Context) (string, error) {
			<-release
			return "ok", nil
		}, "")
	}, "key")

	if !s.Pending() {
		t.Error("scope should be pending")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := s.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline, got %v", err)
	}

	close(release)
	if err := s.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if s.Pending() {
		t.Error("scope should have settled")
	}
	if v, _ := l.Read().Get(); v != "ok" {
		t.Errorf("expected ok, got %q", v)
	}
	if refreshes.Load() != 1 {
		t.Errorf("expected one refresh on settle, got %d", refreshes.Load())
	}
}

func TestUseRefreshesForModelSettledBeforeWatch(t *testing.T) {
	var refreshes atomic.Int32
	s := NewScope(func() { refreshes.Add(1) })

	s.Begin()
	l := Use(s, func() *loadable.Loadable[string] {
		l := loadable.New(context.Background(), func(context.Context) (string, error) {
			return "fast", nil
		}, "")
		<-l.Done()
		return l
	})

	if l.Pending() {
		t.Fatal("loadable should have settled inside the factory")
	}
	if refreshes.Load() != 1 {
		t.Errorf("expected one refresh for the settled model, got %d", refreshes.Load())
	}

	s.Begin()
	Use(s, func() *loadable.Loadable[string] {
		t.Error("factory should not run again for the same slot")
		return nil
	})
	if refreshes.Load() != 1 {
		t.Errorf("reusing a settled model should not refresh, got %d", refreshes.Load())
	}
}

func TestUseDoesNotRefreshPendingModel(t *testing.T) {
	var refreshes atomic.Int32
	s := NewScope(func() { refreshes.Add(1) })
	defer s.Dispose()

	s.Begin()
	Use(s, func() *loadable.Loadable[int] {
		return loadable.New(context.Background(), func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		}, 0)
	})
	if refreshes.Load() != 0 {
		t.Errorf("pending model should not refresh on bind, got %d", refreshes.Load())
	}
}

func TestDisposeCancelsLoadable(t *testing.T) {
	s := NewScope(nil)
	s.Begin()
	l := Use(s, func() *loadable.Loadable[int] {
		return loadable.New(context.Background(), func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		}, 0)
	})

	s.Dispose()

	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("dispose should cancel the in-flight producer")
	}
	if !errors.Is(l.Read().Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", l.Read().Err)
	}
}
