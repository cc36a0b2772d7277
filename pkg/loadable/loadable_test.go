package loadable

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vango-dev/patterns/pkg/loop"
	"github.com/vango-dev/patterns/pkg/vdom"
)

// gate returns a producer that blocks until release is closed.
func gate[T any](value T, err error) (Producer[T], chan struct{}) {
	release := make(chan struct{})
	return func(ctx context.Context) (T, error) {
		select {
		case <-release:
			return value, err
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}, release
}

func waitDone[T any](t *testing.T, l *Loadable[T]) {
	t.Helper()
	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for loadable to settle")
	}
}

func TestLoadablePendingDefault(t *testing.T) {
	producer, release := gate("Loaded Value", nil)
	defer close(release)

	l := New(context.Background(), producer, "Initial Value")

	r := l.Read()
	if r.Value != "Initial Value" {
		t.Errorf("expected placeholder, got %q", r.Value)
	}
	if l.Status() != Pending || l.Status().String() != "pending" {
		t.Errorf("expected pending, got %s", l.Status())
	}
	if !l.Pending() {
		t.Error("Pending() should be true")
	}
	if _, err := r.Get(); !errors.Is(err, ErrPending) {
		t.Errorf("expected ErrPending from Get, got %v", err)
	}
}

func TestLoadableSuccess(t *testing.T) {
	producer, release := gate("Loaded Value", nil)
	l := New(context.Background(), producer, "Initial Value")

	var mu sync.Mutex
	var seen []Result[string]
	l.Subscribe(func(r Result[string]) {
		mu.Lock()
		seen = append(seen, r)
		mu.Unlock()
	})

	close(release)
	waitDone(t, l)

	if l.Status() != Resolved {
		t.Errorf("expected resolved, got %s", l.Status())
	}
	if v, err := l.Read().Get(); err != nil || v != "Loaded Value" {
		t.Errorf("expected Loaded Value, got %q (%v)", v, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(seen))
	}
	if !seen[0].IsResolved() || seen[0].Value != "Loaded Value" {
		t.Errorf("unexpected notification %+v", seen[0])
	}
}

func TestLoadableResolvesToPlaceholderValueStillNotifies(t *testing.T) {
	producer, release := gate(0, nil)
	l := New(context.Background(), producer, 0)

	calls := atomic.Int32{}
	l.Watch(func() { calls.Add(1) })

	close(release)
	waitDone(t, l)

	if calls.Load() != 1 {
		t.Errorf("status change must notify even when the value is unchanged, got %d", calls.Load())
	}
}

func TestLoadableFailure(t *testing.T) {
	fail := errors.New("fail")
	producer, release := gate("", fail)
	l := New(context.Background(), producer, "placeholder")

	close(release)
	waitDone(t, l)

	r := l.Read()
	if r.Status != Errored || l.Status().String() != "errored" {
		t.Errorf("expected errored, got %s", r.Status)
	}
	if !errors.Is(r.Err, fail) {
		t.Errorf("expected %v, got %v", fail, r.Err)
	}
	if _, err := r.Get(); !errors.Is(err, fail) {
		t.Errorf("Get should return the failure, got %v", err)
	}
}

func TestLoadableSettlesOnce(t *testing.T) {
	l := New(context.Background(), func(context.Context) (int, error) {
		return 1, nil
	}, 0)
	waitDone(t, l)

	// A second settle attempt must not change the terminal state.
	l.settle(Result[int]{Status: Errored, Err: errors.New("late")})
	if l.Status() != Resolved || l.Read().Value != 1 {
		t.Errorf("terminal state changed: %+v", l.Read())
	}
}

func TestLoadableRunsWithoutSubscribers(t *testing.T) {
	var ran atomic.Bool
	l := New(context.Background(), func(context.Context) (string, error) {
		ran.Store(true)
		return "done", nil
	}, "")

	unsub := l.Subscribe(func(Result[string]) {})
	unsub()

	waitDone(t, l)
	if !ran.Load() || l.Read().Value != "done" {
		t.Error("producer should run to completion without listeners")
	}
}

func TestLoadableCancel(t *testing.T) {
	producer, release := gate("never", nil)
	defer close(release)

	l := New(context.Background(), producer, "")
	l.Cancel()
	waitDone(t, l)

	r := l.Read()
	if r.Status != Errored || !errors.Is(r.Err, context.Canceled) {
		t.Errorf("expected errored with context.Canceled, got %+v", r)
	}
}

func TestLoadablePanicBecomesError(t *testing.T) {
	l := New(context.Background(), func(context.Context) (int, error) {
		panic("boom")
	}, 0)
	waitDone(t, l)

	var pe *PanicError
	if !errors.As(l.Read().Err, &pe) {
		t.Fatalf("expected PanicError, got %v", l.Read().Err)
	}
	if pe.Value != "boom" {
		t.Errorf("unexpected panic value %v", pe.Value)
	}
}

func TestLoadableDispatcher(t *testing.T) {
	lp := loop.New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go lp.Run(ctx)

	var onLoop atomic.Bool
	var inLoop atomic.Bool
	d := loop.DispatcherFunc(func(fn func()) bool {
		return lp.Dispatch(func() {
			inLoop.Store(true)
			defer inLoop.Store(false)
			fn()
		})
	})

	l := New(context.Background(), func(context.Context) (int, error) {
		return 42, nil
	}, 0, WithDispatcher(d), WithName("answer"))

	l.Watch(func() { onLoop.Store(inLoop.Load()) })
	waitDone(t, l)

	if !onLoop.Load() {
		t.Error("listener should run on the dispatcher loop")
	}
	if l.Name() != "answer" {
		t.Errorf("unexpected name %q", l.Name())
	}
}

func TestLoadableClosedDispatcherStillSettles(t *testing.T) {
	lp := loop.New(nil)
	lp.Close()

	l := New(context.Background(), func(context.Context) (int, error) {
		return 7, nil
	}, 0, WithDispatcher(lp))
	waitDone(t, l)

	if l.Read().Value != 7 {
		t.Errorf("expected 7, got %d", l.Read().Value)
	}
}

func TestLoadableSettlesAfterLoopContextEnds(t *testing.T) {
	lp := loop.New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error, 1)
	go func() { stopped <- lp.Run(ctx) }()

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	l := New(context.Background(), func(context.Context) (int, error) {
		return 7, nil
	}, 0, WithDispatcher(lp))
	waitDone(t, l)

	if r := l.Read(); !r.IsResolved() || r.Value != 7 {
		t.Errorf("expected resolved 7, got %s %d", r.Status, r.Value)
	}
}

func TestLoadableSettlesWhenLoopClosedWithWorkQueued(t *testing.T) {
	// The loop never runs, so the settle continuation either sits in the
	// queue when Close is called or is refused afterwards.
	lp := loop.New(nil)
	producer, release := gate(7, nil)
	l := New(context.Background(), producer, 0, WithDispatcher(lp))

	close(release)
	lp.Close()
	waitDone(t, l)

	if r := l.Read(); !r.IsResolved() || r.Value != 7 {
		t.Errorf("expected resolved 7, got %s %d", r.Status, r.Value)
	}
}

func TestLoadableObserver(t *testing.T) {
	got := make(chan Status, 1)
	l := New(context.Background(), func(context.Context) (int, error) {
		return 0, errors.New("x")
	}, 0, WithName("obs"), WithObserver(ObserverFunc(func(name string, s Status, _ time.Duration) {
		if name == "obs" {
			got <- s
		}
	})))
	waitDone(t, l)

	select {
	case s := <-got:
		if s != Errored {
			t.Errorf("expected errored, got %s", s)
		}
	case <-time.After(time.Second):
		t.Fatal("observer not called")
	}
}

func TestLoadableAwait(t *testing.T) {
	producer, release := gate("v", nil)
	l := New(context.Background(), producer, "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	r, err := l.Await(ctx)
	if !errors.Is(err, context.DeadlineExceeded) || !r.IsPending() {
		t.Errorf("expected pending result with deadline error, got %+v %v", r, err)
	}

	close(release)
	r, err = l.Await(context.Background())
	if err != nil || r.Value != "v" {
		t.Errorf("expected resolved v, got %+v %v", r, err)
	}
}

func TestLoadableMatch(t *testing.T) {
	handlers := []Handler[string]{
		OnPending[string](func() *vdom.VNode { return vdom.P("loading") }),
		OnErrored[string](func(err error) *vdom.VNode { return vdom.P("error: " + err.Error()) }),
		OnResolved(func(s string) *vdom.VNode { return vdom.P("ready: " + s) }),
	}

	cases := []struct {
		r    Result[string]
		want string
	}{
		{Result[string]{Status: Pending}, "loading"},
		{Result[string]{Status: Errored, Err: errors.New("nope")}, "error: nope"},
		{Result[string]{Status: Resolved, Value: "x"}, "ready: x"},
	}
	for _, tc := range cases {
		node := MatchResult(tc.r, handlers...)
		if node == nil || node.TextContent() != tc.want {
			t.Errorf("%s: expected %q, got %+v", tc.r.Status, tc.want, node)
		}
	}

	if MatchResult(Result[string]{Status: Pending}, OnResolved(func(string) *vdom.VNode { return vdom.P("x") })) != nil {
		t.Error("expected nil when no handler matches")
	}
}

func TestStatusString(t *testing.T) {
	if Resolved.String() != "resolved" || Status(9).String() != "Status(9)" {
		t.Error("unexpected status names")
	}
}
