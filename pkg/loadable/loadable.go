package loadable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/vango-dev/patterns/pkg/cell"
	"github.com/vango-dev/patterns/pkg/loop"
)

// Status is the phase of a Loadable.
type Status int

const (
	Pending  Status = iota // Producer has not settled yet
	Resolved               // Producer returned a value
	Errored                // Producer returned an error
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the tagged value held by a Loadable. Value is the placeholder
// while pending and the produced value once resolved. Err is set only when
// errored.
type Result[T any] struct {
	Status Status
	Value  T
	Err    error
}

// Get returns the value and error, in the usual Go shape. A pending result
// returns ErrPending.
func (r Result[T]) Get() (T, error) {
	switch r.Status {
	case Resolved:
		return r.Value, nil
	case Errored:
		var zero T
		return zero, r.Err
	default:
		var zero T
		return zero, ErrPending
	}
}

// IsPending reports whether the producer has not settled.
func (r Result[T]) IsPending() bool { return r.Status == Pending }

// IsResolved reports whether the producer returned a value.
func (r Result[T]) IsResolved() bool { return r.Status == Resolved }

// IsErrored reports whether the producer failed.
func (r Result[T]) IsErrored() bool { return r.Status == Errored }

// ErrPending is returned by Result.Get before the producer settles.
var ErrPending = errors.New("loadable: pending")

// PanicError is the failure recorded when a producer panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("loadable: producer panic: %v", e.Value)
}

// Producer computes the value of a Loadable. It should return promptly
// once ctx is done.
type Producer[T any] func(ctx context.Context) (T, error)

// Loadable bridges a one-shot asynchronous producer into a cell.
//
// It starts Pending holding the placeholder and settles exactly once,
// either Resolved with the produced value or Errored with the failure.
// Status and value change in a single cell write, so listeners always see
// a consistent Result.
type Loadable[T any] struct {
	cell   *cell.Cell[Result[T]]
	cancel context.CancelFunc
	done   chan struct{}

	// settleOnce guards the one-way transition out of Pending.
	settleOnce sync.Once

	name       string
	dispatcher loop.Dispatcher
	observer   Observer
	logger     *slog.Logger
	started    time.Time
}

// New creates a Loadable and starts producer on its own goroutine. New
// never blocks. The producer receives a context derived from ctx that is
// also cancelled by Cancel.
func New[T any](ctx context.Context, producer Producer[T], placeholder T, opts ...Option) *Loadable[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	pctx, cancel := context.WithCancel(ctx)

	l := &Loadable[T]{
		cell: cell.New(Result[T]{Status: Pending, Value: placeholder},
			cell.WithEqual(resultEqual[T]),
			cell.WithLogger[Result[T]](cfg.logger),
			cell.WithName[Result[T]](cfg.name),
		),
		cancel:     cancel,
		done:       make(chan struct{}),
		name:       cfg.name,
		dispatcher: cfg.dispatcher,
		observer:   cfg.observer,
		logger:     cfg.logger,
		started:    time.Now(),
	}

	go l.run(pctx, producer, placeholder)

	return l
}

// run executes the producer and hands the outcome to the dispatcher.
func (l *Loadable[T]) run(ctx context.Context, producer Producer[T], placeholder T) {
	value, err := l.produce(ctx, producer)

	var next Result[T]
	if err != nil {
		next = Result[T]{Status: Errored, Value: placeholder, Err: err}
	} else {
		next = Result[T]{Status: Resolved, Value: value}
	}

	if !l.dispatcher.Dispatch(func() { l.settle(next) }) {
		// The owning loop is gone; record the outcome so Done and Await
		// still observe termination.
		l.logger.Debug("loadable dispatcher closed, settling inline", "loadable", l.name)
		l.settle(next)
	}
}

// produce calls the producer, converting a panic into a PanicError.
func (l *Loadable[T]) produce(ctx context.Context, producer Producer[T]) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	if producer == nil {
		return value, errors.New("loadable: nil producer")
	}
	return producer(ctx)
}

// settle applies the single transition out of Pending.
func (l *Loadable[T]) settle(next Result[T]) {
	l.settleOnce.Do(func() {
		l.cancel()
		l.cell.Set(next)

		elapsed := time.Since(l.started)
		if next.Err != nil {
			l.logger.Debug("loadable errored", "loadable", l.name, "error", next.Err, "elapsed", elapsed)
		} else {
			l.logger.Debug("loadable resolved", "loadable", l.name, "elapsed", elapsed)
		}
		if l.observer != nil {
			l.observer.Settled(l.name, next.Status, elapsed)
		}
		close(l.done)
	})
}

// Read returns the current result.
func (l *Loadable[T]) Read() Result[T] {
	return l.cell.Get()
}

// Status returns the current phase. It is not observable on its own;
// read it from a Subscribe or Watch callback to react to transitions.
func (l *Loadable[T]) Status() Status {
	return l.cell.Get().Status
}

// Pending reports whether the producer has not settled.
func (l *Loadable[T]) Pending() bool {
	return l.Status() == Pending
}

// Subscribe registers fn for the settled result.
func (l *Loadable[T]) Subscribe(fn func(Result[T])) (unsubscribe func()) {
	return l.cell.Subscribe(fn)
}

// Watch registers fn to be called when the result changes.
func (l *Loadable[T]) Watch(fn func()) (unwatch func()) {
	return l.cell.Watch(fn)
}

// Done is closed once the Loadable has settled.
func (l *Loadable[T]) Done() <-chan struct{} {
	return l.done
}

// Await blocks until the Loadable settles or ctx is done. On ctx expiry it
// returns the current (pending) result together with ctx.Err().
func (l *Loadable[T]) Await(ctx context.Context) (Result[T], error) {
	select {
	case <-l.done:
		return l.cell.Get(), nil
	case <-ctx.Done():
		return l.cell.Get(), ctx.Err()
	}
}

// Cancel cancels the producer's context. A producer honouring its context
// settles Errored with context.Canceled. Cancel after settling is a no-op.
func (l *Loadable[T]) Cancel() {
	l.cancel()
}

// Name returns the label given with WithName.
func (l *Loadable[T]) Name() string {
	return l.name
}

// resultEqual treats results as equal only when status, error and value
// all match under cell.Equal.
func resultEqual[T any](a, b Result[T]) bool {
	return a.Status == b.Status &&
		cell.Equal(a.Err, b.Err) &&
		cell.Equal(a.Value, b.Value)
}
