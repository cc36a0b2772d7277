// Package loop provides the single logical thread on which asynchronous
// completions are applied.
//
// Producers run on their own goroutines; their continuations are handed to
// a Dispatcher, which for a Loop means they execute one at a time, in FIFO
// order, on the goroutine running Run. Work dispatched to the same Loop
// therefore never runs concurrently with other work on that Loop.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// ErrClosed is returned by Run when the loop was closed.
var ErrClosed = errors.New("loop: closed")

// Dispatcher schedules fn to run later. Dispatch reports whether fn was
// accepted.
type Dispatcher interface {
	Dispatch(fn func()) bool
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(fn func()) bool

// Dispatch implements Dispatcher.
func (f DispatcherFunc) Dispatch(fn func()) bool { return f(fn) }

// Immediate runs fn on the calling goroutine.
var Immediate Dispatcher = DispatcherFunc(func(fn func()) bool {
	fn()
	return true
})

// Loop executes dispatched functions sequentially.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	done    chan struct{}
	closed  bool
	running bool

	logger *slog.Logger
}

// New creates a loop. Call Run to start processing.
func New(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Dispatch queues fn. It never blocks and returns false once the loop is
// closed.
func (l *Loop) Dispatch(fn func()) bool {
	if fn == nil {
		return false
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run processes queued work until ctx is done or Close is called. Either
// way the loop is closed on return, and work still queued runs before Run
// returns. Every accepted function executes exactly once.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		for _, fn := range l.shutdown(false) {
			l.execute(fn)
		}
	}()

	for {
		for _, fn := range l.take() {
			l.execute(fn)
		}

		select {
		case <-l.wake:
		case <-l.done:
			return ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// take swaps out the pending queue.
func (l *Loop) take() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	q := l.queue
	l.queue = nil
	return q
}

// execute runs fn with panic recovery.
func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("dispatch panic",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

// Close stops the loop. Safe to call repeatedly. Queued work is not
// dropped: an active Run executes it before returning, otherwise it runs
// here on the caller's goroutine.
func (l *Loop) Close() {
	for _, fn := range l.shutdown(true) {
		l.execute(fn)
	}
}

// shutdown marks the loop closed and hands back the queued work the caller
// must run. A Close while Run is active leaves the queue to Run.
func (l *Loop) shutdown(fromClose bool) []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.done)
	}
	if fromClose && l.running {
		return nil
	}
	if !fromClose {
		l.running = false
	}
	q := l.queue
	l.queue = nil
	return q
}

// Closed reports whether the loop has stopped accepting work.
func (l *Loop) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}
