package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestImmediate(t *testing.T) {
	ran := false
	if !Immediate.Dispatch(func() { ran = true }) {
		t.Fatal("Immediate should accept work")
	}
	if !ran {
		t.Error("Immediate should run synchronously")
	}
}

func TestLoopRunsInOrder(t *testing.T) {
	l := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	var mu sync.Mutex
	var got []int
	done := make(chan struct{})

	for i := 0; i < 10; i++ {
		i := i
		l.Dispatch(func() {
			mu.Lock()
			got = append(got, i)
			n := len(got)
			mu.Unlock()
			if n == 10 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for dispatched work")
	}

	for i, v := range got {
		if v != i {
			t.Fatalf("expected FIFO order, got %v", got)
		}
	}
}

func TestLoopNeverOverlaps(t *testing.T) {
	l := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	var mu sync.Mutex
	active, maxActive, count := 0, 0, 0
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Dispatch(func() {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				count++
				if count == 20 {
					close(done)
				}
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for dispatched work")
	}
	if maxActive != 1 {
		t.Errorf("expected sequential execution, saw %d concurrent", maxActive)
	}
}

func TestLoopRecoversPanics(t *testing.T) {
	l := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	done := make(chan struct{})
	l.Dispatch(func() { panic("boom") })
	l.Dispatch(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not survive a panic")
	}
}

func TestLoopClose(t *testing.T) {
	l := New(nil)
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(context.Background()) }()

	l.Close()
	l.Close()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrClosed) {
			t.Errorf("expected ErrClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}

	if l.Dispatch(func() {}) {
		t.Error("Dispatch after Close should be rejected")
	}
	if !l.Closed() {
		t.Error("Closed should report true")
	}
}

func TestLoopContextCancel(t *testing.T) {
	l := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestLoopContextCancelClosesLoop(t *testing.T) {
	l := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	cancel()
	<-errCh

	if !l.Closed() {
		t.Error("loop should be closed once Run returns")
	}
	if l.Dispatch(func() {}) {
		t.Error("Dispatch after Run returned should be rejected")
	}
	if err := l.Run(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from a second Run, got %v", err)
	}
}

func TestLoopCloseRunsQueuedWork(t *testing.T) {
	l := New(nil)
	ran := 0
	l.Dispatch(func() { ran++ })
	l.Dispatch(func() { ran++ })

	l.Close()
	if ran != 2 {
		t.Errorf("expected queued work to run on Close, ran %d", ran)
	}

	l.Close()
	if ran != 2 {
		t.Errorf("second Close should not rerun work, ran %d", ran)
	}
}

func TestLoopCloseWhileRunningDrains(t *testing.T) {
	l := New(nil)
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(context.Background()) }()

	started := make(chan struct{})
	hold := make(chan struct{})
	l.Dispatch(func() {
		close(started)
		<-hold
	})
	<-started

	var second atomic.Bool
	if !l.Dispatch(func() { second.Store(true) }) {
		t.Fatal("Dispatch before Close should be accepted")
	}

	l.Close()
	close(hold)

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrClosed) {
			t.Errorf("expected ErrClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}
	if !second.Load() {
		t.Error("work queued before Close should run before Run returns")
	}
}
