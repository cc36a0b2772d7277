// Package cell provides the observable single-value store that drives page
// updates.
//
// A Cell holds exactly one current value. Reads are synchronous and free of
// side effects; writes compare against the current value and notify
// listeners only when it changed:
//
//	count := cell.New(0)
//	unsubscribe := count.Subscribe(func(n int) {
//	    fmt.Println("count is", n)
//	})
//	count.Set(1) // prints "count is 1"
//	count.Set(1) // equal value, no notification
//	unsubscribe()
//
// # Ordering
//
// Listeners run synchronously in registration order. Writes to one cell are
// strictly sequential: a write issued while another write is notifying
// (from a listener or from another goroutine) is queued and applied once
// the running notification loop completes.
//
// # Listener failures
//
// A listener that panics is recovered and logged; the remaining listeners
// still run.
package cell
