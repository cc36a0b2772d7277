package cell

import "sync/atomic"

// registrationSeq is the source of unique registration IDs.
var registrationSeq uint64

// nextID returns the next registration ID. IDs are never reused.
func nextID() uint64 {
	return atomic.AddUint64(&registrationSeq, 1)
}
