package syncx

import "sync/atomic"

// Latch is a one-way gate that can be tripped exactly once.
// It's useful for modeling a resource that is consumed by its first use, like a builder that may only build once.
//
// The zero value is an open Latch, ready to use.
// A Latch must not be copied after first use.
type Latch struct {
	tripped atomic.Bool
}

// Trip closes the Latch.
// Only the first call returns true, every other call (from any goroutine) returns false.
func (l *Latch) Trip() bool {
	return l.tripped.CompareAndSwap(false, true)
}

// Tripped reports whether [Latch.Trip] has been called successfully.
func (l *Latch) Tripped() bool {
	return l.tripped.Load()
}
