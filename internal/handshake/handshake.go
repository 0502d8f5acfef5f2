// Package handshake provides the single-slot synchronization primitive that
// hands a completed resolution from the worker goroutine to the waiting
// caller. It is a one-shot rendezvous reused across resolutions: exactly one
// Signal per accepted request, consumed by exactly one Await.
package handshake

// Slot is a single-slot, single-waiter completion handshake carrying one
// value of type T per cycle. The worker side calls Signal, the caller side
// blocks in Await. A capacity-one channel replaces the classic
// lock/condition/flag triple; delivery and wakeup are a single operation,
// and spurious wakeups cannot occur.
//
// Usage contract: at most one outstanding Await at a time, and Signal only
// after the previous value has been consumed. Two Signals without an
// intervening Await indicate a lost completion and panic rather than
// silently corrupting the next cycle.
type Slot[T any] struct {
	ch chan T
}

// New returns an empty Slot ready for its first cycle.
func New[T any]() *Slot[T] {
	return &Slot[T]{ch: make(chan T, 1)}
}

// Signal deposits v and wakes the waiter, without blocking. It panics if
// the slot is already occupied: that means a completion was produced with
// no one consuming the previous one, which breaks the exactly-once
// delivery guarantee.
func (s *Slot[T]) Signal(v T) {
	select {
	case s.ch <- v:
	default:
		panic("handshake: Signal with an unconsumed completion pending")
	}
}

// Await blocks until a value has been deposited, empties the slot, and
// returns the value. The slot is immediately reusable for the next cycle.
func (s *Slot[T]) Await() T {
	return <-s.ch
}

// Pending reports whether a signaled value is waiting to be consumed.
// It is false except in the window between Signal and the matching Await.
func (s *Slot[T]) Pending() bool {
	return len(s.ch) > 0
}
