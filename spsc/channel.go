// channel.go
//
// Bounded lock-free channel for exactly one producer goroutine and one
// consumer goroutine.  The two sides coordinate only through the published
// head/tail cursors and a disconnect flag: no mutexes, no runtime channels
// and no parking.  Blocking operations busy-spin with a CPU relax hint, so
// a blocked side keeps its core hot and reacts to the peer within
// nanoseconds.
//
// Each side keeps a private copy of both cursors and reloads the shared
// cursor of its peer only when its copy says no progress is possible.
//
// Closing a handle is the equivalent of dropping it: the peer observes the
// disconnect on its next poll, and the last of the two handles to close
// releases whatever values are still buffered.

package spsc

// New builds a connected Sender/Receiver pair able to hold at least bound
// values before Send starts to spin (Capacity(bound)-1 values exactly).
// It panics on a negative bound or a zero-sized element type.
func New[T any](bound int) (*Sender[T], *Receiver[T]) {
	c := newCore[T](bound)
	return &Sender[T]{core: c}, &Receiver[T]{core: c}
}
