// core.go
//
// Shared state of one bounded single-producer/single-consumer channel.
// The core owns the slot array, the two published cursors and the
// disconnect flag.  Sender and Receiver each hold one reference; the
// handle that drops the last reference drains whatever is still live
// between tail and head and releases the slots.
//
// Occupancy is derived from the cursors alone: slots in [tail, head)
// hold live values, every other slot is logically empty.  One slot is
// always left unused so that head == tail means empty and
// head+1 == tail means full.

package spsc

import (
	"math"
	"math/bits"
	"sync/atomic"
	"unsafe"
)

// maxCapacity keeps bound+1 and the rounding shift clear of overflow.
const maxCapacity = 1 << 62

// Releaser is implemented by element types that own resources outside the
// Go heap (file descriptors, pooled buffers, ...).  Values still buffered
// when the channel is torn down get Release called exactly once.  Values
// handed out by Recv/TryRecv belong to the caller and are never released
// by the channel.  Release may have a pointer receiver on a struct element
// type; teardown calls it on the slot in place.
type Releaser interface {
	Release()
}

// core is referenced by exactly one Sender and one Receiver.  head is
// written only by the producer and tail only by the consumer; the
// padding keeps the two cursors on separate cache lines.
type core[T any] struct {
	_    [64]byte
	head atomic.Uint64 // next slot the producer writes
	_    [56]byte
	tail atomic.Uint64 // next slot the consumer reads
	_    [56]byte

	disconnected atomic.Bool
	refs         atomic.Int32

	mask uint64 // capacity-1, capacity is a power of two
	buf  []T
}

// Capacity returns the number of slots allocated for a requested bound:
// the next power of two >= max(bound+1, 2).  One of those slots is
// reserved, so a channel built with bound holds at most Capacity(bound)-1
// values.
func Capacity(bound int) int {
	if bound < 0 {
		panic("spsc: negative bound")
	}
	if uint64(bound) >= maxCapacity {
		panic("spsc: bound too large")
	}
	n := max(uint64(bound)+1, 2)
	slots := uint64(1) << bits.Len64(n-1)
	if slots > math.MaxInt {
		panic("spsc: bound too large")
	}
	return int(slots)
}

// newCore allocates the slot array.  A failed allocation is a fatal
// runtime error, there is no channel left to report it through.
func newCore[T any](bound int) *core[T] {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		panic("spsc: zero-sized element types are not supported")
	}
	n := Capacity(bound)
	c := &core[T]{
		mask: uint64(n - 1),
		buf:  make([]T, n),
	}
	c.refs.Store(2)
	return c
}

// wrap returns (index + addend) mod capacity.
//
//go:inline
func (c *core[T]) wrap(index, addend uint64) uint64 {
	return (index + addend) & c.mask
}

// markDisconnected is idempotent; both handles call it when they close.
func (c *core[T]) markDisconnected() {
	c.disconnected.Store(true)
}

// isDisconnected reports whether either handle has closed.
func (c *core[T]) isDisconnected() bool {
	return c.disconnected.Load()
}

// len is a snapshot; it may be stale by the time the caller looks at it.
func (c *core[T]) len() int {
	return int((c.head.Load() - c.tail.Load()) & c.mask)
}

// release drops one handle reference and tears the core down when it was
// the last one.  The decrement orders every prior write of the departing
// handle before the teardown performed by the other.
func (c *core[T]) release() {
	if c.refs.Add(-1) == 0 {
		c.teardown()
	}
}

// teardown releases every value between tail and head, oldest first, and
// then drops the slot array.  Runs exactly once.
func (c *core[T]) teardown() {
	var zero T
	head := c.head.Load()
	tail := c.tail.Load()
	for tail != head {
		if r, ok := any(&c.buf[tail]).(Releaser); ok {
			r.Release()
		} else if r, ok := any(c.buf[tail]).(Releaser); ok {
			r.Release()
		}
		c.buf[tail] = zero
		tail = c.wrap(tail, 1)
	}
	c.tail.Store(tail)
	c.buf = nil
}
