// receiver.go
//
// Consumer side.  Only one goroutine may use a Receiver; none of its
// methods are safe for concurrent use.

package spsc

// Receiver is the consumer handle returned by New.
type Receiver[T any] struct {
	core   *core[T]
	head   uint64 // cached producer cursor
	tail   uint64 // own cursor, mirrors core.tail
	closed bool
}

// Recv dequeues the oldest value, spinning while the buffer is empty.
// Values sent before the sender closed are always delivered; ErrReceive is
// returned only once the buffer is empty and the channel is disconnected.
func (r *Receiver[T]) Recv() (T, error) {
	var zero T
	if r.closed {
		return zero, ErrReceive
	}

	c := r.core
	if r.head == r.tail {
		for {
			r.head = c.head.Load()
			if r.head != r.tail {
				break
			}
			if c.isDisconnected() {
				// the sender publishes before it disconnects
				if r.head = c.head.Load(); r.head != r.tail {
					break
				}
				return zero, ErrReceive
			}
			cpuRelax()
		}
	}

	return r.take(), nil
}

// TryRecv dequeues the oldest value if one is buffered.  It never spins:
// an empty buffer yields ErrEmpty, or ErrDisconnected when the peer is
// gone as well.
func (r *Receiver[T]) TryRecv() (T, error) {
	var zero T
	if r.closed {
		return zero, ErrDisconnected
	}

	c := r.core
	if r.head == r.tail {
		r.head = c.head.Load()
		if r.head == r.tail {
			if !c.isDisconnected() {
				return zero, ErrEmpty
			}
			if r.head = c.head.Load(); r.head == r.tail {
				return zero, ErrDisconnected
			}
		}
	}

	return r.take(), nil
}

// take moves the value at tail out, clears the slot so the GC does not
// keep it reachable, and publishes the freed slot.
func (r *Receiver[T]) take() T {
	var zero T
	c := r.core
	v := c.buf[r.tail]
	c.buf[r.tail] = zero
	r.tail = c.wrap(r.tail, 1)
	c.tail.Store(r.tail)
	return v
}

// Len returns a snapshot of the number of buffered values.
func (r *Receiver[T]) Len() int {
	if r.closed {
		return 0
	}
	return r.core.len()
}

// Cap returns the maximum number of values the channel can hold.
func (r *Receiver[T]) Cap() int {
	return int(r.core.mask)
}

// Close disconnects the channel; a spinning Send returns on its next poll.
// Values that were never received are released when the sender closes
// too.  Calling Close more than once is a no-op.
func (r *Receiver[T]) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.core.markDisconnected()
	r.core.release()
}
