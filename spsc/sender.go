// sender.go
//
// Producer side.  Only one goroutine may use a Sender; none of its methods
// are safe for concurrent use.

package spsc

// Sender is the producer handle returned by New.
type Sender[T any] struct {
	core   *core[T]
	head   uint64 // own cursor, mirrors core.head
	tail   uint64 // cached consumer cursor
	closed bool
}

// Send enqueues v, spinning while the buffer is full.  It fails only when
// the receiver is disconnected, returning a *SendError carrying v.
func (s *Sender[T]) Send(v T) error {
	c := s.core
	if s.closed || c.isDisconnected() {
		return &SendError[T]{Value: v}
	}

	next := c.wrap(s.head, 1)
	if next == s.tail {
		for {
			s.tail = c.tail.Load()
			if next != s.tail {
				break
			}
			if c.isDisconnected() {
				return &SendError[T]{Value: v}
			}
			cpuRelax()
		}
	}

	s.put(v, next)
	return nil
}

// TrySend enqueues v if a slot is free.  It never spins: on a full buffer
// it reloads the consumer cursor once and then gives up with a
// *TrySendError whose Disconnected field is false.
func (s *Sender[T]) TrySend(v T) error {
	c := s.core
	if s.closed || c.isDisconnected() {
		return &TrySendError[T]{Value: v, Disconnected: true}
	}

	next := c.wrap(s.head, 1)
	if next == s.tail {
		s.tail = c.tail.Load()
		if next == s.tail {
			return &TrySendError[T]{Value: v}
		}
	}

	s.put(v, next)
	return nil
}

// put writes the slot and then publishes it.
func (s *Sender[T]) put(v T, next uint64) {
	s.core.buf[s.head] = v
	s.core.head.Store(next)
	s.head = next
}

// Len returns a snapshot of the number of buffered values.
func (s *Sender[T]) Len() int {
	if s.closed {
		return 0
	}
	return s.core.len()
}

// Cap returns the maximum number of values the channel can hold.
func (s *Sender[T]) Cap() int {
	return int(s.core.mask)
}

// Close disconnects the channel.  The receiver still drains whatever was
// sent before the call and then sees ErrReceive / ErrDisconnected.
// Calling Close more than once is a no-op.
func (s *Sender[T]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.core.markDisconnected()
	s.core.release()
}
