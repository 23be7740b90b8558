// pinned.go
//
// Producer/consumer loops on dedicated OS threads.
//
//   • The goroutine is locked to its OS thread and, when core >= 0, the
//     thread is pinned to that logical CPU (sched_setaffinity on Linux,
//     no-op elsewhere).
//   • Producer feeds a Sender from a generator until the generator is
//     exhausted, control.Stopped() turns true, or the receiver disconnects;
//     it then closes the Sender so the consumer sees the disconnect.
//   • Consumer drains a Receiver until Recv reports the disconnect, then
//     closes the Receiver.
//   • done is closed exactly once when the loop has returned and its
//     handle is closed.
//
// The channel spins instead of parking, so each side should own a core:
// two pinned workers on the same CPU will still progress, but only at
// scheduler-tick granularity.

package pinned

import (
	"runtime"

	"passenger/control"
	"passenger/debug"
	"passenger/spsc"
	"passenger/utils"
)

// Go runs fn on a locked OS thread pinned to core and closes done after fn
// returns.  A negative core skips pinning.
func Go(core int, fn func(), done chan<- struct{}) {
	go func() {
		runtime.LockOSThread()
		defer func() {
			runtime.UnlockOSThread()
			close(done)
		}()

		if core >= 0 {
			PinCurrent(core)
		}
		fn()
	}()
}

// PinCurrent pins the calling OS thread to core.  The caller must hold
// runtime.LockOSThread.  Failure is logged and the thread stays unpinned.
func PinCurrent(core int) bool {
	if err := setAffinity(core); err != nil {
		debug.DropError("AFFINITY cpu "+utils.Itoa(core), err)
		return false
	}
	return true
}

// Producer sends next() values into tx from a pinned thread.  next returns
// false when there is nothing left to send.  The number of values
// delivered is written to *sent before done is closed, if sent is non-nil.
func Producer[T any](
	core int,
	tx *spsc.Sender[T],
	next func() (T, bool),
	sent *uint64,
	done chan<- struct{},
) {
	Go(core, func() {
		defer tx.Close()

		var n uint64
		defer func() {
			if sent != nil {
				*sent = n
			}
		}()

		for !control.Stopped() {
			v, ok := next()
			if !ok {
				return
			}
			if err := tx.Send(v); err != nil {
				return // receiver gone
			}
			n++
		}
	}, done)
}

// Consumer hands every value received on rx to fn from a pinned thread
// and returns once the sender has disconnected and the buffer is drained.
func Consumer[T any](
	core int,
	rx *spsc.Receiver[T],
	fn func(T),
	done chan<- struct{},
) {
	Go(core, func() {
		defer rx.Close()
		for {
			v, err := rx.Recv()
			if err != nil {
				return
			}
			fn(v)
		}
	}, done)
}
