// control.go: process-wide stop flag for producer loops
// ============================================================================
// SHUTDOWN COORDINATION
// ============================================================================
//
// A channel has no cancellation API of its own: a producer stops by closing
// its Sender, and the consumer learns about it through the disconnect flag.
// This package supplies the "when" for that close.  Producer loops poll
// Stopped() between sends; a signal handler or a caller flips the flag with
// Shutdown().
//
// Threading model:
//   • Any goroutine may call Shutdown; it is idempotent.
//   • Producers poll Stopped with a single atomic load.

package control

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"passenger/debug"
)

// ============================================================================
// GLOBAL STATE
// ============================================================================

var stop uint32 // 1 = shutdown requested

// Shutdown requests every producer loop to stop.
func Shutdown() {
	atomic.StoreUint32(&stop, 1)
}

// Stopped reports whether Shutdown has been called.
func Stopped() bool {
	return atomic.LoadUint32(&stop) != 0
}

// Reset clears the stop flag so a new run can start.
func Reset() {
	atomic.StoreUint32(&stop, 0)
}

// ============================================================================
// SIGNAL HOOKUP
// ============================================================================

// ShutdownOnSignal calls Shutdown when one of sigs arrives.  The returned
// function detaches the handler.
func ShutdownOnSignal(sigs ...os.Signal) (cancel func()) {
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, sigs...)

	go func() {
		select {
		case sig := <-ch:
			debug.DropMessage("SIGNAL", "received "+sig.String()+", stopping producer")
			Shutdown()
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}
