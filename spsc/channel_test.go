// ============================================================================
// SPSC CHANNEL CORRECTNESS SUITE
// ============================================================================
//
// Single-goroutine validation of the cursor protocol: capacity rounding,
// FIFO order, wraparound, non-blocking failure paths and the error values
// handed back to callers.

package spsc

import (
	"errors"
	"fmt"
	"testing"
)

// usable returns the expected number of values a channel built with bound
// holds before TrySend reports full.
func usable(bound int) int {
	p := 1
	for p < bound+1 {
		p <<= 1
	}
	if p < 2 {
		p = 2
	}
	return p - 1
}

// ============================================================================
// CONSTRUCTION
// ============================================================================

func TestCapacity(t *testing.T) {
	cases := []struct{ bound, want int }{
		{0, 2},
		{1, 2},
		{2, 4},
		{3, 4},
		{4, 8},
		{7, 8},
		{8, 16},
		{1000, 1024},
		{1023, 1024},
		{1024, 2048},
	}
	for _, tc := range cases {
		if got := Capacity(tc.bound); got != tc.want {
			t.Errorf("Capacity(%d) = %d, want %d", tc.bound, got, tc.want)
		}
	}
}

func TestNewPanics(t *testing.T) {
	t.Run("negative_bound", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("New(-1) should panic")
			}
		}()
		_, _ = New[int](-1)
	})
	t.Run("zero_sized_element", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("New[struct{}] should panic")
			}
		}()
		_, _ = New[struct{}](4)
	})
}

func TestUsableCapacity(t *testing.T) {
	for bound := 0; bound <= 40; bound++ {
		t.Run(fmt.Sprintf("bound_%d", bound), func(t *testing.T) {
			tx, rx := New[int](bound)
			defer tx.Close()
			defer rx.Close()

			n := 0
			for {
				err := tx.TrySend(n)
				if err == nil {
					n++
					continue
				}
				if !errors.Is(err, ErrFull) {
					t.Fatalf("TrySend failed with %v, want ErrFull", err)
				}
				break
			}
			if n != usable(bound) {
				t.Fatalf("held %d values, want %d", n, usable(bound))
			}
			if n < 1 {
				t.Fatal("usable capacity must be at least 1")
			}
			if tx.Cap() != n || rx.Cap() != n {
				t.Fatalf("Cap() = %d/%d, want %d", tx.Cap(), rx.Cap(), n)
			}
			if rx.Len() != n {
				t.Fatalf("Len() = %d, want %d", rx.Len(), n)
			}
		})
	}
}

// ============================================================================
// ORDERING & WRAPAROUND
// ============================================================================

// TestSmoke is the bound-2 walkthrough: three slots usable out of four.
func TestSmoke(t *testing.T) {
	tx, rx := New[int](2)
	defer tx.Close()
	defer rx.Close()

	for _, v := range []int{1, 2, 3} {
		if err := tx.Send(v); err != nil {
			t.Fatalf("Send(%d): %v", v, err)
		}
	}
	for _, want := range []int{1, 2, 3} {
		got, err := rx.Recv()
		if err != nil || got != want {
			t.Fatalf("Recv() = %d, %v; want %d", got, err, want)
		}
	}
	if err := tx.Send(4); err != nil {
		t.Fatalf("Send(4): %v", err)
	}
	if got, err := rx.Recv(); err != nil || got != 4 {
		t.Fatalf("Recv() = %d, %v; want 4", got, err)
	}
}

func TestTrySmoke(t *testing.T) {
	tx, rx := New[int](2)
	defer tx.Close()
	defer rx.Close()

	for round := 0; round < 3; round++ {
		for _, v := range []int{1, 2} {
			if err := tx.TrySend(v); err != nil {
				t.Fatalf("round %d: TrySend(%d): %v", round, v, err)
			}
		}
		for _, want := range []int{1, 2} {
			got, err := rx.TryRecv()
			if err != nil || got != want {
				t.Fatalf("round %d: TryRecv() = %d, %v; want %d", round, got, err, want)
			}
		}
	}
}

func TestFIFO(t *testing.T) {
	for _, bound := range []int{1, 2, 5, 16, 100} {
		t.Run(fmt.Sprintf("bound_%d", bound), func(t *testing.T) {
			tx, rx := New[string](bound)
			defer tx.Close()
			defer rx.Close()

			n := tx.Cap()
			for i := 0; i < n; i++ {
				if err := tx.Send(fmt.Sprint("v", i)); err != nil {
					t.Fatalf("Send %d: %v", i, err)
				}
			}
			for i := 0; i < n; i++ {
				got, err := rx.Recv()
				if err != nil {
					t.Fatalf("Recv %d: %v", i, err)
				}
				if want := fmt.Sprint("v", i); got != want {
					t.Fatalf("Recv %d = %q, want %q", i, got, want)
				}
			}
		})
	}
}

// TestWraparound fills the channel, frees one slot, refills it and then
// drains everything: the sequence must come back intact.
func TestWraparound(t *testing.T) {
	for _, bound := range []int{1, 2, 3, 7, 31} {
		t.Run(fmt.Sprintf("bound_%d", bound), func(t *testing.T) {
			tx, rx := New[int](bound)
			defer tx.Close()
			defer rx.Close()

			n := tx.Cap()
			for i := 0; i < n; i++ {
				if err := tx.TrySend(i); err != nil {
					t.Fatalf("TrySend %d: %v", i, err)
				}
			}
			if got, err := rx.Recv(); err != nil || got != 0 {
				t.Fatalf("first Recv = %d, %v; want 0", got, err)
			}
			if err := tx.TrySend(n); err != nil {
				t.Fatalf("TrySend after free slot: %v", err)
			}
			for want := 1; want <= n; want++ {
				got, err := rx.Recv()
				if err != nil || got != want {
					t.Fatalf("Recv = %d, %v; want %d", got, err, want)
				}
			}
		})
	}
}

// TestManyLaps runs many times around a small ring so the cursors wrap
// repeatedly.
func TestManyLaps(t *testing.T) {
	tx, rx := New[uint64](3)
	defer tx.Close()
	defer rx.Close()

	var next, want uint64
	for lap := 0; lap < 1000; lap++ {
		for tx.TrySend(next) == nil {
			next++
		}
		for {
			got, err := rx.TryRecv()
			if err != nil {
				if err != ErrEmpty {
					t.Fatalf("TryRecv: %v", err)
				}
				break
			}
			if got != want {
				t.Fatalf("lap %d: got %d, want %d", lap, got, want)
			}
			want++
		}
	}
	if want != next || want == 0 {
		t.Fatalf("received %d of %d values", want, next)
	}
}

// ============================================================================
// NON-BLOCKING FAILURE PATHS
// ============================================================================

func TestTrySendFullLeavesCursors(t *testing.T) {
	tx, rx := New[int](4)
	defer tx.Close()
	defer rx.Close()

	for i := 0; i < tx.Cap(); i++ {
		if err := tx.TrySend(i); err != nil {
			t.Fatalf("TrySend %d: %v", i, err)
		}
	}
	head, tail := tx.core.head.Load(), tx.core.tail.Load()

	err := tx.TrySend(99)
	var tse *TrySendError[int]
	if !errors.As(err, &tse) {
		t.Fatalf("TrySend on full channel returned %v", err)
	}
	if tse.Disconnected || tse.Value != 99 {
		t.Fatalf("got %+v, want Full carrying 99", *tse)
	}
	if !errors.Is(err, ErrFull) || errors.Is(err, ErrDisconnected) {
		t.Fatalf("error %v should match ErrFull only", err)
	}
	if h, tl := tx.core.head.Load(), tx.core.tail.Load(); h != head || tl != tail {
		t.Fatalf("cursors moved: head %d->%d tail %d->%d", head, h, tail, tl)
	}
}

func TestTryRecvEmptyLeavesCursors(t *testing.T) {
	tx, rx := New[int](4)
	defer tx.Close()
	defer rx.Close()

	_ = tx.Send(1)
	_, _ = rx.Recv()
	head, tail := rx.core.head.Load(), rx.core.tail.Load()

	if _, err := rx.TryRecv(); err != ErrEmpty {
		t.Fatalf("TryRecv on empty channel returned %v, want ErrEmpty", err)
	}
	if h, tl := rx.core.head.Load(), rx.core.tail.Load(); h != head || tl != tail {
		t.Fatalf("cursors moved: head %d->%d tail %d->%d", head, h, tail, tl)
	}
}

// ============================================================================
// DISCONNECT
// ============================================================================

func TestRecvDrainsAfterSenderClose(t *testing.T) {
	tx, rx := New[int](8)
	defer rx.Close()

	for i := 1; i <= 3; i++ {
		_ = tx.Send(i)
	}
	tx.Close()

	for want := 1; want <= 3; want++ {
		got, err := rx.Recv()
		if err != nil || got != want {
			t.Fatalf("Recv = %d, %v; want %d", got, err, want)
		}
	}
	if _, err := rx.Recv(); !errors.Is(err, ErrReceive) {
		t.Fatalf("Recv after drain returned %v, want ErrReceive", err)
	}
	if _, err := rx.TryRecv(); err != ErrDisconnected {
		t.Fatalf("TryRecv after drain returned %v, want ErrDisconnected", err)
	}
}

func TestTryRecvDrainsAfterSenderClose(t *testing.T) {
	tx, rx := New[int](8)
	defer rx.Close()

	_ = tx.Send(7)
	tx.Close()

	if got, err := rx.TryRecv(); err != nil || got != 7 {
		t.Fatalf("TryRecv = %d, %v; want 7", got, err)
	}
	if _, err := rx.TryRecv(); err != ErrDisconnected {
		t.Fatalf("TryRecv = %v, want ErrDisconnected", err)
	}
}

func TestSendAfterReceiverClose(t *testing.T) {
	tx, rx := New[int](8)
	defer tx.Close()
	rx.Close()

	err := tx.Send(5)
	var se *SendError[int]
	if !errors.As(err, &se) || se.Value != 5 {
		t.Fatalf("Send = %v, want SendError carrying 5", err)
	}
	if !errors.Is(err, ErrDisconnected) {
		t.Fatalf("%v should match ErrDisconnected", err)
	}

	err = tx.TrySend(6)
	var tse *TrySendError[int]
	if !errors.As(err, &tse) || !tse.Disconnected || tse.Value != 6 {
		t.Fatalf("TrySend = %v, want Disconnected carrying 6", err)
	}
	if !errors.Is(err, ErrDisconnected) || errors.Is(err, ErrFull) {
		t.Fatalf("%v should match ErrDisconnected only", err)
	}
}

func TestUseAfterClose(t *testing.T) {
	tx, rx := New[int](4)
	_ = tx.Send(1)
	tx.Close()
	rx.Close()

	if err := tx.Send(2); err == nil {
		t.Fatal("Send on closed sender should fail")
	}
	if _, err := rx.Recv(); err != ErrReceive {
		t.Fatalf("Recv on closed receiver = %v, want ErrReceive", err)
	}
	if _, err := rx.TryRecv(); err != ErrDisconnected {
		t.Fatalf("TryRecv on closed receiver = %v, want ErrDisconnected", err)
	}
	if tx.Len() != 0 || rx.Len() != 0 {
		t.Fatal("closed handles should report zero length")
	}

	// second Close must not touch the reference count again
	tx.Close()
	rx.Close()
	if n := tx.core.refs.Load(); n != 0 {
		t.Fatalf("refs = %d after double close, want 0", n)
	}
}

func TestErrorStrings(t *testing.T) {
	errs := []error{
		ErrFull,
		ErrEmpty,
		ErrDisconnected,
		ErrReceive,
		&SendError[int]{Value: 1},
		&TrySendError[int]{Value: 1},
		&TrySendError[int]{Value: 1, Disconnected: true},
	}
	for _, err := range errs {
		if msg := err.Error(); len(msg) < len("spsc: ") || msg[:6] != "spsc: " {
			t.Errorf("error %q lacks package prefix", msg)
		}
	}
}
