// errors.go
//
// Failure values returned by the channel handles.  Every failed send hands
// the unsent value back so nothing is lost silently.

package spsc

import "errors"

// ErrFull is matched (errors.Is) by a TrySendError raised because no slot
// was free.
var ErrFull = errors.New("spsc: channel full")

// TryReceiveError is returned by TryRecv.
type TryReceiveError uint8

const (
	// ErrEmpty: nothing buffered, the sender is still connected.
	ErrEmpty TryReceiveError = iota + 1
	// ErrDisconnected: the peer handle is closed.  Also matched by SendError,
	// disconnected TrySendError values and ErrReceive.
	ErrDisconnected
)

func (e TryReceiveError) Error() string {
	switch e {
	case ErrEmpty:
		return "spsc: channel empty"
	case ErrDisconnected:
		return "spsc: channel disconnected"
	}
	return "spsc: unknown receive error"
}

// ReceiveError is returned by Recv once the channel is disconnected and
// every value published before the disconnect has been drained.
type ReceiveError struct{}

// ErrReceive is the only ReceiveError value.
var ErrReceive error = ReceiveError{}

func (ReceiveError) Error() string { return "spsc: receive on disconnected channel" }

func (ReceiveError) Is(target error) bool { return target == ErrDisconnected }

// SendError is returned by Send when the receiver has gone away.  Value is
// the element that could not be delivered.
type SendError[T any] struct {
	Value T
}

func (e *SendError[T]) Error() string { return "spsc: send on disconnected channel" }

func (e *SendError[T]) Is(target error) bool { return target == ErrDisconnected }

// TrySendError is returned by TrySend.  Disconnected distinguishes a gone
// receiver from a full buffer; Value is the element that was not sent.
type TrySendError[T any] struct {
	Value        T
	Disconnected bool
}

func (e *TrySendError[T]) Error() string {
	if e.Disconnected {
		return "spsc: send on disconnected channel"
	}
	return "spsc: channel full"
}

func (e *TrySendError[T]) Is(target error) bool {
	if e.Disconnected {
		return target == ErrDisconnected
	}
	return target == ErrFull
}
