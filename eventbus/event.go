package eventbus

import (
	"fmt"
	"sync/atomic"
)

// Event is a value that can be fired on a [Bus].
// Most implementations should embed a [*Base] to satisfy this interface.
type Event interface {
	// Kind returns the concrete kind of the event, which determines the listeners that receive it.
	Kind() *Kind
	// IsCancelled reports whether the event has been cancelled.
	// A cancelled event is not delivered to further listeners unless they opted in with [ReceiveCancelled].
	IsCancelled() bool
	// IsCancellable reports whether the event's kind allows cancellation.
	IsCancellable() bool
	// SetCancelled sets the cancellation state of the event.
	// An error wrapping [ErrUnsupportedOperation] is returned if the event is not cancellable.
	SetCancelled(cancelled bool) error
}

var _ Event = (*Base)(nil)

// Base provides the cancellation state for an [Event], and should be embedded as a pointer in event types.
//
//	type PlayerJoined struct {
//		*eventbus.Base
//		Name string
//	}
//
//	evt := &PlayerJoined{Base: eventbus.NewBase(PlayerJoinedKind), Name: "steve"}
//
// The cancellation flag is safe to read and write from multiple goroutines.
type Base struct {
	kind      *Kind
	cancelled atomic.Bool
}

// NewBase creates a [Base] of the given [Kind].
// A nil kind is the same as passing [Root].
func NewBase(kind *Kind) *Base {
	if kind == nil {
		kind = Root
	}
	return &Base{kind: kind}
}

func (b *Base) Kind() *Kind {
	if b == nil {
		return nil
	}
	return b.kind
}

func (b *Base) IsCancelled() bool {
	if b == nil {
		return false
	}
	return b.cancelled.Load()
}

func (b *Base) IsCancellable() bool {
	if b == nil {
		return false
	}
	return b.kind.Cancellable()
}

// SetCancelled changes the cancellation state of the event.
//
// Cancellation is one-way: once cancelled, attempting to clear the flag fails with [ErrInvalidState].
// Clearing the flag of an event that isn't cancelled does nothing.
// Any call on an event that isn't cancellable fails with [ErrUnsupportedOperation], regardless of the argument.
func (b *Base) SetCancelled(cancelled bool) error {
	if b == nil {
		return nilArgf("event base")
	}
	if !b.kind.Cancellable() {
		return fmt.Errorf("%w: attempted to set cancellation state on a non-cancellable event of kind %s", ErrUnsupportedOperation, b.kind)
	}
	if cancelled {
		b.cancelled.Store(true)
		return nil
	}
	if b.cancelled.Load() {
		return fmt.Errorf("%w: event of kind %s has already been cancelled", ErrInvalidState, b.kind)
	}
	return nil
}

// Cancel is shorthand for SetCancelled(true).
func (b *Base) Cancel() error {
	return b.SetCancelled(true)
}
