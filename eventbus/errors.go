package eventbus

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState         = errors.New("invalid state")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrNilArgument          = errors.New("nil argument")
	ErrInvalidListener      = errors.New("invalid listener")
	ErrInvalidConfig        = errors.New("invalid bus configuration")
	ErrKindMismatch         = errors.New("event kind mismatch")
	ErrListenerPanic        = errors.New("listener panicked")
)

func nilArgf(name string) error {
	return fmt.Errorf("%w: %s is required", ErrNilArgument, name)
}

// ListenerError is returned from firing methods when a listener fails.
// It wraps the error returned by the listener, or a [*PanicError] if the listener panicked, so [errors.Is] and [errors.As] can be used to inspect the original failure.
type ListenerError struct {
	Kind     *Kind            // Kind is the concrete kind of the event being delivered.
	Priority Priority         // Priority is the priority the failing listener was registered with.
	Index    int              // Index is the position of the listener in the resolved delivery order.
	Err      error            // Err is the failure reported by the listener.
	Context  *DispatchContext // Context describes the dispatch in which the failure happened.
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %d (%s) failed handling %s: %v", e.Index, e.Priority, e.Kind, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}

// PanicError is produced when a listener panics during delivery.
type PanicError struct {
	Value any    // Value is the value passed to panic.
	Stack []byte // Stack is the stack trace captured at the time of the panic.
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v", ErrListenerPanic, e.Value)
}

// Is allows errors.Is to match a PanicError with ErrListenerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrListenerPanic
}

// Unwrap exposes the panic value if it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
