package eventbus

import (
	"fmt"
	"reflect"
)

// Listener receives events from a [Bus].
//
// A returned error is reported to the bus' [UncaughtHandler], and then returned to the caller that fired the event.
// Listeners are compared by identity when they're de-registered, so implementations should typically use pointer receivers.
type Listener interface {
	HandleEvent(evt Event) error
}

type funcListener struct {
	fn func(Event) error
}

func (l *funcListener) HandleEvent(evt Event) error {
	return l.fn(evt)
}

// Func adapts a function to a [Listener].
// Functions can't be compared in Go, so the returned [Listener] should be kept if it needs to be de-registered later.
//
// Func will panic if fn is nil.
func Func(fn func(evt Event) error) Listener {
	if fn == nil {
		panic("eventbus: nil listener function")
	}
	return &funcListener{fn: fn}
}

type typedListener[E Event] struct {
	fn func(E) error
}

func (l *typedListener[E]) HandleEvent(evt Event) error {
	typed, ok := evt.(E)
	if !ok {
		// Registered for an ancestor kind and received a sibling's event, which this listener can't handle.
		return nil
	}
	return l.fn(typed)
}

// Typed adapts a function accepting a concrete event type to a [Listener].
// Events that aren't of type E are ignored, which allows a typed listener to be registered for an ancestor [Kind].
//
// Typed will panic if fn is nil.
func Typed[E Event](fn func(evt E) error) Listener {
	if fn == nil {
		panic("eventbus: nil listener function")
	}
	return &typedListener[E]{fn: fn}
}

// Entry is a listener registration.
type Entry struct {
	Kind             *Kind    // Kind is the kind the listener was registered for.
	Priority         Priority // Priority determines the delivery order of the listener.
	ReceiveCancelled bool     // ReceiveCancelled is true if the listener still receives events after they've been cancelled.
	Listener         Listener // Listener is the registered listener.

	seq uint64
}

// Seq returns the registration sequence number of the [Entry].
// It's unique within a [Registry], and increases with each registration.
func (e Entry) Seq() uint64 {
	return e.seq
}

// compareEntries orders entries by priority, and then by registration order.
func compareEntries(a, b Entry) int {
	switch {
	case a.Priority < b.Priority:
		return -1
	case a.Priority > b.Priority:
		return 1
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	}
	return 0
}

type registration struct {
	priority         Priority
	receiveCancelled bool
}

// RegisterOption configures a listener registration.
type RegisterOption func(reg *registration)

// WithPriority sets the priority of the listener. The default is [Normal].
func WithPriority(priority Priority) RegisterOption {
	return func(reg *registration) {
		reg.priority = priority
	}
}

// ReceiveCancelled opts the listener in to receiving events that have been cancelled by an earlier listener.
func ReceiveCancelled() RegisterOption {
	return func(reg *registration) {
		reg.receiveCancelled = true
	}
}

func validateListener(listener Listener) error {
	if isNil(listener) {
		return nilArgf("listener")
	}
	if !reflect.TypeOf(listener).Comparable() {
		return fmt.Errorf("%w: listener type %T is not comparable, use a pointer or eventbus.Func", ErrInvalidListener, listener)
	}
	return nil
}

func comparableListener(listener Listener) bool {
	return !isNil(listener) && reflect.TypeOf(listener).Comparable()
}

func isNil(val any) bool {
	if val == nil {
		return true
	}
	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
