package eventbus

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/saylorsolutions/trolley/syncx"
	"sync"
)

// Fire delivers a single event to every listener registered for its kind or any of its ancestors.
//
// With parallel dispatch every listener receives the same instance, so the event must be safe for concurrent use.
// Cancellation by one listener is only guaranteed to be observed by listeners in the same worker batch that run after it.
func (b *Bus) Fire(evt Event) error {
	if isNil(evt) {
		return nilArgf("event")
	}
	kind := evt.Kind()
	if kind == nil {
		return nilArgf("event kind")
	}
	b.stats.fired.Add(1)
	b.stats.instances.Add(1)
	return b.strategy.deliver(&delivery{
		bus:     b,
		id:      uuid.New(),
		entries: b.registry.Resolve(kind),
		source:  staticSource(evt),
	})
}

// FireAll fires events of kind constructed with factory, and returns every instance that was fired.
// Every instance constructed by factory must be of exactly kind, or [ErrKindMismatch] is returned.
//
// If the bus dispatches individual events, then factory is called once for each listener, and each listener receives its own instance.
// Otherwise, a serial bus calls factory exactly once, and the instance is shared by all listeners.
// A parallel bus calls factory once for each worker batch, which is never more than the number of listeners, and the instance is shared by the listeners in that batch.
// In that case instances must be safe for concurrent use.
//
// On a parallel bus, factory is called concurrently from the worker goroutines, so it must be safe to call concurrently too.
// A panic in factory is recovered and returned as an error wrapping a [*PanicError], regardless of the dispatch strategy.
//
// If an error occurs, then the instances constructed so far are returned along with the error.
func FireAll[E Event](b *Bus, kind *Kind, factory func() E) ([]E, error) {
	switch {
	case b == nil:
		return nil, nilArgf("bus")
	case kind == nil:
		return nil, nilArgf("kind")
	case factory == nil:
		return nil, nilArgf("event factory")
	}
	var (
		mux   sync.Mutex
		fired []E
	)
	next := func() (Event, error) {
		evt := factory()
		if isNil(evt) {
			return nil, fmt.Errorf("%w: factory for kind %s returned a nil event", ErrNilArgument, kind)
		}
		if evt.Kind() != kind {
			return nil, fmt.Errorf("%w: factory for kind %s constructed an event of kind %s", ErrKindMismatch, kind, evt.Kind())
		}
		b.stats.instances.Add(1)
		syncx.LockFunc(&mux, func() {
			fired = append(fired, evt)
		})
		return evt, nil
	}
	b.stats.fired.Add(1)
	err := b.strategy.deliver(&delivery{
		bus:     b,
		id:      uuid.New(),
		entries: b.registry.Resolve(kind),
		source: source{
			perListener: b.conf.DispatchesIndividualEvents,
			next:        next,
		},
	})
	return syncx.LockFuncT(&mux, func() []E {
		return fired
	}), err
}
