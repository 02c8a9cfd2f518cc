package eventbus

import (
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/panics"
	"io"
	"log/slog"
	"sync/atomic"
)

// Config is the immutable configuration of a [Bus], fixed when it's built.
type Config struct {
	Parallel                   bool // Parallel is true if listeners are invoked by a pool of workers instead of the calling goroutine.
	DispatchesIndividualEvents bool // DispatchesIndividualEvents is true if bulk firing constructs one event per listener.
	Workers                    int  // Workers bounds the number of goroutines used by each parallel firing call.
}

// Stats is a point-in-time view of a [Bus]' delivery counters.
type Stats struct {
	Fired     uint64 // Fired is the number of firing calls.
	Instances uint64 // Instances is the number of event instances fired, including those constructed by factories.
	Delivered uint64 // Delivered is the number of listener invocations.
	Skipped   uint64 // Skipped is the number of deliveries skipped because the event was cancelled.
	Failed    uint64 // Failed is the number of listener invocations that returned an error or panicked.
}

type busStats struct {
	fired     atomic.Uint64
	instances atomic.Uint64
	delivered atomic.Uint64
	skipped   atomic.Uint64
	failed    atomic.Uint64
}

// Bus fires events to the listeners registered on it.
// A Bus is created with a [Builder], and is safe to use from multiple goroutines.
//
// Firing is always synchronous: a firing method returns when every listener that should receive the event has finished.
// When a listener fails, the failure is reported to the bus' [UncaughtHandler], and returned from the firing method as a [*ListenerError].
type Bus struct {
	id       uuid.UUID
	conf     Config
	registry *Registry
	strategy strategy
	uncaught UncaughtHandler
	log      *slog.Logger
	stats    busStats
}

func newBus(conf Config, uncaught UncaughtHandler, logger *slog.Logger) *Bus {
	if uncaught == nil {
		uncaught = LogUncaught
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	id := uuid.New()
	b := &Bus{
		id:       id,
		conf:     conf,
		registry: NewRegistry(),
		uncaught: uncaught,
		log:      logger.With("bus", id.String()),
	}
	if conf.Parallel {
		b.strategy = parallelStrategy{workers: conf.Workers}
	} else {
		b.strategy = serialStrategy{}
	}
	return b
}

// ID uniquely identifies the [Bus] in logs and dispatch contexts.
func (b *Bus) ID() uuid.UUID {
	return b.id
}

// Parallel reports whether this bus dispatches events in parallel.
func (b *Bus) Parallel() bool {
	return b.conf.Parallel
}

// DispatchesIndividualEvents reports whether this bus constructs an event for each listener when firing with [FireAll].
func (b *Bus) DispatchesIndividualEvents() bool {
	return b.conf.DispatchesIndividualEvents
}

// Workers returns the maximum number of goroutines used for a parallel firing call.
func (b *Bus) Workers() int {
	return b.conf.Workers
}

// Config returns the configuration the bus was built with.
func (b *Bus) Config() Config {
	return b.conf
}

// Logger returns the logger used by the bus.
func (b *Bus) Logger() *slog.Logger {
	return b.log
}

// Stats returns the current delivery counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Fired:     b.stats.fired.Load(),
		Instances: b.stats.instances.Load(),
		Delivered: b.stats.delivered.Load(),
		Skipped:   b.stats.skipped.Load(),
		Failed:    b.stats.failed.Load(),
	}
}

// Register registers a listener for events of kind, including events of any kind descending from it.
func (b *Bus) Register(kind *Kind, listener Listener, opts ...RegisterOption) error {
	entry, err := b.registry.Register(kind, listener, opts...)
	if err != nil {
		return err
	}
	b.log.Debug("Registered listener",
		"kind", kind.String(),
		"priority", entry.Priority.String(),
		"receive-cancelled", entry.ReceiveCancelled,
		"seq", entry.seq,
	)
	return nil
}

// RegisterFunc registers a function as a listener.
// The returned [Listener] may be used to de-register it.
func (b *Bus) RegisterFunc(kind *Kind, fn func(evt Event) error, opts ...RegisterOption) (Listener, error) {
	if fn == nil {
		return nil, nilArgf("listener function")
	}
	listener := Func(fn)
	if err := b.Register(kind, listener, opts...); err != nil {
		return nil, err
	}
	return listener, nil
}

// Deregister removes a listener previously registered for exactly kind.
// If the listener isn't registered for kind, nothing happens.
func (b *Bus) Deregister(kind *Kind, listener Listener) error {
	removed, err := b.registry.Deregister(kind, listener)
	if err != nil {
		return err
	}
	if removed {
		b.log.Debug("Deregistered listener", "kind", kind.String())
	}
	return nil
}

// DeregisterAll removes every listener from the bus.
func (b *Bus) DeregisterAll() {
	b.registry.Clear()
	b.log.Debug("Deregistered all listeners")
}

// Listeners returns the listeners that would receive an event of kind, in delivery order.
func (b *Bus) Listeners(kind *Kind) []Entry {
	resolved := b.registry.Resolve(kind)
	if len(resolved) == 0 {
		return nil
	}
	entries := make([]Entry, len(resolved))
	copy(entries, resolved)
	return entries
}

func (b *Bus) reportUncaught(evt Event, err error, ctx *DispatchContext) {
	var catcher panics.Catcher
	catcher.Try(func() {
		b.uncaught(b, evt, err, ctx)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		b.log.Error("Uncaught handler panicked",
			"panic", recovered.Value,
			"error", err,
			"context", ctx.String(),
		)
	}
}
