package eventbus

import (
	"fmt"
	"github.com/saylorsolutions/trolley/assert"
	"github.com/saylorsolutions/trolley/syncx"
	"log/slog"
	"runtime"
)

// Builder assembles the configuration for a [Bus].
// For convenience, the configuration methods return the same Builder, so calls may be chained.
//
// A Builder can only build one [Bus]. It's not safe to configure a Builder from multiple goroutines.
type Builder struct {
	built    syncx.Latch
	conf     Config
	uncaught UncaughtHandler
	logger   *slog.Logger
}

// NewBuilder creates a [Builder] for a serial [Bus] that shares instances when firing in bulk.
// Parallel dispatch defaults to using [runtime.GOMAXPROCS] workers.
func NewBuilder() *Builder {
	return &Builder{
		conf: Config{
			Workers: runtime.GOMAXPROCS(0),
		},
	}
}

// New creates a serial [Bus] with default settings.
func New() *Bus {
	return NewBuilder().MustBuild()
}

// Parallel sets whether the bus dispatches events in parallel.
func (b *Builder) Parallel(parallel bool) *Builder {
	b.conf.Parallel = parallel
	return b
}

// DispatchesIndividualEvents sets whether the bus constructs an event for each listener when firing with [FireAll].
func (b *Builder) DispatchesIndividualEvents(individual bool) *Builder {
	b.conf.DispatchesIndividualEvents = individual
	return b
}

// Workers sets the maximum number of goroutines used by each parallel firing call.
// This has no effect on a serial bus, but must still be at least 1.
func (b *Builder) Workers(workers int) *Builder {
	b.conf.Workers = workers
	return b
}

// UncaughtHandler sets the handler called when a listener fails. The default is [LogUncaught].
func (b *Builder) UncaughtHandler(handler UncaughtHandler) *Builder {
	b.uncaught = handler
	return b
}

// Logger sets the logger used by the bus. By default, log output is discarded.
func (b *Builder) Logger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

func (c Config) validate() error {
	errs := assert.CollectErrors().
		AddIf(c.Workers < 1, "workers must be at least 1, got %d", c.Workers)
	if err := errs.Result(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Build creates a [Bus] from the Builder's configuration.
// Build may only succeed once, every later call returns an error wrapping [ErrInvalidState].
// A configuration error doesn't consume the Builder, so it may be corrected and built again.
func (b *Builder) Build() (*Bus, error) {
	if b.built.Tripped() {
		return nil, fmt.Errorf("%w: builder has already built a bus", ErrInvalidState)
	}
	if err := b.conf.validate(); err != nil {
		return nil, err
	}
	if !b.built.Trip() {
		return nil, fmt.Errorf("%w: builder has already built a bus", ErrInvalidState)
	}
	bus := newBus(b.conf, b.uncaught, b.logger)
	bus.log.Debug("Built event bus",
		"parallel", b.conf.Parallel,
		"individual-events", b.conf.DispatchesIndividualEvents,
		"workers", b.conf.Workers,
	)
	return bus, nil
}

// MustBuild is the same as [Builder.Build], but panics if an error is returned.
func (b *Builder) MustBuild() *Bus {
	bus, err := b.Build()
	if err != nil {
		panic(err)
	}
	return bus
}
