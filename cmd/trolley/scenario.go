package main

import (
	"context"
	"errors"
	"github.com/saylorsolutions/trolley/eventbus"
	"log/slog"
	"sync/atomic"
	"time"
)

var (
	orderKind  = eventbus.NewKind("order", nil)
	placedKind = eventbus.NewKind("placed", orderKind, eventbus.Cancellable())

	errSimulated = errors.New("simulated listener failure")
)

type orderEvent struct {
	*eventbus.Base
	ID int64
}

// counters are updated concurrently by listeners on a parallel bus.
type counters struct {
	deliveries [len(priorityLevels)]atomic.Uint64
	failures   [len(priorityLevels)]atomic.Uint64
	cancelled  atomic.Uint64
	fireErrors atomic.Uint64
	nextID     atomic.Int64
}

var priorityLevels = [...]eventbus.Priority{
	eventbus.Highest,
	eventbus.High,
	eventbus.Normal,
	eventbus.Low,
	eventbus.Lowest,
}

type scenario struct {
	conf     config
	bus      *eventbus.Bus
	counters *counters
	log      *slog.Logger
}

func newScenario(conf config, logger *slog.Logger) (*scenario, error) {
	s := &scenario{
		conf:     conf,
		counters: new(counters),
		log:      logger,
	}
	bus, err := eventbus.NewBuilder().
		Parallel(conf.Parallel).
		DispatchesIndividualEvents(conf.Individual).
		Workers(conf.Workers).
		Logger(logger).
		UncaughtHandler(s.uncaught).
		Build()
	if err != nil {
		return nil, err
	}
	s.bus = bus
	if err := s.registerListeners(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *scenario) uncaught(bus *eventbus.Bus, evt eventbus.Event, err error, ctx *eventbus.DispatchContext) {
	s.counters.failures[ctx.Entry.Priority].Add(1)
	if s.conf.Verbose {
		eventbus.LogUncaught(bus, evt, err, ctx)
	}
}

// registerListeners spreads listeners across every priority, alternating between the order and placed kinds.
// An auditing listener that receives cancelled events is always registered at the lowest priority.
func (s *scenario) registerListeners() error {
	for i := range s.conf.Listeners {
		var (
			priority = priorityLevels[i%len(priorityLevels)]
			kind     = orderKind
		)
		if i%2 == 1 {
			kind = placedKind
		}
		if _, err := s.bus.RegisterFunc(kind, s.listen(priority), eventbus.WithPriority(priority)); err != nil {
			return err
		}
	}
	_, err := s.bus.RegisterFunc(orderKind, func(evt eventbus.Event) error {
		if evt.IsCancelled() {
			s.counters.cancelled.Add(1)
		}
		return nil
	}, eventbus.WithPriority(eventbus.Lowest), eventbus.ReceiveCancelled())
	return err
}

func (s *scenario) listen(priority eventbus.Priority) func(eventbus.Event) error {
	return func(evt eventbus.Event) error {
		s.counters.deliveries[priority].Add(1)
		if s.conf.FailAt != nil && *s.conf.FailAt == priority {
			return errSimulated
		}
		if s.conf.CancelAt != nil && *s.conf.CancelAt == priority && evt.IsCancellable() {
			return evt.SetCancelled(true)
		}
		return nil
	}
}

func (s *scenario) newEvent() *orderEvent {
	return &orderEvent{
		Base: eventbus.NewBase(placedKind),
		ID:   s.counters.nextID.Add(1),
	}
}

// run fires events until the configured number of firing calls is reached, or ctx is cancelled.
// Even numbered calls fire a single event, odd numbered calls fire in bulk.
func (s *scenario) run(ctx context.Context) *report {
	start := time.Now()
	var fires int
	for fires = 0; fires < s.conf.Fires; fires++ {
		if ctx.Err() != nil {
			s.log.Info("Interrupted, stopping early", "fires", fires)
			break
		}
		var err error
		if fires%2 == 0 {
			err = s.bus.Fire(s.newEvent())
		} else {
			_, err = eventbus.FireAll(s.bus, placedKind, s.newEvent)
		}
		if err != nil {
			s.counters.fireErrors.Add(1)
			s.log.Debug("Firing call failed", "fire", fires, "error", err)
		}
	}
	return newReport(s, fires, time.Since(start))
}
