package eventbus

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/saylorsolutions/trolley/assert"
	"github.com/sourcegraph/conc/panics"
	"golang.org/x/sync/errgroup"
)

const (
	strategySerial   = "serial"
	strategyParallel = "parallel"
)

// source supplies the event instances for a delivery.
// If perListener is false, then next is called once for each batch, and the instance is shared by every listener in the batch.
type source struct {
	perListener bool
	next        func() (Event, error)
}

func staticSource(evt Event) source {
	return source{next: func() (Event, error) {
		return evt, nil
	}}
}

type delivery struct {
	bus     *Bus
	id      uuid.UUID
	entries []Entry
	source  source
}

type strategy interface {
	name() string
	deliver(d *delivery) error
}

type serialStrategy struct{}

func (serialStrategy) name() string {
	return strategySerial
}

func (s serialStrategy) deliver(d *delivery) error {
	return d.run(s.name(), 0, 0, d.entries)
}

type parallelStrategy struct {
	workers int
}

func (parallelStrategy) name() string {
	return strategyParallel
}

func (s parallelStrategy) deliver(d *delivery) error {
	batches := partition(d.entries, s.workers)
	if len(batches) == 1 {
		return d.run(s.name(), 0, 0, batches[0].entries)
	}
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, b := range batches {
		g.Go(func() error {
			return d.run(s.name(), i, b.offset, b.entries)
		})
	}
	return g.Wait()
}

type batch struct {
	offset  int
	entries []Entry
}

// partition splits entries into at most workers contiguous batches of near-equal size, preserving delivery order.
// There is always at least one batch, even if there are no entries.
func partition(entries []Entry, workers int) []batch {
	n := len(entries)
	count := min(max(workers, 1), n)
	if count <= 1 {
		return []batch{{entries: entries}}
	}
	var (
		batches = make([]batch, count)
		size    = n / count
		extra   = n % count
		offset  int
	)
	for i := range batches {
		end := offset + size
		if i < extra {
			end++
		}
		batches[i] = batch{offset: offset, entries: entries[offset:end]}
		offset = end
	}
	assert.True("batches cover every entry", offset == n)
	return batches
}

// run delivers events to entries in order, stopping at the first failure.
func (d *delivery) run(strategy string, batch, offset int, entries []Entry) error {
	var (
		evt Event
		err error
	)
	if !d.source.perListener {
		if evt, err = d.next(); err != nil {
			return err
		}
	}
	for i, entry := range entries {
		if d.source.perListener {
			if evt, err = d.next(); err != nil {
				return err
			}
		}
		if evt.IsCancelled() && !entry.ReceiveCancelled {
			d.bus.stats.skipped.Add(1)
			continue
		}
		if err := d.invoke(strategy, evt, entry, batch, offset+i); err != nil {
			return err
		}
	}
	return nil
}

// next gets the next event from the source.
// A panicking factory is returned as a [*PanicError], since it may be running on a worker goroutine.
func (d *delivery) next() (evt Event, err error) {
	var catcher panics.Catcher
	catcher.Try(func() {
		evt, err = d.source.next()
	})
	if recovered := catcher.Recovered(); recovered != nil {
		return nil, fmt.Errorf("event factory failed: %w", &PanicError{Value: recovered.Value, Stack: recovered.Stack})
	}
	return evt, err
}

func (d *delivery) invoke(strategy string, evt Event, entry Entry, batch, index int) error {
	var (
		err     error
		catcher panics.Catcher
		stack   []byte
	)
	d.bus.stats.delivered.Add(1)
	catcher.Try(func() {
		err = entry.Listener.HandleEvent(evt)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = &PanicError{Value: recovered.Value, Stack: recovered.Stack}
		stack = recovered.Stack
	}
	if err == nil {
		return nil
	}
	d.bus.stats.failed.Add(1)
	ctx := &DispatchContext{
		DispatchID: d.id,
		BusID:      d.bus.id,
		Strategy:   strategy,
		Kind:       evt.Kind(),
		Entry:      entry,
		Index:      index,
		Batch:      batch,
		Stack:      stack,
	}
	d.bus.reportUncaught(evt, err, ctx)
	return &ListenerError{
		Kind:     evt.Kind(),
		Priority: entry.Priority,
		Index:    index,
		Err:      err,
		Context:  ctx,
	}
}
