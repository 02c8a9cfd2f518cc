package eventbus

import (
	"sync"
)

var (
	testParentKind = NewKind("parent", nil, Cancellable())
	testChildKind  = NewKind("child", testParentKind, Cancellable())
	testOtherKind  = NewKind("other", nil, Cancellable())
	testFixedKind  = NewKind("fixed", nil)
)

type testEvent struct {
	*Base
	ID int
}

func newTestEvent(kind *Kind) *testEvent {
	return &testEvent{Base: NewBase(kind)}
}

// recorder keeps track of the order that listeners are called in.
type recorder struct {
	mux   sync.Mutex
	calls []string
}

func (r *recorder) record(name string) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.calls = append(r.calls, name)
}

func (r *recorder) listener(name string) Listener {
	return Func(func(Event) error {
		r.record(name)
		return nil
	})
}

func (r *recorder) Calls() []string {
	r.mux.Lock()
	defer r.mux.Unlock()
	calls := make([]string, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// uncaughtCall is a captured call to an UncaughtHandler.
type uncaughtCall struct {
	bus *Bus
	evt Event
	err error
	ctx *DispatchContext
}

type uncaughtRecorder struct {
	mux   sync.Mutex
	calls []uncaughtCall
}

func (r *uncaughtRecorder) handle(bus *Bus, evt Event, err error, ctx *DispatchContext) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.calls = append(r.calls, uncaughtCall{bus: bus, evt: evt, err: err, ctx: ctx})
}

func (r *uncaughtRecorder) Calls() []uncaughtCall {
	r.mux.Lock()
	defer r.mux.Unlock()
	calls := make([]uncaughtCall, len(r.calls))
	copy(calls, r.calls)
	return calls
}

func testSerialBus(handler UncaughtHandler) *Bus {
	return NewBuilder().UncaughtHandler(handler).MustBuild()
}
