package eventbus

import (
	"fmt"
	"github.com/saylorsolutions/trolley/assert"
	"github.com/saylorsolutions/trolley/syncx"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
)

// Registry maps each [Kind] to the listeners registered for it, in delivery order.
//
// Reads never block: they load an immutable snapshot of the registry state.
// Writers are serialized, and publish a new state with the affected kind's listeners copied, so a reader either sees an entry completely or not at all.
// This also means that a listener may register or de-register other listeners while handling an event without deadlocking.
type Registry struct {
	mux   sync.Mutex
	seq   uint64
	state atomic.Pointer[registryState]
}

type registryState struct {
	byKind map[*Kind][]Entry
	count  int

	// resolved caches merged lineage lookups for this state only.
	resolved sync.Map
}

// NewRegistry creates an empty [Registry].
func NewRegistry() *Registry {
	r := new(Registry)
	r.state.Store(&registryState{byKind: map[*Kind][]Entry{}})
	return r
}

// Register adds a listener for events of kind, and any kind descending from it.
// The same listener may be registered more than once, which results in multiple deliveries.
func (r *Registry) Register(kind *Kind, listener Listener, opts ...RegisterOption) (Entry, error) {
	if kind == nil {
		return Entry{}, nilArgf("kind")
	}
	if err := validateListener(listener); err != nil {
		return Entry{}, err
	}
	reg := registration{priority: Normal}
	for _, opt := range opts {
		opt(&reg)
	}
	if !reg.priority.Valid() {
		return Entry{}, fmt.Errorf("%w: %s is out of range", ErrInvalidListener, reg.priority)
	}

	return syncx.LockFuncT(&r.mux, func() Entry {
		r.seq++
		entry := Entry{
			Kind:             kind,
			Priority:         reg.priority,
			ReceiveCancelled: reg.receiveCancelled,
			Listener:         listener,
			seq:              r.seq,
		}
		cur := r.state.Load()
		existing := cur.byKind[kind]
		// New entries always have the highest sequence, so they go after everything with the same priority.
		idx := sort.Search(len(existing), func(i int) bool {
			return existing[i].Priority > entry.Priority
		})
		entries := make([]Entry, 0, len(existing)+1)
		entries = append(entries, existing[:idx]...)
		entries = append(entries, entry)
		entries = append(entries, existing[idx:]...)
		assert.Sorted("registry entries in delivery order", entries, compareEntries)

		r.publish(cur, kind, entries, cur.count+1)
		return entry
	}), nil
}

// Deregister removes one registration of listener for exactly kind.
// Nothing happens if the listener isn't registered for kind.
func (r *Registry) Deregister(kind *Kind, listener Listener) (bool, error) {
	if kind == nil {
		return false, nilArgf("kind")
	}
	if isNil(listener) {
		return false, nilArgf("listener")
	}
	if !comparableListener(listener) {
		// Could never have been registered.
		return false, nil
	}
	return syncx.LockFuncT(&r.mux, func() bool {
		cur := r.state.Load()
		existing := cur.byKind[kind]
		idx := slices.IndexFunc(existing, func(e Entry) bool {
			return e.Listener == listener
		})
		if idx < 0 {
			return false
		}
		entries := make([]Entry, 0, len(existing)-1)
		entries = append(entries, existing[:idx]...)
		entries = append(entries, existing[idx+1:]...)
		r.publish(cur, kind, entries, cur.count-1)
		return true
	}), nil
}

// publish must be called with r.mux held.
func (r *Registry) publish(cur *registryState, kind *Kind, entries []Entry, count int) {
	next := &registryState{
		byKind: make(map[*Kind][]Entry, len(cur.byKind)+1),
		count:  count,
	}
	for k, v := range cur.byKind {
		next.byKind[k] = v
	}
	if len(entries) == 0 {
		delete(next.byKind, kind)
	} else {
		next.byKind[kind] = entries
	}
	r.state.Store(next)
}

// Snapshot returns a copy of the entries registered for exactly kind, in delivery order.
func (r *Registry) Snapshot(kind *Kind) []Entry {
	entries := r.state.Load().byKind[kind]
	if len(entries) == 0 {
		return nil
	}
	return slices.Clone(entries)
}

// Resolve returns the entries that should receive an event of kind, in delivery order.
// This includes entries registered for any ancestor of kind, merged by priority and registration order.
//
// The returned slice is shared and must not be modified.
func (r *Registry) Resolve(kind *Kind) []Entry {
	if kind == nil {
		return nil
	}
	state := r.state.Load()
	if cached, ok := state.resolved.Load(kind); ok {
		return cached.([]Entry)
	}
	var (
		merged  []Entry
		sources int
	)
	for _, k := range kind.lineage {
		entries := state.byKind[k]
		if len(entries) == 0 {
			continue
		}
		sources++
		merged = append(merged, entries...)
	}
	if sources > 1 {
		slices.SortFunc(merged, compareEntries)
	}
	actual, _ := state.resolved.LoadOrStore(kind, merged)
	return actual.([]Entry)
}

// Clear removes every registration.
func (r *Registry) Clear() {
	syncx.LockFunc(&r.mux, func() {
		r.state.Store(&registryState{byKind: map[*Kind][]Entry{}})
	})
}

// Len returns the total number of registrations.
func (r *Registry) Len() int {
	return r.state.Load().count
}

// Kinds returns the kinds that have at least one listener registered exactly for them.
func (r *Registry) Kinds() []*Kind {
	state := r.state.Load()
	kinds := make([]*Kind, 0, len(state.byKind))
	for k := range state.byKind {
		kinds = append(kinds, k)
	}
	return kinds
}
