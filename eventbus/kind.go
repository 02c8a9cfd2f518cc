package eventbus

import (
	"strings"
)

// Root is the kind that every other [Kind] descends from.
// Listeners registered for Root receive every event fired on a bus.
var Root = newRootKind()

func newRootKind() *Kind {
	k := &Kind{name: "event"}
	k.lineage = []*Kind{k}
	return k
}

// Kind describes a family of events.
// A Kind has a position in a hierarchy that's used to match listeners polymorphically, and declares whether its events may be cancelled.
//
// Kinds are immutable once created, and are compared by identity.
// They're intended to be declared once, usually as package level variables.
type Kind struct {
	name        string
	parent      *Kind
	cancellable bool
	lineage     []*Kind
}

// KindOption configures a [Kind] at creation time.
type KindOption func(k *Kind)

// Cancellable marks events of a [Kind] as cancellable.
// Cancellability is not inherited, every Kind declares it for itself.
func Cancellable() KindOption {
	return func(k *Kind) {
		k.cancellable = true
	}
}

// NewKind creates a new [Kind] descending from parent.
// A nil parent is the same as passing [Root].
//
// NewKind will panic if name is empty, since this is almost always a declaration mistake.
func NewKind(name string, parent *Kind, opts ...KindOption) *Kind {
	if len(strings.TrimSpace(name)) == 0 {
		panic("eventbus: empty kind name")
	}
	if parent == nil {
		parent = Root
	}
	k := &Kind{name: name, parent: parent}
	for _, opt := range opts {
		opt(k)
	}
	k.lineage = make([]*Kind, 0, len(parent.lineage)+1)
	k.lineage = append(k.lineage, k)
	k.lineage = append(k.lineage, parent.lineage...)
	return k
}

// Name returns the name the [Kind] was created with.
func (k *Kind) Name() string {
	return k.name
}

// Parent returns the parent [Kind], or nil for [Root].
func (k *Kind) Parent() *Kind {
	return k.parent
}

// Cancellable reports whether events of this [Kind] may be cancelled.
func (k *Kind) Cancellable() bool {
	if k == nil {
		return false
	}
	return k.cancellable
}

// Is reports whether k is other, or descends from other.
func (k *Kind) Is(other *Kind) bool {
	if k == nil || other == nil {
		return false
	}
	for _, ancestor := range k.lineage {
		if ancestor == other {
			return true
		}
	}
	return false
}

// Lineage returns k followed by all of its ancestors, ending with [Root].
func (k *Kind) Lineage() []*Kind {
	lineage := make([]*Kind, len(k.lineage))
	copy(lineage, k.lineage)
	return lineage
}

// String renders the full path of the [Kind] from [Root], separated by dots.
func (k *Kind) String() string {
	if k == nil {
		return "<nil kind>"
	}
	names := make([]string, len(k.lineage))
	for i, ancestor := range k.lineage {
		names[len(names)-1-i] = ancestor.name
	}
	return strings.Join(names, ".")
}
