package eventbus

import (
	"fmt"
	"github.com/google/uuid"
	"strings"
)

// UncaughtHandler is called when a listener fails while handling an event.
// After the handler returns, the failure is still returned to the caller that fired the event.
//
// With parallel dispatch, an UncaughtHandler may be called concurrently from multiple goroutines.
type UncaughtHandler func(bus *Bus, evt Event, err error, ctx *DispatchContext)

// LogUncaught is the default [UncaughtHandler], which logs the failure at error level with the bus' logger.
func LogUncaught(bus *Bus, evt Event, err error, ctx *DispatchContext) {
	bus.Logger().Error("Uncaught listener error",
		"kind", evt.Kind().String(),
		"error", err,
		"context", ctx.String(),
	)
}

// DispatchContext describes where a listener failure happened, for debugging.
// Its String method renders all available details.
type DispatchContext struct {
	DispatchID uuid.UUID // DispatchID identifies the firing call, and is shared by all failures within it.
	BusID      uuid.UUID // BusID identifies the bus that the event was fired on.
	Strategy   string    // Strategy is the name of the dispatch strategy, "serial" or "parallel".
	Kind       *Kind     // Kind is the concrete kind of the event.
	Entry      Entry     // Entry is the failing listener's registration.
	Index      int       // Index is the position of the listener in the resolved delivery order.
	Batch      int       // Batch is the worker batch that ran the listener. This is always 0 for serial dispatch.
	Stack      []byte    // Stack is the stack trace of a listener panic, if the listener panicked.
}

func (c *DispatchContext) String() string {
	if c == nil {
		return "<no dispatch context>"
	}
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("dispatch=%s bus=%s strategy=%s kind=%s listener=%d priority=%s registered-for=%s batch=%d",
		c.DispatchID, c.BusID, c.Strategy, c.Kind, c.Index, c.Entry.Priority, c.Entry.Kind, c.Batch))
	if c.Entry.Listener != nil {
		buf.WriteString(fmt.Sprintf(" listener-type=%T", c.Entry.Listener))
	}
	if len(c.Stack) > 0 {
		buf.WriteString("\n")
		buf.Write(c.Stack)
	}
	return buf.String()
}
