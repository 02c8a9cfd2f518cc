package eventbus

import (
	"errors"
	"fmt"
)

// UserEvent is an application event that embeds a Base to implement Event.
type UserEvent struct {
	*Base
	Name string
}

var (
	UserKind   = NewKind("user", nil)
	SignUpKind = NewKind("sign-up", UserKind, Cancellable())
)

func ExampleBus_Fire() {
	// A Builder is used to configure a Bus. By default, a Bus is serial.
	bus := NewBuilder().MustBuild()

	// Listeners registered for UserKind receive events of any kind descending from it.
	_ = bus.Register(UserKind, Typed(func(evt *UserEvent) error {
		fmt.Printf("audit: %s event for %s\n", evt.Kind().Name(), evt.Name)
		return nil
	}), WithPriority(Lowest), ReceiveCancelled())

	// Higher priority listeners are called first, and may cancel a cancellable event.
	_ = bus.Register(SignUpKind, Typed(func(evt *UserEvent) error {
		if evt.Name == "spammer" {
			fmt.Println("rejecting", evt.Name)
			return evt.Cancel()
		}
		return nil
	}), WithPriority(Highest))

	// Listeners that haven't opted in to receive cancelled events are skipped.
	_ = bus.Register(SignUpKind, Typed(func(evt *UserEvent) error {
		fmt.Println("welcome,", evt.Name)
		return nil
	}))

	for _, name := range []string{"alice", "spammer"} {
		if err := bus.Fire(&UserEvent{Base: NewBase(SignUpKind), Name: name}); err != nil {
			fmt.Println("Something bad happened!")
		}
	}

	// Output:
	// welcome, alice
	// audit: sign-up event for alice
	// rejecting spammer
	// audit: sign-up event for spammer
}

func ExampleFireAll() {
	// With individual events, the factory is called once for each listener.
	bus := NewBuilder().DispatchesIndividualEvents(true).MustBuild()
	for range 3 {
		_, _ = bus.RegisterFunc(UserKind, func(evt Event) error {
			return nil
		})
	}

	var count int
	events, err := FireAll(bus, UserKind, func() *UserEvent {
		count++
		return &UserEvent{Base: NewBase(UserKind), Name: fmt.Sprintf("user-%d", count)}
	})
	if err != nil {
		fmt.Println("Something bad happened!")
	}
	for _, evt := range events {
		fmt.Println(evt.Name)
	}

	// Output:
	// user-1
	// user-2
	// user-3
}

func ExampleUncaughtHandler() {
	errRejected := errors.New("rejected")

	// The UncaughtHandler is called for every listener failure, before the failure is returned.
	bus := NewBuilder().
		UncaughtHandler(func(_ *Bus, evt Event, err error, ctx *DispatchContext) {
			fmt.Printf("handler: %s listener %d failed: %v\n", ctx.Strategy, ctx.Index, err)
		}).
		MustBuild()
	_, _ = bus.RegisterFunc(UserKind, func(Event) error {
		return errRejected
	})

	err := bus.Fire(&UserEvent{Base: NewBase(UserKind)})
	fmt.Println("caller:", errors.Is(err, errRejected))

	// Output:
	// handler: serial listener 0 failed: rejected
	// caller: true
}
