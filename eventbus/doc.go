/*
Package eventbus provides an in-process event bus that delivers events to listeners in priority order, either serially or in parallel.

# Design Priorities

Here are the design priorities of the implementation:

  - Delivery order should be predictable. Listeners receive an event by priority, and in registration order for equal priority.
  - Firing should be synchronous. A firing call returns when every listener is done, even if listeners run in parallel.
  - Failures should be transparent. A listener failure is reported to a central handler and returned to the code that fired the event.
  - Registration should never wait on dispatch, and dispatch should never wait on registration.

# Kinds and Events

Every [Event] belongs to a [Kind].
Kinds form a hierarchy rooted at [Root], and a listener registered for a [Kind] also receives events of every descending [Kind].
This allows a listener to subscribe broadly or narrowly.
A [Kind] also declares whether its events can be cancelled with the [Cancellable] option.

	var (
		PlayerKind = eventbus.NewKind("player", nil)
		JoinKind   = eventbus.NewKind("join", PlayerKind, eventbus.Cancellable())
	)

Event types embed a [*Base] created with [NewBase] to provide the cancellation state.

# Listeners

A [Listener] is registered for a [Kind] with an optional [Priority] and the [ReceiveCancelled] option.
Once an event is cancelled, it's only delivered to further listeners that opted in with [ReceiveCancelled].
Use [Func] or [Typed] to adapt functions to listeners, and keep the returned [Listener] to de-register it later.

# Building a Bus

A [Bus] is created with a [Builder], which can only build once.

	bus, err := eventbus.NewBuilder().
		Parallel(true).
		DispatchesIndividualEvents(false).
		Build()

# Firing

Use [Bus.Fire] to fire a single event, and [FireAll] to fire events constructed by a factory.
How many instances [FireAll] constructs depends on [Bus.DispatchesIndividualEvents] and [Bus.Parallel].

With parallel dispatch the listeners for an event are split into contiguous batches in delivery order, and each batch runs on its own goroutine.
A cancellation is only guaranteed to be seen by later listeners in the same batch.
Any event shared by listeners in parallel must be safe for concurrent use.

# Failures

A listener fails by returning an error or panicking.
The failure is passed to the bus' [UncaughtHandler] along with a [*DispatchContext] describing the dispatch, and then returned from the firing call as a [*ListenerError].
With serial dispatch the first failure stops delivery to remaining listeners.
With parallel dispatch a failure stops its own batch, and the first failure to complete is returned once all batches are done.
*/
package eventbus
