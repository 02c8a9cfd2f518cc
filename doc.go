/*
Package trolley is an in-process event bus. Listeners register for a kind of event, and are called in priority order when an event of that kind, or any kind descending from it, is fired.

The bus itself lives in the eventbus package. The syncx and assert packages hold the small concurrency and validation helpers it's built on. The cli package structures commands and their usage, and cmd/trolley is a CLI for trying out dispatch settings with synthetic events.
*/
package trolley
