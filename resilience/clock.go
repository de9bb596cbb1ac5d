package resilience

import "time"

// Clock abstracts the time source used by the resilience patterns.
// Injecting a fake clock lets tests drive reset timeouts and backoff
// delays without real waiting.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - After must deliver exactly one value on the returned channel.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that delivers the current time once d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// systemClock is the default Clock backed by the time package.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock returns the wall-clock implementation used when no Clock
// is configured.
func SystemClock() Clock { return systemClock{} }
