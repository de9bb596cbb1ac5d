package resilience

import (
	"context"
	"time"
)

// Observer receives structured events from the retry executor and the
// circuit breaker. The resilience layer only emits; it never persists
// or interprets these events.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic; emission is best-effort.
type Observer interface {
	// AttemptStarted is called before each attempt of a named operation.
	AttemptStarted(ctx context.Context, op string, attempt int)

	// AttemptFailed is called after a failed attempt with the
	// classification verdict. nextDelay is the wait before the next
	// attempt, or zero when no further attempt will be made.
	AttemptFailed(ctx context.Context, op string, attempt int, err error, retryable bool, nextDelay time.Duration)

	// RetriesExhausted is called when all attempts are spent.
	RetriesExhausted(ctx context.Context, op string, attempts int, elapsed time.Duration, err error)

	// Recovered is called when an operation succeeds after at least one retry.
	Recovered(ctx context.Context, op string, attempts int, elapsed time.Duration)

	// StateChanged is called on circuit breaker transitions with the
	// failure count and threshold at the time of the change.
	StateChanged(ctx context.Context, op string, from, to State, failures, threshold int)
}

// NopObserver discards all events. It is the default when no Observer
// is configured.
type NopObserver struct{}

func (NopObserver) AttemptStarted(context.Context, string, int) {}

func (NopObserver) AttemptFailed(context.Context, string, int, error, bool, time.Duration) {}

func (NopObserver) RetriesExhausted(context.Context, string, int, time.Duration, error) {}

func (NopObserver) Recovered(context.Context, string, int, time.Duration) {}

func (NopObserver) StateChanged(context.Context, string, State, State, int, int) {}

var _ Observer = NopObserver{}
