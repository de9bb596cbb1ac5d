package resilience

import (
	"context"
	"sync"
	"time"
)

// recordingObserver captures events for assertions.
type recordingObserver struct {
	mu          sync.Mutex
	started     []int
	failed      []failedEvent
	exhausted   int
	recovered   int
	transitions []transitionEvent
}

type failedEvent struct {
	attempt   int
	retryable bool
	nextDelay time.Duration
}

type transitionEvent struct {
	from, to  State
	failures  int
	threshold int
}

func (o *recordingObserver) AttemptStarted(_ context.Context, _ string, attempt int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, attempt)
}

func (o *recordingObserver) AttemptFailed(_ context.Context, _ string, attempt int, _ error, retryable bool, nextDelay time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, failedEvent{attempt, retryable, nextDelay})
}

func (o *recordingObserver) RetriesExhausted(_ context.Context, _ string, _ int, _ time.Duration, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.exhausted++
}

func (o *recordingObserver) Recovered(_ context.Context, _ string, _ int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recovered++
}

func (o *recordingObserver) StateChanged(_ context.Context, _ string, from, to State, failures, threshold int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transitions = append(o.transitions, transitionEvent{from, to, failures, threshold})
}

func (o *recordingObserver) retryDelays() []time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	var delays []time.Duration
	for _, f := range o.failed {
		if f.nextDelay > 0 {
			delays = append(delays, f.nextDelay)
		}
	}
	return delays
}
