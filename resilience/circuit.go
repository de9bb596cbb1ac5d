package resilience

import (
	"context"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the circuit is operating normally.
	StateClosed State = iota
	// StateOpen means the circuit is rejecting all requests.
	StateOpen
	// StateHalfOpen means the circuit is probing whether the guarded
	// operation has recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies the guarded operation in observer events.
	Name string

	// FailureThreshold is the number of consecutive failures before
	// opening the circuit. Default: 5
	FailureThreshold int

	// ResetTimeout is how long an open circuit waits before allowing
	// a recovery probe. Default: 30s
	ResetTimeout time.Duration

	// MonitoringWindow bounds how long past failures influence the
	// breaker. Failures older than the window are discarded even
	// without an intervening success. Default: 60s
	MonitoringWindow time.Duration

	// RecoveryThreshold is the number of successful probes required
	// to close a half-open circuit. Default: 2
	RecoveryThreshold int

	// IsFailure determines if an error should count as a failure.
	// Default: all non-nil errors are failures.
	IsFailure func(err error) bool

	// Observer receives state transition events. Default: NopObserver.
	Observer Observer

	// Clock supplies time. Default: SystemClock.
	Clock Clock
}

// CircuitBreaker guards a single operation with a three-state machine.
// Each guarded operation owns its own instance; the state is never
// shared between operations. All transitions happen under one mutex so
// concurrent callers of the same guarded operation cannot lose updates.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu                sync.Mutex
	state             State
	failures          int
	lastFailure       time.Time
	halfOpenSuccesses int
	probing           bool
}

// NewCircuitBreaker creates a new circuit breaker.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	// Apply defaults
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.MonitoringWindow <= 0 {
		config.MonitoringWindow = 60 * time.Second
	}
	if config.RecoveryThreshold <= 0 {
		config.RecoveryThreshold = 2
	}
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}
	if config.Observer == nil {
		config.Observer = NopObserver{}
	}
	if config.Clock == nil {
		config.Clock = SystemClock()
	}

	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
	}
}

// Execute runs the operation through the circuit breaker. Rejections
// carry a *CircuitOpenError and never invoke the operation; they also
// never count toward the failure tally.
func (cb *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	probe, err := cb.beforeRequest(ctx)
	if err != nil {
		return err
	}

	err = op(ctx)
	cb.afterRequest(ctx, probe, err)
	return err
}

// Name returns the name of the guarded operation.
func (cb *CircuitBreaker) Name() string {
	return cb.config.Name
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.expireWindowLocked(context.Background())
	return cb.state
}

// Reset forces the circuit back to closed and clears all counters.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.halfOpenSuccesses = 0
	cb.lastFailure = time.Time{}
	cb.probing = false
	if cb.state != StateClosed {
		cb.transitionLocked(context.Background(), StateClosed)
	}
}

func (cb *CircuitBreaker) beforeRequest(ctx context.Context) (probe bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.expireWindowLocked(ctx)

	switch cb.state {
	case StateOpen:
		if cb.config.Clock.Now().Sub(cb.lastFailure) >= cb.config.ResetTimeout {
			// Cooldown elapsed: this call becomes the recovery probe.
			cb.transitionLocked(ctx, StateHalfOpen)
			cb.probing = true
			return true, nil
		}
		return false, cb.openErrorLocked()

	case StateHalfOpen:
		if cb.probing {
			// One probe in flight at a time; extras are rejected.
			return false, cb.openErrorLocked()
		}
		cb.probing = true
		return true, nil
	}

	return false, nil
}

func (cb *CircuitBreaker) afterRequest(ctx context.Context, probe bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if probe {
		cb.probing = false
	}

	failed := err != nil && cb.config.IsFailure(err)

	switch cb.state {
	case StateClosed:
		if failed {
			cb.failures++
			cb.lastFailure = cb.config.Clock.Now()
			if cb.failures >= cb.config.FailureThreshold {
				cb.transitionLocked(ctx, StateOpen)
			}
		} else {
			cb.failures = 0
		}

	case StateHalfOpen:
		if failed {
			// Failed probe: re-open and re-arm the cooldown.
			cb.lastFailure = cb.config.Clock.Now()
			cb.transitionLocked(ctx, StateOpen)
		} else {
			cb.halfOpenSuccesses++
			if cb.halfOpenSuccesses >= cb.config.RecoveryThreshold {
				cb.failures = 0
				cb.transitionLocked(ctx, StateClosed)
			}
		}
	}
}

// expireWindowLocked discards failure history older than the
// monitoring window and forces the circuit closed, bounding how long
// stale failures influence the breaker.
func (cb *CircuitBreaker) expireWindowLocked(ctx context.Context) {
	if cb.lastFailure.IsZero() {
		return
	}
	if cb.config.Clock.Now().Sub(cb.lastFailure) <= cb.config.MonitoringWindow {
		return
	}

	cb.failures = 0
	cb.halfOpenSuccesses = 0
	cb.lastFailure = time.Time{}
	cb.probing = false
	if cb.state != StateClosed {
		cb.transitionLocked(ctx, StateClosed)
	}
}

func (cb *CircuitBreaker) transitionLocked(ctx context.Context, to State) {
	from := cb.state
	cb.state = to
	if to == StateHalfOpen {
		cb.halfOpenSuccesses = 0
	}
	cb.config.Observer.StateChanged(ctx, cb.config.Name, from, to, cb.failures, cb.config.FailureThreshold)
}

func (cb *CircuitBreaker) openErrorLocked() error {
	return &CircuitOpenError{
		Operation: cb.config.Name,
		Failures:  cb.failures,
		Threshold: cb.config.FailureThreshold,
	}
}

// Metrics returns current circuit breaker statistics.
func (cb *CircuitBreaker) Metrics() CircuitBreakerMetrics {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.expireWindowLocked(context.Background())

	return CircuitBreakerMetrics{
		State:             cb.state,
		Failures:          cb.failures,
		HalfOpenSuccesses: cb.halfOpenSuccesses,
		LastFailure:       cb.lastFailure,
	}
}

// CircuitBreakerMetrics contains circuit breaker statistics.
type CircuitBreakerMetrics struct {
	State             State
	Failures          int
	HalfOpenSuccesses int
	LastFailure       time.Time
}
