package resilience

import (
	"errors"
	"fmt"
)

// Sentinel errors for resilience operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrRetriesExhausted is returned when max retry attempts are spent.
	ErrRetriesExhausted = errors.New("resilience: retries exhausted")

	// ErrRateLimitExceeded is returned when the rate limit is exceeded.
	ErrRateLimitExceeded = errors.New("resilience: rate limit exceeded")

	// ErrBulkheadFull is returned when the bulkhead is at capacity.
	ErrBulkheadFull = errors.New("resilience: bulkhead at capacity")

	// ErrTimeout is returned when an operation times out.
	ErrTimeout = errors.New("resilience: operation timed out")
)

// CircuitOpenError is the rejection produced by an open circuit. It
// carries the failure count and threshold so callers can report why
// the circuit tripped without invoking the guarded operation.
type CircuitOpenError struct {
	Operation string
	Failures  int
	Threshold int
}

func (e *CircuitOpenError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("resilience: circuit breaker is open (%d/%d failures)", e.Failures, e.Threshold)
	}
	return fmt.Sprintf("resilience: circuit breaker for %q is open (%d/%d failures)", e.Operation, e.Failures, e.Threshold)
}

// Is reports a match against ErrCircuitOpen so callers can use
// errors.Is without the concrete type.
func (e *CircuitOpenError) Is(target error) bool { return target == ErrCircuitOpen }

// ExhaustedError is returned when the retry executor runs out of
// attempts. It wraps the last error the operation produced.
type ExhaustedError struct {
	Operation string
	Attempts  int
	Last      error
}

func (e *ExhaustedError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("resilience: retries exhausted after %d attempts: %v", e.Attempts, e.Last)
	}
	return fmt.Sprintf("resilience: retries exhausted for %q after %d attempts: %v", e.Operation, e.Attempts, e.Last)
}

// Is reports a match against ErrRetriesExhausted.
func (e *ExhaustedError) Is(target error) bool { return target == ErrRetriesExhausted }

// Unwrap returns the last error produced by the operation.
func (e *ExhaustedError) Unwrap() error { return e.Last }
