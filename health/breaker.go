package health

import (
	"context"
	"fmt"

	"github.com/mrowl01/walletops/resilience"
)

// BreakerChecker reports the state of a circuit breaker as a health
// check. An open circuit means the guarded upstream is being rejected
// outright, so readiness probes should see it as unhealthy. A half-open
// circuit is probing its way back and reports degraded.
type BreakerChecker struct {
	breaker *resilience.CircuitBreaker
}

// NewBreakerChecker wraps a circuit breaker as a health checker.
func NewBreakerChecker(breaker *resilience.CircuitBreaker) *BreakerChecker {
	return &BreakerChecker{breaker: breaker}
}

// Name returns the name of the underlying breaker.
func (c *BreakerChecker) Name() string {
	return c.breaker.Name()
}

// Check maps the breaker state to a health result.
func (c *BreakerChecker) Check(ctx context.Context) Result {
	m := c.breaker.Metrics()

	details := map[string]any{
		"state":    m.State.String(),
		"failures": m.Failures,
	}
	if !m.LastFailure.IsZero() {
		details["last_failure"] = m.LastFailure.UTC().Format("2006-01-02T15:04:05Z07:00")
	}

	switch m.State {
	case resilience.StateOpen:
		return Unhealthy(
			fmt.Sprintf("circuit open after %d failures", m.Failures),
			ErrCheckFailed,
		).WithDetails(details)

	case resilience.StateHalfOpen:
		details["half_open_successes"] = m.HalfOpenSuccesses
		return Degraded("circuit half-open, probing upstream").WithDetails(details)

	default:
		return Healthy("circuit closed").WithDetails(details)
	}
}
