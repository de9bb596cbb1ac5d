package health

import (
	"context"
	"errors"
	"time"

	"github.com/mrowl01/walletops/resilience"
)

// UpstreamCheckerConfig configures an upstream reachability check.
type UpstreamCheckerConfig struct {
	// Name identifies the upstream in aggregated results.
	Name string

	// Ping verifies the upstream is reachable. A nil error means
	// reachable.
	Ping func(ctx context.Context) error

	// Timeout bounds a single ping.
	// Default: 5 seconds
	Timeout time.Duration
}

// UpstreamChecker probes a remote dependency, typically a wallet
// provider API, by running a lightweight ping behind a timeout.
type UpstreamChecker struct {
	config UpstreamCheckerConfig
}

// NewUpstreamChecker creates a checker for a remote dependency.
func NewUpstreamChecker(config UpstreamCheckerConfig) *UpstreamChecker {
	if config.Name == "" {
		config.Name = "upstream"
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &UpstreamChecker{config: config}
}

// Name returns the configured upstream name.
func (c *UpstreamChecker) Name() string {
	return c.config.Name
}

// Check pings the upstream. A timed-out ping reports degraded rather
// than unhealthy, because a slow upstream is usually still serving.
func (c *UpstreamChecker) Check(ctx context.Context) Result {
	start := time.Now()

	err := resilience.ExecuteWithTimeout(ctx, c.config.Timeout, c.config.Ping)
	elapsed := time.Since(start)

	details := map[string]any{
		"latency_ms": elapsed.Milliseconds(),
	}

	switch {
	case err == nil:
		return Healthy("upstream reachable").WithDetails(details)
	case errors.Is(err, resilience.ErrTimeout):
		return Degraded("upstream ping timed out").WithDetails(details)
	default:
		return Unhealthy("upstream unreachable", err).WithDetails(details)
	}
}
