package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mrowl01/walletops/resilience"
)

// ResilienceObserver forwards retry and circuit breaker events to the
// logging and metrics stack. It is the standard resilience.Observer to
// hand to RetryConfig and CircuitBreakerConfig.
type ResilienceObserver struct {
	logger Logger

	attemptCount   metric.Int64Counter
	failureCount   metric.Int64Counter
	exhaustedCount metric.Int64Counter
	recoveredCount metric.Int64Counter
	transitions    metric.Int64Counter
}

// NewResilienceObserver builds a ResilienceObserver from the telemetry
// Observer's logger and meter.
func NewResilienceObserver(obs Observer) (*ResilienceObserver, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	meter := obs.Meter()

	attemptCount, err := meter.Int64Counter(
		"wallet.retry.attempts",
		metric.WithDescription("Total number of operation attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	failureCount, err := meter.Int64Counter(
		"wallet.retry.failures",
		metric.WithDescription("Failed attempts by retryability verdict"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	exhaustedCount, err := meter.Int64Counter(
		"wallet.retry.exhausted",
		metric.WithDescription("Operations that spent all retry attempts"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	recoveredCount, err := meter.Int64Counter(
		"wallet.retry.recovered",
		metric.WithDescription("Operations that succeeded after retrying"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter(
		"wallet.breaker.transitions",
		metric.WithDescription("Circuit breaker state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	return &ResilienceObserver{
		logger:         obs.Logger(),
		attemptCount:   attemptCount,
		failureCount:   failureCount,
		exhaustedCount: exhaustedCount,
		recoveredCount: recoveredCount,
		transitions:    transitions,
	}, nil
}

// AttemptStarted records the start of one attempt.
func (o *ResilienceObserver) AttemptStarted(ctx context.Context, op string, attempt int) {
	o.attemptCount.Add(ctx, 1, metric.WithAttributes(attribute.String("op.name", op)))
	o.logger.Debug(ctx, "attempt started",
		Field{Key: "op", Value: op},
		Field{Key: "attempt", Value: attempt},
	)
}

// AttemptFailed records a failed attempt with its retryability verdict.
func (o *ResilienceObserver) AttemptFailed(ctx context.Context, op string, attempt int, err error, retryable bool, nextDelay time.Duration) {
	o.failureCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op.name", op),
		attribute.Bool("retryable", retryable),
	))

	fields := []Field{
		{Key: "op", Value: op},
		{Key: "attempt", Value: attempt},
		{Key: "error", Value: err.Error()},
		{Key: "retryable", Value: retryable},
	}
	if nextDelay > 0 {
		fields = append(fields, Field{Key: "next_delay_ms", Value: nextDelay.Milliseconds()})
	}
	o.logger.Warn(ctx, "attempt failed", fields...)
}

// RetriesExhausted records an operation that spent all its attempts.
func (o *ResilienceObserver) RetriesExhausted(ctx context.Context, op string, attempts int, elapsed time.Duration, err error) {
	o.exhaustedCount.Add(ctx, 1, metric.WithAttributes(attribute.String("op.name", op)))
	o.logger.Error(ctx, "retries exhausted",
		Field{Key: "op", Value: op},
		Field{Key: "attempts", Value: attempts},
		Field{Key: "elapsed_ms", Value: elapsed.Milliseconds()},
		Field{Key: "error", Value: err.Error()},
	)
}

// Recovered records an operation that succeeded after retrying.
func (o *ResilienceObserver) Recovered(ctx context.Context, op string, attempts int, elapsed time.Duration) {
	o.recoveredCount.Add(ctx, 1, metric.WithAttributes(attribute.String("op.name", op)))
	o.logger.Info(ctx, "recovered after retries",
		Field{Key: "op", Value: op},
		Field{Key: "attempts", Value: attempts},
		Field{Key: "elapsed_ms", Value: elapsed.Milliseconds()},
	)
}

// StateChanged records a circuit breaker transition.
func (o *ResilienceObserver) StateChanged(ctx context.Context, op string, from, to resilience.State, failures, threshold int) {
	o.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op.name", op),
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	))

	fields := []Field{
		{Key: "op", Value: op},
		{Key: "from", Value: from.String()},
		{Key: "to", Value: to.String()},
		{Key: "failures", Value: failures},
		{Key: "threshold", Value: threshold},
	}
	if to == resilience.StateOpen {
		o.logger.Error(ctx, "circuit opened", fields...)
	} else {
		o.logger.Info(ctx, "circuit state changed", fields...)
	}
}

var _ resilience.Observer = (*ResilienceObserver)(nil)
