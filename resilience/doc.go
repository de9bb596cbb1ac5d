// Package resilience guards calls to upstream wallet and ledger
// providers against transient failure.
//
// The two cooperating cores are the retry executor and the circuit
// breaker. They are independent and composable: a caller may guard an
// operation with a breaker and separately wrap invocations in retry.
//
// # Retry
//
// The retry executor re-invokes a fallible operation with exponential
// backoff and optional jitter. Failures are classified by IsRetryable:
// provider responses with status 429/500/502/503/504, network-level
// failures, and a small set of message fragments count as transient;
// everything else propagates on first occurrence.
//
//	r := resilience.NewRetry(resilience.RetryConfig{
//	    Name:          "wallet.class.create",
//	    MaxAttempts:   3,
//	    InitialDelay:  100 * time.Millisecond,
//	    BackoffFactor: 2.0,
//	    Jitter:        true,
//	})
//	err := r.Execute(ctx, func(ctx context.Context) error {
//	    return client.CreateLoyaltyClass(ctx, class)
//	})
//
// # Circuit Breaker
//
// The breaker short-circuits calls after sustained failure and probes
// recovery after a cooldown. Each guarded operation gets its own
// breaker instance.
//
//	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    Name:             "wallet.object.get",
//	    FailureThreshold: 3,
//	    ResetTimeout:     30 * time.Second,
//	})
//	err := cb.Execute(ctx, func(ctx context.Context) error {
//	    return client.GetLoyaltyObject(ctx, id)
//	})
//
// Rejections satisfy errors.Is(err, ErrCircuitOpen) and never invoke
// the guarded operation.
//
// # Composition
//
// Timeout, Bulkhead, and RateLimiter round out the toolkit. Executor
// chains any subset around one operation:
//
//	exec := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(cb),
//	    resilience.WithRetry(r),
//	    resilience.WithTimeout(5*time.Second),
//	)
//	err := exec.Execute(ctx, callProvider)
//
// Both cores accept an injectable Clock and an Observer so callers can
// test timing deterministically and forward attempt and transition
// events to their logging and metrics stack.
package resilience
