package resilience

import (
	"context"
	"math/rand/v2"
	"time"
)

// minJitteredDelay floors jittered waits so the random perturbation
// cannot collapse a delay to nearly nothing.
const minJitteredDelay = 100 * time.Millisecond

// RetryConfig configures the retry behavior. It is plain value
// configuration; the executor keeps no state between invocations.
type RetryConfig struct {
	// Name identifies the operation in observer events.
	Name string

	// MaxAttempts is the maximum number of attempts (including initial).
	// Default: 3
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	// Default: 100ms
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries.
	// Default: 30s
	MaxDelay time.Duration

	// BackoffFactor multiplies the delay after each retry.
	// Default: 2.0
	BackoffFactor float64

	// Jitter perturbs each delay by up to 25% in either direction to
	// prevent synchronized retry storms.
	Jitter bool

	// RetryIf determines if an error should trigger a retry.
	// Default: IsRetryable.
	RetryIf func(err error) bool

	// Observer receives attempt events. Default: NopObserver.
	Observer Observer

	// Clock supplies time. Default: SystemClock.
	Clock Clock
}

// Retry implements retry with exponential backoff around a single
// fallible operation.
type Retry struct {
	config RetryConfig
}

// NewRetry creates a new retry executor.
func NewRetry(config RetryConfig) *Retry {
	// Apply defaults
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = 100 * time.Millisecond
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 30 * time.Second
	}
	if config.MaxDelay < config.InitialDelay {
		config.MaxDelay = config.InitialDelay
	}
	if config.BackoffFactor < 1 {
		config.BackoffFactor = 2.0
	}
	if config.RetryIf == nil {
		config.RetryIf = IsRetryable
	}
	if config.Observer == nil {
		config.Observer = NopObserver{}
	}
	if config.Clock == nil {
		config.Clock = SystemClock()
	}

	return &Retry{config: config}
}

// Execute runs the operation, retrying transient failures with
// exponential backoff until MaxAttempts is reached. Attempts are
// strictly sequential: the next attempt never starts before the
// previous one settles and its delay elapses.
//
// Non-retryable errors propagate on first occurrence. When attempts
// are spent the last error is returned wrapped in an *ExhaustedError,
// matchable with errors.Is(err, ErrRetriesExhausted).
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	cfg := r.config
	start := cfg.Clock.Now()
	delay := cfg.InitialDelay

	for attempt := 1; ; attempt++ {
		cfg.Observer.AttemptStarted(ctx, cfg.Name, attempt)

		err := op(ctx)
		if err == nil {
			if attempt > 1 {
				cfg.Observer.Recovered(ctx, cfg.Name, attempt, cfg.Clock.Now().Sub(start))
			}
			return nil
		}

		if !cfg.RetryIf(err) {
			cfg.Observer.AttemptFailed(ctx, cfg.Name, attempt, err, false, 0)
			return err
		}

		if attempt >= cfg.MaxAttempts {
			cfg.Observer.AttemptFailed(ctx, cfg.Name, attempt, err, true, 0)
			cfg.Observer.RetriesExhausted(ctx, cfg.Name, attempt, cfg.Clock.Now().Sub(start), err)
			return &ExhaustedError{Operation: cfg.Name, Attempts: attempt, Last: err}
		}

		wait := calculateDelay(delay, cfg)
		cfg.Observer.AttemptFailed(ctx, cfg.Name, attempt, err, true, wait)

		// Wait for the delay or context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-cfg.Clock.After(wait):
		}

		delay = time.Duration(float64(delay) * cfg.BackoffFactor)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
}

// calculateDelay applies jitter to the current base delay. With jitter
// disabled the base passes through unchanged. With jitter enabled the
// result is perturbed by a uniform offset in [-25%, +25%] of the base
// and floored at minJitteredDelay.
func calculateDelay(base time.Duration, cfg RetryConfig) time.Duration {
	if !cfg.Jitter || base <= 0 {
		return base
	}

	// #nosec G404 -- jitter is non-cryptographic timing variance.
	offset := (rand.Float64() - 0.5) * 0.5 * float64(base)
	jittered := base + time.Duration(offset)
	if jittered < minJitteredDelay {
		jittered = minJitteredDelay
	}
	return jittered
}

// Config returns the retry configuration with defaults applied.
func (r *Retry) Config() RetryConfig {
	return r.config
}
