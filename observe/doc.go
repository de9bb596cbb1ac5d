// Package observe provides logging, metrics, and tracing for upstream
// wallet calls and the resilience layer that guards them.
//
// # Setup
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "walletops",
//	    Version:     "1.0.0",
//	    Tracing:     observe.TracingConfig{Enabled: true, Exporter: "otlp", SamplePct: 0.1},
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//	if err != nil {
//	    return err
//	}
//	defer obs.Shutdown(ctx)
//
// # Resilience events
//
// NewResilienceObserver adapts the telemetry stack to the
// resilience.Observer interface, so retry attempts, exhaustions, and
// circuit breaker transitions land in logs and metrics:
//
//	ro, err := observe.NewResilienceObserver(obs)
//	retry := resilience.NewRetry(resilience.RetryConfig{
//	    Name:     "wallet.class.create",
//	    Observer: ro,
//	})
//
// # Wrapping calls
//
// Middleware wraps a single upstream call with a span, call metrics,
// and a structured log line. The wrapped function matches the shape
// the resilience patterns execute:
//
//	mw, err := observe.MiddlewareFromObserver(obs)
//	call := mw.Wrap(observe.OpMeta{Name: "loyalty.object.get", Provider: "google-wallet"}, doGet)
//	err = retry.Execute(ctx, call)
//
// Fields holding save tokens or provider credentials are redacted
// before log entries are written.
package observe
