// Package health exposes the state of wallet upstream dependencies as
// liveness and readiness probes.
//
// A Checker reports the health of one component. The package ships two
// domain checkers: BreakerChecker surfaces a circuit breaker's state
// (an open circuit fails readiness, a half-open one reports degraded),
// and UpstreamChecker pings a provider API behind a timeout.
//
//	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    Name: "google-wallet",
//	})
//
//	agg := health.NewAggregator()
//	agg.Register(health.NewBreakerChecker(breaker))
//	agg.Register(health.NewUpstreamChecker(health.UpstreamCheckerConfig{
//	    Name: "wallet-api",
//	    Ping: pingWalletAPI,
//	}))
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, agg)
//
// RegisterHandlers mounts /livez, /readyz, and /healthz. The readiness
// probe treats a degraded set as ready so a recovering circuit does
// not take the service out of rotation.
package health
