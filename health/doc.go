// Package health exposes the health of reconnect guards.
//
// A Checker reports the state of one component; the guard-backed checker
// maps guard state onto the usual three levels: unhealthy before
// initialization, degraded while no handle is published, healthy
// otherwise. An Aggregator combines the checkers for several guards (one
// per remote endpoint) into a single readiness answer served over HTTP.
//
//	agg := health.NewAggregator()
//	agg.Register(health.NewGuardChecker("orders-db", ordersGuard))
//	agg.Register(health.NewGuardChecker("billing-db", billingGuard))
//
//	mux.Handle("/healthz", health.LivenessHandler())
//	mux.Handle("/readyz", health.ReadinessHandler(agg))
//	mux.Handle("/health", health.DetailedHandler(agg))
package health
