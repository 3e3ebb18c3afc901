// Package observe provides the telemetry surface for connguard: a minimal
// structured logger, OpenTelemetry tracer and meter bootstrap, and the
// metrics recorded by reconnect guards.
//
// The package is optional. A guard constructed without telemetry falls
// back to no-op implementations; an embedding application that wants
// exported telemetry builds an Observer once and hands its parts to each
// guard:
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "orders",
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//	if err != nil {
//	    return err
//	}
//	defer obs.Shutdown(ctx)
//
//	g := guard.New(guard.Config{
//	    Connect: dial,
//	    Logger:  obs.Logger(),
//	    Metrics: obs.Metrics(),
//	    Tracer:  obs.Tracer(),
//	})
package observe
