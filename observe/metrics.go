package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records reconnect-guard activity.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic; recording is best-effort.
type Metrics interface {
	// RecordReport records a failure report. suppressed is true when the
	// report was dropped on the rate-limit fast path.
	RecordReport(ctx context.Context, suppressed bool)

	// RecordGateTimeout records a bounded gate acquisition that timed
	// out. gate is "reconnect" or "connect".
	RecordGateTimeout(ctx context.Context, gate string)

	// RecordReconnect records a completed reconnect attempt with its
	// duration and outcome.
	RecordReconnect(ctx context.Context, duration time.Duration, err error)
}

// metricsImpl is the concrete OpenTelemetry-backed implementation.
type metricsImpl struct {
	reports      metric.Int64Counter
	gateTimeouts metric.Int64Counter
	reconnects   metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates a Metrics instance recording on the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	reports, err := meter.Int64Counter(
		"guard.reports.total",
		metric.WithDescription("Total number of failure reports"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, err
	}

	gateTimeouts, err := meter.Int64Counter(
		"guard.gate.timeouts",
		metric.WithDescription("Gate acquisitions that timed out"),
		metric.WithUnit("{timeout}"),
	)
	if err != nil {
		return nil, err
	}

	reconnects, err := meter.Int64Counter(
		"guard.reconnects.total",
		metric.WithDescription("Completed reconnect attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"guard.reconnect.duration_ms",
		metric.WithDescription("Reconnect duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		reports:      reports,
		gateTimeouts: gateTimeouts,
		reconnects:   reconnects,
		durationHist: durationHist,
	}, nil
}

func (m *metricsImpl) RecordReport(ctx context.Context, suppressed bool) {
	m.reports.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("suppressed", suppressed),
	))
}

func (m *metricsImpl) RecordGateTimeout(ctx context.Context, gate string) {
	m.gateTimeouts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("gate", gate),
	))
}

func (m *metricsImpl) RecordReconnect(ctx context.Context, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.Bool("error", err != nil))
	m.reconnects.Add(ctx, 1, opt)
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// NopMetrics returns a Metrics implementation that records nothing.
func NopMetrics() Metrics {
	return nopMetrics{}
}

type nopMetrics struct{}

func (nopMetrics) RecordReport(ctx context.Context, suppressed bool)  {}
func (nopMetrics) RecordGateTimeout(ctx context.Context, gate string) {}

func (nopMetrics) RecordReconnect(ctx context.Context, duration time.Duration, err error) {}
