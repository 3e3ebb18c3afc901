package guard

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/connguard/observe"
)

// Handle is the opaque connection object owned by the external client
// library. The guard publishes and replaces it but never inspects it.
type Handle any

// ConnectFunc establishes a connection to the target.
type ConnectFunc func(ctx context.Context, target Target) (Handle, error)

// CloseFunc tears down a replaced handle. A returned error is logged and
// dropped by the guard: closing a broken handle must never block its
// replacement.
type CloseFunc func(h Handle) error

// Config configures a Guard.
type Config struct {
	// Connect establishes a connection. Required.
	Connect ConnectFunc

	// Close tears down a replaced handle. Default: no-op.
	Close CloseFunc

	// ReconnectMinInterval is the minimum spacing between reconnects.
	// Failure reports arriving inside the interval are dropped on the
	// fast path without taking any gate. Default: 60 seconds.
	ReconnectMinInterval time.Duration

	// ErrorEscalationWindow is how long failures must persist, without
	// going stale, before a reconnect is considered. Default: 30 seconds.
	ErrorEscalationWindow time.Duration

	// GateTimeout bounds the wait on either internal gate. A caller of
	// ReportFailure or Obtain never waits longer than this per gate;
	// only the network connect itself, inside the held connect gate, is
	// not bounded here. Default: 3 seconds.
	GateTimeout time.Duration

	// Logger receives structured guard events. Default: no-op.
	Logger observe.Logger

	// Metrics records guard activity. Default: no-op.
	Metrics observe.Metrics

	// Tracer wraps the underlying connect in a span. Default: no-op.
	Tracer trace.Tracer
}

// Guard coordinates reconnects for one shared connection handle.
//
// All methods are safe for concurrent use. Current never blocks;
// ReportFailure and Obtain wait at most GateTimeout per internal gate.
type Guard struct {
	config Config

	// reconnectGate serializes reconnect decisions; connectGate
	// serializes the connect-or-reuse step. Both are bounded.
	reconnectGate *gate
	connectGate   *gate

	// handle is the published connection, written only while holding the
	// connect gate (or cleared under the reconnect gate).
	handle atomic.Pointer[handleBox]

	// lastReconnect is the unix-nano time of the last completed
	// reconnect; zero means none yet. Read lock-free on the fast path,
	// advanced only while holding the reconnect gate.
	lastReconnect atomic.Int64

	initMu      sync.Mutex
	initialized atomic.Bool
	target      Target

	// window is only touched while holding the reconnect gate.
	window errorWindow

	counters counters

	now func() time.Time
}

// handleBox wraps a Handle so that "no handle" and "handle is a typed
// nil" stay distinguishable in the atomic pointer.
type handleBox struct {
	h Handle
}

type counters struct {
	reports         atomic.Int64
	suppressed      atomic.Int64
	gateTimeouts    atomic.Int64
	reconnects      atomic.Int64
	connectFailures atomic.Int64
}

// New creates a guard. The guard is inert until Initialize succeeds.
func New(config Config) *Guard {
	// Apply defaults
	if config.Close == nil {
		config.Close = func(Handle) error { return nil }
	}
	if config.ReconnectMinInterval <= 0 {
		config.ReconnectMinInterval = 60 * time.Second
	}
	if config.ErrorEscalationWindow <= 0 {
		config.ErrorEscalationWindow = 30 * time.Second
	}
	if config.GateTimeout <= 0 {
		config.GateTimeout = 3 * time.Second
	}
	if config.Logger == nil {
		config.Logger = observe.NopLogger()
	}
	if config.Metrics == nil {
		config.Metrics = observe.NopMetrics()
	}
	if config.Tracer == nil {
		config.Tracer = tracenoop.NewTracerProvider().Tracer("connguard")
	}

	return &Guard{
		config:        config,
		reconnectGate: newGate(config.GateTimeout),
		connectGate:   newGate(config.GateTimeout),
		now:           time.Now,
	}
}

// Initialize resolves and stores the target, then performs the initial
// connect to populate the handle. It succeeds at most once per guard: a
// call after a previous successful one fails with ErrAlreadyInitialized.
// A failed initial connect leaves the guard uninitialized, so startup
// code may retry.
func (g *Guard) Initialize(ctx context.Context, target Target) error {
	g.initMu.Lock()
	defer g.initMu.Unlock()

	if g.initialized.Load() {
		return ErrAlreadyInitialized
	}
	if g.config.Connect == nil {
		return ErrMissingConnect
	}

	resolved, err := target.resolve(g.now())
	if err != nil {
		return err
	}
	g.target = resolved

	h, err := g.obtain(ctx)
	if err != nil {
		return fmt.Errorf("guard: initial connect: %w", err)
	}
	if h == nil {
		// Only reachable if the connect gate is already contended, which
		// cannot happen before initialization completes.
		return fmt.Errorf("guard: initial connect did not complete")
	}

	g.initialized.Store(true)
	g.config.Logger.Info(ctx, "guard initialized",
		observe.Field{Key: "endpoint", Value: resolved.Endpoint})
	return nil
}

// Current returns the active handle, or nil before initialization. It
// never blocks and never fails. The handle may already have been swapped
// out by a concurrent reconnect; callers must treat every use of it as
// fallible.
func (g *Guard) Current() Handle {
	box := g.handle.Load()
	if box == nil {
		return nil
	}
	return box.h
}

// ReportFailure signals that an operation against the current handle
// failed and a reconnect may be warranted. It is fire-and-forget: it
// never fails and never blocks longer than GateTimeout.
func (g *Guard) ReportFailure() {
	g.ReportFailureContext(context.Background())
}

// ReportFailureContext is ReportFailure with caller-controlled
// cancellation of the gate wait. Cancellation only shortens the wait; it
// is still treated as deferring to another in-flight attempt.
func (g *Guard) ReportFailureContext(ctx context.Context) {
	if !g.initialized.Load() {
		return
	}

	g.counters.reports.Add(1)

	// Fast path: inside the rate-limit interval. A single atomic read
	// keeps the overwhelming majority of concurrent reports to one
	// timestamp comparison.
	if g.rateLimited(g.now()) {
		g.counters.suppressed.Add(1)
		g.config.Metrics.RecordReport(ctx, true)
		return
	}
	g.config.Metrics.RecordReport(ctx, false)

	if !g.reconnectGate.tryAcquire(ctx) {
		// Someone else is already deciding; defer to them.
		g.counters.gateTimeouts.Add(1)
		g.config.Metrics.RecordGateTimeout(ctx, "reconnect")
		return
	}
	defer g.reconnectGate.release()

	now := g.now()

	// Re-check under the gate: a reconnect may have completed while this
	// reporter waited, and the fast-path check and the acquisition are
	// not atomic together.
	if g.rateLimited(now) {
		g.counters.suppressed.Add(1)
		return
	}

	if !g.window.observe(now, g.config.ErrorEscalationWindow) {
		if g.window.active() {
			g.config.Logger.Debug(ctx, "failure recorded, not yet eligible for reconnect")
		}
		return
	}
	g.window.reset()

	g.reconnect(ctx)
}

// Obtain returns the active handle, establishing one if absent.
func (g *Guard) Obtain() (Handle, error) {
	return g.ObtainContext(context.Background())
}

// ObtainContext is Obtain with caller-controlled cancellation of the gate
// wait.
func (g *Guard) ObtainContext(ctx context.Context) (Handle, error) {
	if !g.initialized.Load() {
		return nil, ErrNotInitialized
	}
	return g.obtain(ctx)
}

// Stats is a point-in-time snapshot of guard activity.
type Stats struct {
	Initialized     bool
	Connected       bool
	Endpoint        string
	LastReconnect   time.Time // zero if no reconnect has completed
	Reports         int64
	Suppressed      int64
	GateTimeouts    int64
	Reconnects      int64
	ConnectFailures int64
}

// Stats returns a snapshot of guard activity.
func (g *Guard) Stats() Stats {
	s := Stats{
		Initialized:     g.initialized.Load(),
		Connected:       g.Current() != nil,
		Reports:         g.counters.reports.Load(),
		Suppressed:      g.counters.suppressed.Load(),
		GateTimeouts:    g.counters.gateTimeouts.Load(),
		Reconnects:      g.counters.reconnects.Load(),
		ConnectFailures: g.counters.connectFailures.Load(),
	}
	if s.Initialized {
		s.Endpoint = g.target.Endpoint
	}
	if last := g.lastReconnect.Load(); last != 0 {
		s.LastReconnect = time.Unix(0, last)
	}
	return s
}

// rateLimited reports whether the minimum interval since the last
// completed reconnect has not yet elapsed.
func (g *Guard) rateLimited(now time.Time) bool {
	last := g.lastReconnect.Load()
	return last != 0 && now.Sub(time.Unix(0, last)) < g.config.ReconnectMinInterval
}

// reconnect discards the current handle and establishes a replacement.
// The caller holds the reconnect gate. A failed connect is logged and
// dropped: the episode was already cleared, so the next failure report
// starts fresh.
func (g *Guard) reconnect(ctx context.Context) {
	start := g.now()

	// Discard the old handle first. Close failures are swallowed.
	if box := g.handle.Swap(nil); box != nil && box.h != nil {
		if err := g.config.Close(box.h); err != nil {
			g.config.Logger.Warn(ctx, "close of replaced handle failed",
				observe.Field{Key: "error", Value: err.Error()})
		}
	}

	h, err := g.obtain(ctx)
	if err != nil {
		g.counters.connectFailures.Add(1)
		g.config.Metrics.RecordReconnect(ctx, g.now().Sub(start), err)
		g.config.Logger.Error(ctx, "reconnect failed",
			observe.Field{Key: "endpoint", Value: g.target.Endpoint},
			observe.Field{Key: "error", Value: err.Error()})
		return
	}
	if h == nil {
		// The connect gate timed out with nothing published. The next
		// failure report will try again.
		return
	}

	took := g.now().Sub(start)
	g.lastReconnect.Store(g.now().UnixNano())
	g.counters.reconnects.Add(1)
	g.config.Metrics.RecordReconnect(ctx, took, nil)
	g.config.Logger.Info(ctx, "reconnected",
		observe.Field{Key: "endpoint", Value: g.target.Endpoint},
		observe.Field{Key: "took", Value: took.String()})
}

// obtain implements connect-or-reuse with double-checked publication. If
// a handle is already published it is returned immediately. On a connect
// gate timeout it returns whatever handle is currently published,
// possibly nil, and no error: timing out means another caller is mid-
// connect and will publish when done.
func (g *Guard) obtain(ctx context.Context) (Handle, error) {
	if h := g.Current(); h != nil {
		return h, nil
	}

	if !g.connectGate.tryAcquire(ctx) {
		g.counters.gateTimeouts.Add(1)
		g.config.Metrics.RecordGateTimeout(ctx, "connect")
		return g.Current(), nil
	}
	defer g.connectGate.release()

	// Re-check under the gate: another caller may have just published.
	if h := g.Current(); h != nil {
		return h, nil
	}

	ctx, span := g.config.Tracer.Start(ctx, "guard.connect",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("endpoint", g.target.Endpoint)),
	)
	h, err := g.config.Connect(ctx, g.target)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		span.End()
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	span.End()

	g.handle.Store(&handleBox{h: h})
	return h, nil
}
