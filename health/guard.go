package health

import (
	"context"
	"time"

	"github.com/jonwraymond/connguard/guard"
)

// GuardChecker reports the health of one reconnect guard.
type GuardChecker struct {
	name string
	g    *guard.Guard
}

// NewGuardChecker creates a checker for the given guard, typically named
// after the remote endpoint the guard protects.
func NewGuardChecker(name string, g *guard.Guard) *GuardChecker {
	return &GuardChecker{name: name, g: g}
}

// Name returns the checker name.
func (c *GuardChecker) Name() string {
	return c.name
}

// Check maps guard state onto health status: unhealthy before
// initialization, degraded while no handle is published (a reconnect is
// pending or failing), healthy otherwise.
func (c *GuardChecker) Check(ctx context.Context) Result {
	s := c.g.Stats()

	details := map[string]any{
		"endpoint":         s.Endpoint,
		"reports":          s.Reports,
		"reconnects":       s.Reconnects,
		"connect_failures": s.ConnectFailures,
	}
	if !s.LastReconnect.IsZero() {
		details["last_reconnect"] = s.LastReconnect.UTC().Format(time.RFC3339)
	}

	switch {
	case !s.Initialized:
		return Unhealthy("guard not initialized", guard.ErrNotInitialized).WithDetails(details)
	case !s.Connected:
		return Degraded("no connection handle published").WithDetails(details)
	default:
		return Healthy("connected").WithDetails(details)
	}
}
