// Package guard coordinates reconnects for a long-lived shared connection
// handle.
//
// A Guard wraps one externally-owned connection object and decides, under
// concurrent failure reports from many callers, whether and when to discard
// the current handle and replace it with a freshly established one. It
// prevents reconnect storms (replacement is rate-limited and serialized)
// and never leaves a caller blocked waiting for a connection that may never
// finish establishing (all internal waits are bounded).
//
// # Model
//
// Callers use two operations: Current reads the active handle without
// blocking, and ReportFailure signals that an operation against the handle
// failed. A reconnect happens only when failures have been sustained for at
// least the escalation window, have not gone stale, and the minimum
// interval since the previous reconnect has elapsed.
//
// The underlying connection primitive is supplied by the embedding
// application as a ConnectFunc; the guard assumes that client already
// retries transient failures on its own and only escalates to a full
// replacement when the client appears stuck.
//
// # Usage
//
//	g := guard.New(guard.Config{
//	    Connect: func(ctx context.Context, t guard.Target) (guard.Handle, error) {
//	        return client.Dial(ctx, t.Endpoint)
//	    },
//	    Close: func(h guard.Handle) error {
//	        return h.(*client.Conn).Close()
//	    },
//	})
//
//	if err := g.Initialize(ctx, guard.Target{Endpoint: "service:9400"}); err != nil {
//	    return err
//	}
//
//	conn := g.Current().(*client.Conn)
//	if err := conn.Do(req); err != nil {
//	    g.ReportFailure()
//	}
//
// A handle returned by Current may already have been swapped out by a
// concurrent reconnect; every use of it must be treated as fallible.
package guard
