package guard

import "time"

// errorWindow tracks the failure episode accumulated since the last
// reconnect decision. It is not safe for concurrent use; the guard only
// touches it while holding the reconnect gate.
//
// Both timestamps are nil when no failure has been reported this episode.
// When both are set, recent is always >= first.
type errorWindow struct {
	first  *time.Time // first reported failure of the episode
	recent *time.Time // most recent reported failure
}

// observe records a failure at now and reports whether the episode has
// been sustained long enough for a reconnect: the episode must be at least
// span old, and the previous report must be no older than span.
//
// The recent timestamp is refreshed on every call, decision or not. On a
// stale gap (previous report older than span) the episode start is
// deliberately left untouched; staleness only resets the recency half of
// the eligibility test, so a prompt follow-up report can still qualify on
// episode age alone.
func (w *errorWindow) observe(now time.Time, span time.Duration) bool {
	if w.first == nil {
		// First failure of the episode. Never reconnect on a single
		// report; a sustained window is always required.
		t := now
		w.first = &t
		w.recent = &t
		return false
	}

	sinceFirst := now.Sub(*w.first)
	sinceRecent := now.Sub(*w.recent)

	t := now
	w.recent = &t

	return sinceFirst >= span && sinceRecent <= span
}

// reset clears the episode so the next failure report starts a fresh one.
func (w *errorWindow) reset() {
	w.first = nil
	w.recent = nil
}

// active reports whether a failure has been recorded this episode.
func (w *errorWindow) active() bool {
	return w.first != nil
}
