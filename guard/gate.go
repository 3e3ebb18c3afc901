package guard

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// gate is a mutual-exclusion primitive with bounded acquisition. Exactly
// one holder is admitted at a time; a caller that cannot get in within
// maxWait is told so with a plain false, never an error. Timing out means
// deferring to whichever holder is already inside.
type gate struct {
	sem     *semaphore.Weighted
	maxWait time.Duration
}

func newGate(maxWait time.Duration) *gate {
	return &gate{
		sem:     semaphore.NewWeighted(1),
		maxWait: maxWait,
	}
}

// tryAcquire takes the gate, waiting at most maxWait. The caller's context
// can cut the wait short.
func (g *gate) tryAcquire(ctx context.Context) bool {
	// Fast path: uncontended.
	if g.sem.TryAcquire(1) {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, g.maxWait)
	defer cancel()

	return g.sem.Acquire(ctx, 1) == nil
}

// release gives the gate back. Must only be called after a successful
// tryAcquire.
func (g *gate) release() {
	g.sem.Release(1)
}
