package guard

import (
	"testing"
	"time"
)

func TestErrorWindow_FirstObservation(t *testing.T) {
	var w errorWindow
	now := time.Unix(1000, 0)

	if w.observe(now, 30*time.Second) {
		t.Error("observe() = true on first failure, want false")
	}
	if w.first == nil || w.recent == nil {
		t.Fatal("first observation did not record timestamps")
	}
	if !w.first.Equal(now) || !w.recent.Equal(now) {
		t.Errorf("timestamps = %v/%v, want both %v", w.first, w.recent, now)
	}
}

func TestErrorWindow_NotYetEligible(t *testing.T) {
	var w errorWindow
	base := time.Unix(1000, 0)
	span := 30 * time.Second

	w.observe(base, span)
	if w.observe(base.Add(10*time.Second), span) {
		t.Error("observe() = true at 10s into a 30s window, want false")
	}
}

func TestErrorWindow_Eligible(t *testing.T) {
	var w errorWindow
	base := time.Unix(1000, 0)
	span := 30 * time.Second

	w.observe(base, span)
	w.observe(base.Add(10*time.Second), span)

	if !w.observe(base.Add(35*time.Second), span) {
		t.Error("observe() = false with sinceFirst=35s, sinceRecent=25s, want true")
	}
}

func TestErrorWindow_StaleGapRefusesButKeepsStart(t *testing.T) {
	var w errorWindow
	base := time.Unix(1000, 0)
	span := 30 * time.Second

	w.observe(base, span)

	// Gap of 50s > span: refused, but the episode start stays put while
	// the recent timestamp is refreshed.
	if w.observe(base.Add(50*time.Second), span) {
		t.Error("observe() = true after a 50s gap, want false")
	}
	if !w.first.Equal(base) {
		t.Errorf("first = %v after stale gap, want unchanged %v", w.first, base)
	}
	if !w.recent.Equal(base.Add(50 * time.Second)) {
		t.Errorf("recent = %v after stale gap, want refreshed", w.recent)
	}

	// A prompt follow-up qualifies on episode age alone.
	if !w.observe(base.Add(55*time.Second), span) {
		t.Error("observe() = false with sinceFirst=55s, sinceRecent=5s, want true")
	}
}

func TestErrorWindow_ExactBoundaries(t *testing.T) {
	var w errorWindow
	base := time.Unix(1000, 0)
	span := 30 * time.Second

	w.observe(base, span)

	// sinceFirst == span and sinceRecent == span both count as inside.
	if !w.observe(base.Add(span), span) {
		t.Error("observe() = false at exactly the window boundary, want true")
	}
}

func TestErrorWindow_Reset(t *testing.T) {
	var w errorWindow
	base := time.Unix(1000, 0)
	span := 30 * time.Second

	w.observe(base, span)
	w.reset()

	if w.active() {
		t.Error("active() = true after reset, want false")
	}

	// The next observation starts a fresh episode.
	if w.observe(base.Add(time.Hour), span) {
		t.Error("observe() = true on first failure of a fresh episode, want false")
	}
}
