package playback

import "time"

// tapWindow is the rolling window in which two taps count as an exit
// request. Incidental single touches on a public-facing display fall
// outside it and are discarded.
const tapWindow = time.Second

// exitGate debounces the two-tap exit gesture. A tap arms the gate; a
// second tap inside the window fires it. A tap after the window has
// elapsed re-arms rather than fires, so the count never carries over.
type exitGate struct {
	window time.Duration
	last   time.Time
}

func newExitGate() *exitGate {
	return &exitGate{window: tapWindow}
}

// Tap records a tap at now and reports whether the gate fired
func (g *exitGate) Tap(now time.Time) bool {
	if !g.last.IsZero() && now.Sub(g.last) <= g.window {
		g.last = time.Time{}
		return true
	}
	g.last = now
	return false
}

// Reset disarms the gate
func (g *exitGate) Reset() {
	g.last = time.Time{}
}
