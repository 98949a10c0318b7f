package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExitGate(t *testing.T) {
	base := mondayAt(12, 0)

	t.Run("second tap inside window fires", func(t *testing.T) {
		g := newExitGate()
		assert.False(t, g.Tap(base))
		assert.True(t, g.Tap(base.Add(900*time.Millisecond)))
	})

	t.Run("window boundary is inclusive", func(t *testing.T) {
		g := newExitGate()
		assert.False(t, g.Tap(base))
		assert.True(t, g.Tap(base.Add(time.Second)))
	})

	t.Run("late tap re-arms instead of firing", func(t *testing.T) {
		g := newExitGate()
		assert.False(t, g.Tap(base))
		assert.False(t, g.Tap(base.Add(1100*time.Millisecond)))
		// the re-armed tap still pairs with a prompt follow-up
		assert.True(t, g.Tap(base.Add(1600*time.Millisecond)))
	})

	t.Run("firing disarms the gate", func(t *testing.T) {
		g := newExitGate()
		g.Tap(base)
		assert.True(t, g.Tap(base.Add(500*time.Millisecond)))
		assert.False(t, g.Tap(base.Add(600*time.Millisecond)))
	})

	t.Run("reset disarms the gate", func(t *testing.T) {
		g := newExitGate()
		g.Tap(base)
		g.Reset()
		assert.False(t, g.Tap(base.Add(100*time.Millisecond)))
	})
}
