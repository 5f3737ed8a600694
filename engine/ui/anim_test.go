package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestLinearAnimationSamplesByTimestamp(t *testing.T) {
	c, _ := newTestCtx()
	id := DeriveID(RootID, "fade", 0)

	frame(c, 0, func() {
		c.Animate(id, "alpha", 0, 10, time.Second, ease.Linear)
		v, ok := c.AnimValue(id, "alpha")
		require.True(t, ok)
		assert.InDelta(t, 0, v, 1e-4, "at start the value is 'from'")
	})

	frame(c, 0.5, func() {
		v, ok := c.AnimValue(id, "alpha")
		require.True(t, ok)
		assert.InDelta(t, 5, v, 1e-4, "midpoint of a linear ramp")
	})

	frame(c, 2, func() {
		v, ok := c.AnimValue(id, "alpha")
		require.True(t, ok)
		assert.InDelta(t, 10, v, 1e-4, "past the end the value clamps to 'to'")
	})
}

func TestAnimationPrunedAfterFinalValueRead(t *testing.T) {
	c, _ := newTestCtx()
	id := DeriveID(RootID, "fade", 0)

	frame(c, 0, func() {
		c.Animate(id, "alpha", 0, 1, time.Second, ease.Linear)
	})

	// Sampled past the end: the final value is delivered once.
	frame(c, 5, func() {
		v, ok := c.AnimValue(id, "alpha")
		require.True(t, ok)
		assert.InDelta(t, 1, v, 1e-4)
	})

	frame(c, 5.1, func() {
		_, ok := c.AnimValue(id, "alpha")
		assert.False(t, ok, "entry pruned once elapsed and read")
	})
}

func TestAnimatingReportsOnlyMidFlight(t *testing.T) {
	c, _ := newTestCtx()
	id := DeriveID(RootID, "slide", 0)

	frame(c, 0, func() {
		c.Animate(id, "x", 0, 1, time.Second, ease.Linear)
		assert.True(t, c.Animating(id, "x"))
	})
	frame(c, 0.9, func() {
		assert.True(t, c.Animating(id, "x"))
	})
	frame(c, 1.0, func() {
		assert.False(t, c.Animating(id, "x"), "done exactly at start+duration")
	})
}

func TestWaitHintZeroWhileAnimatingForeverWhenIdle(t *testing.T) {
	c, _ := newTestCtx()
	id := DeriveID(RootID, "spin", 0)

	_, wait := frame(c, 0, nil)
	assert.Equal(t, WaitForever, wait, "no animations, host may block")

	_, wait = frame(c, 0, func() {
		c.Animate(id, "r", 0, 1, time.Second, ease.Linear)
	})
	assert.Equal(t, time.Duration(0), wait, "mid-flight, host must repaint")

	// Elapsed with a reader still polling: one more frame owed for the
	// final value.
	_, wait = frame(c, 2, func() {
		assert.False(t, c.Animating(id, "r"))
	})
	assert.Equal(t, time.Duration(0), wait)

	frame(c, 2, func() {
		c.AnimValue(id, "r")
	})
	_, wait = frame(c, 2.1, nil)
	assert.Equal(t, WaitForever, wait, "pruned, back to idle")
}

func TestAbandonedAnimationStopsDemandingFrames(t *testing.T) {
	c, _ := newTestCtx()
	id := DeriveID(RootID, "toast", 0)

	_, wait := frame(c, 0, func() {
		c.Animate(id, "slide", 0, 1, 100*time.Millisecond, ease.Linear)
	})
	assert.Equal(t, time.Duration(0), wait)

	// The owner is never declared again: once elapsed, the entry must be
	// dropped even though its final value was never read, or the host
	// would repaint at full rate forever.
	for i := 1; i <= 10; i++ {
		_, wait = frame(c, float64(i), nil)
		assert.Equalf(t, WaitForever, wait, "frame at t=%ds still demands immediate repaint", i)
	}

	frame(c, 11, func() {
		_, ok := c.AnimValue(id, "slide")
		assert.False(t, ok)
	})
}

func TestRestartReplacesEntry(t *testing.T) {
	c, _ := newTestCtx()
	id := DeriveID(RootID, "fade", 0)

	frame(c, 0, func() {
		c.Animate(id, "alpha", 0, 1, time.Second, ease.Linear)
	})
	frame(c, 0.5, func() {
		c.Animate(id, "alpha", 1, 0, time.Second, ease.Linear)
		v, ok := c.AnimValue(id, "alpha")
		require.True(t, ok)
		assert.InDelta(t, 1, v, 1e-4, "restarted from its new 'from'")
	})
}

func TestStopAnimDropsEntryWithoutFinalRead(t *testing.T) {
	c, _ := newTestCtx()
	id := DeriveID(RootID, "fade", 0)

	frame(c, 0, func() {
		c.Animate(id, "alpha", 0, 1, time.Second, ease.Linear)
		c.StopAnim(id, "alpha")
		_, ok := c.AnimValue(id, "alpha")
		assert.False(t, ok)
	})
	_, wait := frame(c, 0.1, nil)
	assert.Equal(t, WaitForever, wait)
}

func TestZeroDurationAnimationLandsImmediately(t *testing.T) {
	c, _ := newTestCtx()
	id := DeriveID(RootID, "snap", 0)

	frame(c, 0, func() {
		c.Animate(id, "x", 3, 8, 0, ease.Linear)
		v, ok := c.AnimValue(id, "x")
		require.True(t, ok)
		assert.InDelta(t, 8, v, 1e-4)
	})
	frame(c, 0.1, func() {
		_, ok := c.AnimValue(id, "x")
		assert.False(t, ok)
	})
}
