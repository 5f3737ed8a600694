package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRingMeanOfEmptyIsZero(t *testing.T) {
	var r ring
	assert.Equal(t, time.Duration(0), r.mean())
}

func TestRingAveragesRecentSamples(t *testing.T) {
	var r ring
	r.push(10 * time.Millisecond)
	r.push(20 * time.Millisecond)
	assert.Equal(t, 15*time.Millisecond, r.mean())
}

func TestRingDropsOldestPastTheWindow(t *testing.T) {
	var r ring
	for i := 0; i < window; i++ {
		r.push(time.Millisecond)
	}
	assert.Equal(t, time.Millisecond, r.mean())

	// One outlier replaces one old sample, not the whole window.
	r.push(time.Duration(window+1) * time.Millisecond)
	assert.Equal(t, 2*time.Millisecond, r.mean())
}

func TestStartFeedsTheNamedPhase(t *testing.T) {
	done := Start(PhaseBuild)
	done()
	assert.GreaterOrEqual(t, Mean(PhaseBuild), time.Duration(0))
	snap := Snapshot()
	assert.Equal(t, Mean(PhaseBuild), snap[PhaseBuild])
}

func TestPhaseNames(t *testing.T) {
	assert.Equal(t, "events", PhaseEvents.String())
	assert.Equal(t, "render", PhaseRender.String())
}
