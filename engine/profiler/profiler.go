// Package profiler collects per-frame phase timings (event pump, build,
// layout/emit, render) so the sandbox overlay can show where frame time goes.
// Single-threaded, ring-buffered, no output machinery.
package profiler

import "time"

const window = 120 // frames averaged per phase

// Phase identifies one timed section of the frame.
type Phase int

const (
	PhaseEvents Phase = iota
	PhaseBuild
	PhaseEndFrame
	PhaseRender
	phaseCount
)

var phaseNames = [phaseCount]string{"events", "build", "endframe", "render"}

func (p Phase) String() string { return phaseNames[p] }

type ring struct {
	samples [window]time.Duration
	n       int
	next    int
}

func (r *ring) push(d time.Duration) {
	r.samples[r.next] = d
	r.next = (r.next + 1) % window
	if r.n < window {
		r.n++
	}
}

func (r *ring) mean() time.Duration {
	if r.n == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < r.n; i++ {
		sum += r.samples[i]
	}
	return sum / time.Duration(r.n)
}

var rings [phaseCount]ring

// Start begins timing a phase; call the returned func when it ends.
func Start(p Phase) func() {
	t0 := time.Now()
	return func() { rings[p].push(time.Since(t0)) }
}

// Mean returns the rolling average duration of a phase.
func Mean(p Phase) time.Duration { return rings[p].mean() }

// Snapshot returns the rolling averages of every phase in order.
func Snapshot() [4]time.Duration {
	var out [4]time.Duration
	for i := Phase(0); i < phaseCount; i++ {
		out[i] = rings[i].mean()
	}
	return out
}
