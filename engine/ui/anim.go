package ui

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Identity-keyed animations. Entries advance purely from the timestamp the
// frame controller supplies, so playback is deterministic under test and the
// end-frame wait hint is the toolkit's only scheduling signal to its host.

// WaitForever tells the host nothing is animating and it may block on input.
const WaitForever = time.Duration(-1)

type animKey struct {
	id   ID
	name string
}

type animEntry struct {
	from, to float32
	start    float64 // seconds, same clock as frame timestamps
	duration float64
	easing   ease.TweenFunc

	// readPastEnd marks that the final value was delivered at least once,
	// after which the entry is prunable.
	readPastEnd bool

	// sampled marks that something read the entry this frame; cleared by
	// prune. An elapsed entry nobody samples has no reader owed its final
	// value and must not keep the host repainting.
	sampled bool
}

func (e *animEntry) value(now float64) float32 {
	e.sampled = true
	if e.duration <= 0 {
		e.readPastEnd = true
		return e.to
	}
	t := clampf(float32((now-e.start)/e.duration), 0, 1)
	if t >= 1 {
		e.readPastEnd = true
	}
	fn := e.easing
	if fn == nil {
		fn = ease.Linear
	}
	// gween easing signature: (elapsed, begin, change, duration).
	return fn(t, e.from, e.to-e.from, 1)
}

// animSet owns all animation entries for a session.
type animSet struct {
	entries map[animKey]*animEntry
}

func newAnimSet() *animSet {
	return &animSet{entries: make(map[animKey]*animEntry, 16)}
}

func (a *animSet) start(id ID, name string, from, to float32, duration time.Duration, fn ease.TweenFunc, now float64) {
	a.entries[animKey{id, name}] = &animEntry{
		from:     from,
		to:       to,
		start:    now,
		duration: duration.Seconds(),
		easing:   fn,
	}
}

func (a *animSet) value(id ID, name string, now float64) (float32, bool) {
	e, ok := a.entries[animKey{id, name}]
	if !ok {
		return 0, false
	}
	return e.value(now), true
}

func (a *animSet) running(id ID, name string, now float64) bool {
	e, ok := a.entries[animKey{id, name}]
	if !ok {
		return false
	}
	e.sampled = true
	return now < e.start+e.duration
}

func (a *animSet) stop(id ID, name string) {
	delete(a.entries, animKey{id, name})
}

// prune drops entries that have fully elapsed, once the final value has been
// delivered or nothing sampled the entry this frame (the owning widget is
// gone; holding the entry would demand repaints forever).
func (a *animSet) prune(now float64) {
	for k, e := range a.entries {
		if now >= e.start+e.duration && (e.readPastEnd || !e.sampled) {
			delete(a.entries, k)
			continue
		}
		e.sampled = false
	}
}

// nextWait returns how long the host may sleep before an animation needs a
// new frame: zero while anything is mid-flight or awaiting its final read,
// WaitForever when idle.
func (a *animSet) nextWait(now float64) time.Duration {
	if len(a.entries) == 0 {
		return WaitForever
	}
	wait := WaitForever
	for _, e := range a.entries {
		var d time.Duration
		if now < e.start {
			// Not started yet; sleep until it begins.
			d = time.Duration((e.start - now) * float64(time.Second))
		} else {
			// Mid-flight, or done but owing its final-value frame.
			d = 0
		}
		if wait == WaitForever || d < wait {
			wait = d
		}
	}
	return wait
}
