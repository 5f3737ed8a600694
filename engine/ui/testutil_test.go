package ui

import "time"

// fixedMeasurer is a deterministic TextMeasurer for tests: half the font size
// per rune, font size tall. It counts calls so measurement caching is
// observable.
type fixedMeasurer struct {
	calls int
}

func (m *fixedMeasurer) MeasureText(s string, size float32) (float32, float32) {
	m.calls++
	return float32(len([]rune(s))) * size * 0.5, size
}

func newTestCtx(opts ...Option) (*Ctx, *fixedMeasurer) {
	m := &fixedMeasurer{}
	return New(m, opts...), m
}

// frame runs one complete frame with a 200x200 window.
func frame(c *Ctx, now float64, build func()) (DrawList, time.Duration) {
	c.BeginFrame(now, 200, 200)
	if build != nil {
		build()
	}
	return c.EndFrame()
}
