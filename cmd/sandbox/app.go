package main

import (
	"log"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/scratch"
	"github.com/hubastard/canopy/engine/ui"
	"github.com/hubastard/canopy/engine/widgets"
)

type sandboxApp struct {
	clicks      int
	showDetails bool
	volume      float32
	showOverlay bool
	rows        int
}

func (a *sandboxApp) OnStart(e *core.Engine) {
	a.volume = 0.5
	a.showOverlay = true
	a.rows = 50
	log.Println("sandbox started")
}

func (a *sandboxApp) OnShutdown(e *core.Engine) {
	log.Println("sandbox exit")
}

func (a *sandboxApp) Frame(e *core.Engine) {
	c := e.UI
	scratch.Reset()

	c.BeginBox(ui.BoxProps{
		Key:     "root",
		Axis:    ui.AxisColumn,
		Gap:     10,
		Padding: ui.InsetsAll(12),
		Width:   ui.Expand(),
		Height:  ui.Expand(),
	})

	a.header(c)
	a.body(c)

	c.EndBox()

	if a.showOverlay {
		a.overlay(c)
	}
}

func (a *sandboxApp) header(c *ui.Ctx) {
	c.BeginBox(ui.BoxProps{
		Key:        "header",
		Axis:       ui.AxisRow,
		Gap:        10,
		CrossAlign: ui.AlignCenter,
		Width:      ui.Expand(),
	})

	if widgets.Button(c, widgets.ButtonProps{Key: "click", Text: "Click me"}) {
		a.clicks++
	}
	widgets.Label(c, "clicks", scratch.Sprintf("clicks: %d", a.clicks))

	if widgets.Button(c, widgets.ButtonProps{Key: "details", Text: "Toggle details"}) {
		a.showDetails = !a.showDetails
	}

	widgets.Spacer(c, "gap")
	widgets.Checkbox(c, "overlay", "debug overlay", &a.showOverlay)
	c.EndBox()
}

func (a *sandboxApp) body(c *ui.Ctx) {
	c.BeginBox(ui.BoxProps{
		Key:    "body",
		Axis:   ui.AxisRow,
		Gap:    10,
		Width:  ui.Expand(),
		Height: ui.Expand(),
	})

	// Left column: controls.
	widgets.BeginPanel(c, widgets.PanelProps{
		Key:     "controls",
		Axis:    ui.AxisColumn,
		Gap:     8,
		Padding: ui.InsetsAll(10),
		Width:   ui.Px(260),
		Height:  ui.Expand(),
		Bg:      widgets.DefaultTheme.Panel,
	})
	widgets.Label(c, "vol-label", scratch.Sprintf("volume: %.2f", float64(a.volume)))
	widgets.Slider(c, widgets.SliderProps{Key: "volume", Min: 0, Max: 1, Width: ui.Expand()}, &a.volume)
	widgets.TextBox(c, widgets.TextBoxProps{Key: "name", Placeholder: "type here...", Width: ui.Expand()})
	if a.showDetails {
		a.details(c)
	}
	widgets.EndPanel(c)

	// Right column: scroll list.
	widgets.BeginScroll(c, widgets.ScrollProps{
		Key:    "list",
		Gap:    4,
		Width:  ui.Expand(),
		Height: ui.Expand(),
		Bg:     widgets.DefaultTheme.Panel,
	})
	for i := 0; i < a.rows; i++ {
		c.BeginBox(ui.BoxProps{
			Key:        "row",
			Axis:       ui.AxisRow,
			Padding:    ui.Insets{L: 8, T: 4, R: 8, B: 4},
			Width:      ui.Expand(),
			CrossAlign: ui.AlignCenter,
			Bg:         widgets.DefaultTheme.Track.WithAlpha(0.4),
		})
		widgets.Label(c, "text", scratch.Sprintf("row %d", i))
		c.EndBox()
	}
	widgets.EndScroll(c)

	c.EndBox()
}

// details fades in when toggled on; its state (and the fade) is collected by
// the store GC once the panel stops being declared.
func (a *sandboxApp) details(c *ui.Ctx) {
	id := c.PeekID("details")
	alpha := widgets.FadeIn(c, id, 300*time.Millisecond)

	c.BeginBox(ui.BoxProps{
		Key:     "details",
		Axis:    ui.AxisColumn,
		Gap:     4,
		Padding: ui.InsetsAll(8),
		Width:   ui.Expand(),
		Bg:      colors.Color{0.15, 0.3, 0.2, 1}.WithAlpha(0.9 * alpha),
	})
	widgets.LabelStyled(c, "line1", "retained state survives re-declaration",
		14, colors.White.WithAlpha(alpha))
	widgets.LabelStyled(c, "line2", "this panel's records are evicted when hidden",
		14, colors.White.WithAlpha(alpha))
	c.EndBox()
}

// overlay draws frame stats on top of everything; the z counter puts later
// declarations above the rest of the tree.
func (a *sandboxApp) overlay(c *ui.Ctx) {
	stats := c.Stats()
	phases := profiler.Snapshot()

	c.BeginBox(ui.BoxProps{
		Key:    "overlay-layer",
		Axis:   ui.AxisAbsolute,
		Width:  ui.Expand(),
		Height: ui.Expand(),
	})

	c.BeginBox(ui.BoxProps{
		Key:     "stats",
		Axis:    ui.AxisColumn,
		Gap:     2,
		Padding: ui.InsetsAll(8),
		X:       8,
		Y:       8,
		Bg:      colors.Black.WithAlpha(0.7),
	})
	// Stats lag one frame: they describe the last completed frame.
	widgets.LabelStyled(c, "frame", scratch.Sprintf("frame %d  widgets %d  cmds %d",
		stats.Frame, stats.Widgets, stats.Commands), 13, colors.Green)
	widgets.LabelStyled(c, "gc", scratch.Sprintf("evicted %d  anims %d",
		stats.Evicted, stats.Animations), 13, colors.Green)
	widgets.LabelStyled(c, "phases", scratch.Sprintf("build %.2fms  end %.2fms  render %.2fms",
		ms(phases[profiler.PhaseBuild]), ms(phases[profiler.PhaseEndFrame]), ms(phases[profiler.PhaseRender])),
		13, colors.Green)
	c.EndBox()

	// A touch of motion so the animation scheduler stays exercised.
	pulseID := c.PeekID("pulse")
	if !c.Animating(pulseID, "pulse") {
		c.Animate(pulseID, "pulse", 0.3, 1, 1200*time.Millisecond, ease.InOutQuad)
	}
	v, _ := c.AnimValue(pulseID, "pulse")
	c.Box(ui.BoxProps{
		Key: "pulse", X: 8, Y: 78,
		Width: ui.Px(60 * v), Height: ui.Px(4),
		Bg: colors.Green.WithAlpha(v),
	})

	c.EndBox()
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
