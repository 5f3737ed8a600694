// Package widgets is a small catalog built entirely on the ui core's public
// primitives: boxes, text leaves, interaction queries and animations. Nothing
// here has privileged access; an application can build its own set the same
// way.
package widgets

import (
	"time"

	"github.com/tanema/gween/ease"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/ui"
)

// Theme carries the shared visual defaults. Zero value is usable.
type Theme struct {
	FontSize   float32
	Text       colors.Color
	Panel      colors.Color
	Accent     colors.Color
	AccentText colors.Color
	Track      colors.Color
}

var DefaultTheme = Theme{
	FontSize:   16,
	Text:       colors.White,
	Panel:      colors.DarkGray,
	Accent:     colors.Color{0.25, 0.45, 0.85, 1},
	AccentText: colors.White,
	Track:      colors.Color{0.2, 0.22, 0.25, 1},
}

func (t Theme) fontSize() float32 {
	if t.FontSize <= 0 {
		return DefaultTheme.FontSize
	}
	return t.FontSize
}

// ===== Label =====

func Label(c *ui.Ctx, key, s string) ui.ID {
	return LabelStyled(c, key, s, DefaultTheme.fontSize(), DefaultTheme.Text)
}

func LabelStyled(c *ui.Ctx, key, s string, size float32, col colors.Color) ui.ID {
	return c.Text(ui.TextProps{Key: key, Text: s, FontSize: size, Color: col})
}

// ===== Button =====

type ButtonProps struct {
	Key      string
	Text     string
	Theme    Theme
	Padding  ui.Insets
	Width    ui.SizeSpec
	Height   ui.SizeSpec
	Disabled bool
}

// Button declares a clickable box with a centered caption and reports whether
// it was clicked this frame (pointer release on it, or Enter/Space while
// focused).
func Button(c *ui.Ctx, p ButtonProps) bool {
	th := p.Theme
	if th == (Theme{}) {
		th = DefaultTheme
	}
	pad := p.Padding
	if pad == (ui.Insets{}) {
		pad = ui.Insets{L: 12, T: 6, R: 12, B: 6}
	}

	// Interaction state comes from the last completed frame, so the visual
	// response can be read before the box is declared.
	id := c.PeekID(p.Key)
	bg := th.Accent
	clicked := false
	if p.Disabled {
		bg = bg.Scale(0.5)
	} else {
		switch {
		case c.Active(id):
			bg = bg.Scale(0.85)
		case c.Hot(id):
			bg = bg.Scale(1.1)
			c.SetCursor(ui.CursorHand)
		}
		clicked = c.Clicked(id)
		if c.Focused(id) {
			c.WidgetEvents(id, func(ev ui.Event) {
				if ev.Kind == ui.EventKeyDown && (ev.Key == ui.KeyEnter || ev.Key == ui.KeySpace) {
					clicked = true
				}
			})
		}
	}

	c.BeginBox(ui.BoxProps{
		Key:        p.Key,
		Axis:       ui.AxisRow,
		MainAlign:  ui.AlignCenter,
		CrossAlign: ui.AlignCenter,
		Padding:    pad,
		Width:      p.Width,
		Height:     p.Height,
		Bg:         bg,
		Mask:       ui.MaskPointer,
		Focusable:  !p.Disabled,
	})

	col := th.AccentText
	if p.Disabled {
		col = col.WithAlpha(0.5)
	}
	c.Text(ui.TextProps{Key: "caption", Text: p.Text, FontSize: th.fontSize(), Color: col})
	c.EndBox()
	return clicked
}

// ===== Checkbox =====

// Checkbox toggles *value on click or Space/Enter while focused; reports a
// change this frame.
func Checkbox(c *ui.Ctx, key, label string, value *bool) bool {
	th := DefaultTheme
	id := c.BeginBox(ui.BoxProps{
		Key:        key,
		Axis:       ui.AxisRow,
		CrossAlign: ui.AlignCenter,
		Gap:        8,
		Mask:       ui.MaskPointer,
		Focusable:  true,
	})

	changed := false
	if c.Clicked(id) {
		changed = true
	}
	if c.Focused(id) {
		c.WidgetEvents(id, func(ev ui.Event) {
			if ev.Kind == ui.EventKeyDown && (ev.Key == ui.KeySpace || ev.Key == ui.KeyEnter) {
				changed = true
			}
		})
	}
	if changed {
		*value = !*value
	}
	if c.Hot(id) {
		c.SetCursor(ui.CursorHand)
	}

	boxBg := th.Track
	if *value {
		boxBg = th.Accent
	}
	c.Box(ui.BoxProps{Key: "mark", Width: ui.Px(16), Height: ui.Px(16), Bg: boxBg})
	c.Text(ui.TextProps{Key: "label", Text: label, FontSize: th.fontSize(), Color: th.Text})
	c.EndBox()
	return changed
}

// ===== Slider =====

type SliderProps struct {
	Key      string
	Min, Max float32
	Width    ui.SizeSpec
}

// Slider drags *value across [Min..Max]. Pointer capture keeps the drag alive
// when the pointer leaves the track.
func Slider(c *ui.Ctx, p SliderProps, value *float32) bool {
	th := DefaultTheme
	if p.Max <= p.Min {
		p.Max = p.Min + 1
	}
	width := p.Width
	if width == (ui.SizeSpec{}) {
		width = ui.Px(160)
	}

	id := c.BeginBox(ui.BoxProps{
		Key:    p.Key,
		Axis:   ui.AxisRow,
		Width:  width,
		Height: ui.Px(16),
		Bg:     th.Track,
		Mask:   ui.MaskPointer,
	})

	changed := false
	if c.Active(id) {
		if r, ok := c.LastRect(id); ok && r.W > 0 {
			x, _ := c.Pointer()
			t := (x - r.X) / r.W
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
			v := p.Min + t*(p.Max-p.Min)
			if v != *value {
				*value = v
				changed = true
			}
		}
		c.SetCursor(ui.CursorHResize)
	} else if c.Hot(id) {
		c.SetCursor(ui.CursorHResize)
	}

	// Fill and remainder split the track by weight.
	t := (*value - p.Min) / (p.Max - p.Min)
	const eps = 1e-4
	c.Box(ui.BoxProps{Key: "fill", Width: ui.Weighted(t + eps), Height: ui.Expand(), Bg: th.Accent})
	c.Box(ui.BoxProps{Key: "rest", Width: ui.Weighted(1 - t + eps), Height: ui.Expand()})
	c.EndBox()
	return changed
}

// ===== Panels & spacing =====

type PanelProps struct {
	Key     string
	Axis    ui.Axis
	Gap     float32
	Padding ui.Insets
	Width   ui.SizeSpec
	Height  ui.SizeSpec
	Bg      colors.Color
	X, Y    float32
}

func BeginPanel(c *ui.Ctx, p PanelProps) ui.ID {
	return c.BeginBox(ui.BoxProps{
		Key:     p.Key,
		Axis:    p.Axis,
		Gap:     p.Gap,
		Padding: p.Padding,
		Width:   p.Width,
		Height:  p.Height,
		Bg:      p.Bg,
		X:       p.X,
		Y:       p.Y,
	})
}

func EndPanel(c *ui.Ctx) { c.EndBox() }

// Spacer expands to absorb leftover space in a row or column.
func Spacer(c *ui.Ctx, key string) {
	c.Box(ui.BoxProps{Key: key, Width: ui.Expand(), Height: ui.Expand()})
}

// ===== Scroll area =====

type ScrollProps struct {
	Key    string
	Axis   ui.Axis
	Gap    float32
	Width  ui.SizeSpec
	Height ui.SizeSpec
	Bg     colors.Color
}

// BeginScroll opens a clipped viewport whose offset the core retains across
// frames; wheel input routed to it scrolls the content.
func BeginScroll(c *ui.Ctx, p ScrollProps) ui.ID {
	axis := p.Axis
	if axis == ui.AxisRow {
		axis = ui.AxisColumn
	}
	return c.BeginBox(ui.BoxProps{
		Key:    p.Key,
		Axis:   axis,
		Gap:    p.Gap,
		Width:  p.Width,
		Height: p.Height,
		Bg:     p.Bg,
		Scroll: true,
	})
}

func EndScroll(c *ui.Ctx) { c.EndBox() }

// ===== Fade helper =====

// FadeIn returns an alpha ramping 0→1 over duration, starting the first frame
// the widget appears. State rides the retained store, so a widget that leaves
// and returns fades in again once its record has been collected.
func FadeIn(c *ui.Ctx, id ui.ID, duration time.Duration) float32 {
	type seen struct{ started bool }
	st := ui.GetOrCreate(c.Store(), ui.DeriveID(id, "fadein", 0), seen{})
	if !st.started {
		st.started = true
		c.Animate(id, "fadein", 0, 1, duration, ease.Linear)
	}
	if v, ok := c.AnimValue(id, "fadein"); ok {
		return v
	}
	return 1
}
