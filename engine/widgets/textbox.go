package widgets

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hubastard/canopy/engine/ui"
)

// textState is the retained payload of a TextBox.
type textState struct {
	text   string
	cursor int // byte offset into text
}

type TextBoxProps struct {
	Key         string
	Placeholder string
	Width       ui.SizeSpec
}

// TextBox is a single-line editor: click to focus, type to insert, arrows and
// Home/End to move, Backspace/Delete to remove, Ctrl+C/Ctrl+V for the host
// clipboard. Returns the current text and whether it changed this frame.
func TextBox(c *ui.Ctx, p TextBoxProps) (string, bool) {
	th := DefaultTheme
	width := p.Width
	if width == (ui.SizeSpec{}) {
		width = ui.Px(220)
	}

	id := c.PeekID(p.Key)
	st := ui.GetOrCreate(c.Store(), id, textState{})
	changed := false

	if c.Focused(id) {
		c.WidgetEvents(id, func(ev ui.Event) {
			switch ev.Kind {
			case ui.EventTextInput:
				st.text = st.text[:st.cursor] + string(ev.Rune) + st.text[st.cursor:]
				st.cursor += utf8.RuneLen(ev.Rune)
				changed = true
			case ui.EventKeyDown:
				changed = editKey(st, ev, c) || changed
			}
		})
	}
	if c.Hot(id) {
		c.SetCursor(ui.CursorIBeam)
	}

	bg := th.Track
	if c.Focused(id) {
		bg = bg.Scale(1.3)
	}
	c.BeginBox(ui.BoxProps{
		Key:        p.Key,
		Axis:       ui.AxisRow,
		CrossAlign: ui.AlignCenter,
		Padding:    ui.Insets{L: 6, T: 4, R: 6, B: 4},
		Width:      width,
		Bg:         bg,
		Clip:       true,
		Mask:       ui.MaskPointer,
		Focusable:  true,
	})

	shown := st.text
	col := th.Text
	if shown == "" && !c.Focused(id) {
		shown = p.Placeholder
		col = col.WithAlpha(0.4)
	}
	c.Text(ui.TextProps{Key: "value", Text: shown, FontSize: th.fontSize(), Color: col})

	// Blinking caret, driven by the frame timestamp.
	if c.Focused(id) && math.Mod(c.Now(), 1.0) < 0.6 {
		c.Box(ui.BoxProps{Key: "caret", Width: ui.Px(1.5), Height: ui.Px(th.fontSize()), Bg: th.Text})
	}
	c.EndBox()
	return st.text, changed
}

func editKey(st *textState, ev ui.Event, c *ui.Ctx) bool {
	switch ev.Key {
	case ui.KeyBackspace:
		if st.cursor > 0 {
			_, n := utf8.DecodeLastRuneInString(st.text[:st.cursor])
			st.text = st.text[:st.cursor-n] + st.text[st.cursor:]
			st.cursor -= n
			return true
		}
	case ui.KeyDelete:
		if st.cursor < len(st.text) {
			_, n := utf8.DecodeRuneInString(st.text[st.cursor:])
			st.text = st.text[:st.cursor] + st.text[st.cursor+n:]
			return true
		}
	case ui.KeyLeft:
		if st.cursor > 0 {
			_, n := utf8.DecodeLastRuneInString(st.text[:st.cursor])
			st.cursor -= n
		}
	case ui.KeyRight:
		if st.cursor < len(st.text) {
			_, n := utf8.DecodeRuneInString(st.text[st.cursor:])
			st.cursor += n
		}
	case ui.KeyHome:
		st.cursor = 0
	case ui.KeyEnd:
		st.cursor = len(st.text)
	case ui.KeyC:
		if ev.Mods&ui.ModCtrl != 0 {
			c.ClipboardSet(st.text)
		}
	case ui.KeyX:
		if ev.Mods&ui.ModCtrl != 0 && st.text != "" {
			c.ClipboardSet(st.text)
			st.text = ""
			st.cursor = 0
			return true
		}
	case ui.KeyV:
		if ev.Mods&ui.ModCtrl != 0 {
			paste := strings.ReplaceAll(c.ClipboardGet(), "\n", " ")
			if paste != "" {
				st.text = st.text[:st.cursor] + paste + st.text[st.cursor:]
				st.cursor += len(paste)
				return true
			}
		}
	}
	return false
}
