package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hubastard/canopy/engine/ui"
)

func typeText(c *ui.Ctx, s string) {
	for _, r := range s {
		c.AddEvent(ui.Event{Kind: ui.EventTextInput, Rune: r})
	}
}

func keyDown(c *ui.Ctx, k ui.Key, mods ui.Mod) {
	c.AddEvent(ui.Event{Kind: ui.EventKeyDown, Key: k, Mods: mods})
}

func TestTextBoxTypingRequiresFocus(t *testing.T) {
	c := ui.New(stubMeasurer{})
	var text string
	build := func() {
		text, _ = TextBox(c, TextBoxProps{Key: "name"})
	}
	runFrame(c, 0, build)

	typeText(c, "ignored")
	runFrame(c, 0, build)
	assert.Empty(t, text, "unfocused boxes receive no text input")

	click(c, 10, 10)
	typeText(c, "hi")
	runFrame(c, 0, build)
	assert.Equal(t, "hi", text)
}

func TestTextBoxEditingKeys(t *testing.T) {
	c := ui.New(stubMeasurer{})
	var text string
	var changed bool
	build := func() {
		text, changed = TextBox(c, TextBoxProps{Key: "name"})
	}
	runFrame(c, 0, build)
	click(c, 10, 10)

	typeText(c, "abc")
	runFrame(c, 0, build)
	assert.Equal(t, "abc", text)
	assert.True(t, changed)

	keyDown(c, ui.KeyBackspace, 0)
	runFrame(c, 0, build)
	assert.Equal(t, "ab", text)

	// Cursor movement: insert at the front.
	keyDown(c, ui.KeyHome, 0)
	typeText(c, "x")
	runFrame(c, 0, build)
	assert.Equal(t, "xab", text)

	keyDown(c, ui.KeyRight, 0)
	keyDown(c, ui.KeyDelete, 0)
	runFrame(c, 0, build)
	assert.Equal(t, "xa", text)

	runFrame(c, 0, build)
	assert.False(t, changed, "quiet frames report no change")
}

func TestTextBoxUnicodeCursorMoves(t *testing.T) {
	c := ui.New(stubMeasurer{})
	var text string
	build := func() {
		text, _ = TextBox(c, TextBoxProps{Key: "name"})
	}
	runFrame(c, 0, build)
	click(c, 10, 10)

	typeText(c, "héllo")
	runFrame(c, 0, build)
	assert.Equal(t, "héllo", text)

	// Three backspaces remove three runes, not three bytes.
	keyDown(c, ui.KeyBackspace, 0)
	keyDown(c, ui.KeyBackspace, 0)
	keyDown(c, ui.KeyBackspace, 0)
	runFrame(c, 0, build)
	assert.Equal(t, "hé", text)

	keyDown(c, ui.KeyBackspace, 0)
	runFrame(c, 0, build)
	assert.Equal(t, "h", text)
}

func TestTextBoxClipboardShortcuts(t *testing.T) {
	clip := &stubClipboard{}
	c := ui.New(stubMeasurer{}, ui.WithClipboard(clip))
	var text string
	build := func() {
		text, _ = TextBox(c, TextBoxProps{Key: "name"})
	}
	runFrame(c, 0, build)
	click(c, 10, 10)

	typeText(c, "copy me")
	runFrame(c, 0, build)

	keyDown(c, ui.KeyC, ui.ModCtrl)
	runFrame(c, 0, build)
	assert.Equal(t, "copy me", clip.s)
	assert.Equal(t, "copy me", text, "copy leaves the text alone")

	keyDown(c, ui.KeyX, ui.ModCtrl)
	runFrame(c, 0, build)
	assert.Empty(t, text)

	keyDown(c, ui.KeyEnd, 0)
	keyDown(c, ui.KeyV, ui.ModCtrl)
	runFrame(c, 0, build)
	assert.Equal(t, "copy me", text)
}

func TestTextBoxStateEvictedWhenNotDeclared(t *testing.T) {
	c := ui.New(stubMeasurer{})
	var text string
	build := func() {
		text, _ = TextBox(c, TextBoxProps{Key: "name"})
	}
	runFrame(c, 0, build)
	click(c, 10, 10)
	typeText(c, "gone")
	runFrame(c, 0, build)
	assert.Equal(t, "gone", text)

	// Not declared for a frame: the retained text is collected.
	runFrame(c, 0, func() {})
	runFrame(c, 0, build)
	assert.Empty(t, text)
}
