package ui

import "github.com/hubastard/canopy/engine/colors"

// DrawKind discriminates draw commands.
type DrawKind uint8

const (
	CmdRect DrawKind = iota
	CmdText
)

// DrawCommand is one backend drawing instruction. Commands carry their clip
// rect directly so a backend can scissor per command without tracking a stack.
type DrawCommand struct {
	Kind DrawKind
	Rect Rect
	Clip Rect
	Z    int32

	Color colors.Color

	// CmdText only.
	Text     string
	FontSize float32
}

// DrawList is the ordered output of a frame: commands sorted by z ascending
// (draw first to last). Valid only until the next BeginFrame.
type DrawList []DrawCommand

// Cursor is the shape hint the toolkit reports to its host each frame.
type Cursor uint8

const (
	CursorArrow Cursor = iota
	CursorHand
	CursorIBeam
	CursorHResize
	CursorVResize
)
