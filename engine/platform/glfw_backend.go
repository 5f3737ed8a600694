// Package platform implements the core.Backend contract on GLFW + OpenGL:
// window and input, monotonic clock, text measurement through the font atlas,
// draw-list rendering, clipboard and cursor shapes.
package platform

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/canopy/engine/core"
	glbackend "github.com/hubastard/canopy/engine/gfx/gl"
	"github.com/hubastard/canopy/engine/text"
	"github.com/hubastard/canopy/engine/ui"
)

type GLFWBackend struct {
	win      *glfw.Window
	renderer *glbackend.Renderer
	font     *text.Font

	pending []ui.Event

	cursors map[ui.Cursor]*glfw.Cursor
	current ui.Cursor
}

// NewGLFWBackend opens the window, initializes GL and loads the measurement
// font. Must run on the main thread.
func NewGLFWBackend(cfg core.Config) (core.Backend, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	log.Printf("GL: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))

	fnt, err := text.Load(cfg.FontPath, cfg.FontSize)
	if err != nil {
		return nil, err
	}

	renderer, err := glbackend.New(fnt, cfg.ClearColor)
	if err != nil {
		return nil, err
	}

	b := &GLFWBackend{
		win:      win,
		renderer: renderer,
		font:     fnt,
		cursors:  make(map[ui.Cursor]*glfw.Cursor, 5),
	}
	b.installCallbacks()
	return b, nil
}

func (b *GLFWBackend) installCallbacks() {
	win := b.win

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		px, py := b.toPixels(x, y)
		b.pending = append(b.pending, ui.Event{Kind: ui.EventPointerMove, X: px, Y: py})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		x, y := win.GetCursorPos()
		px, py := b.toPixels(x, y)
		kind := ui.EventPointerDown
		if action == glfw.Release {
			kind = ui.EventPointerUp
		}
		b.pending = append(b.pending, ui.Event{
			Kind: kind, X: px, Y: py,
			Button: int(button), Mods: translateMods(mods),
		})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		x, y := win.GetCursorPos()
		px, py := b.toPixels(x, y)
		b.pending = append(b.pending, ui.Event{
			Kind: ui.EventWheel, X: px, Y: py,
			DX: float32(xoff), DY: float32(yoff),
		})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == ui.KeyUnknown {
			return
		}
		kind := ui.EventKeyDown
		if action == glfw.Release {
			kind = ui.EventKeyUp
		}
		// Repeats count as key-down.
		b.pending = append(b.pending, ui.Event{Kind: kind, Key: k, Mods: translateMods(mods)})
	})
	win.SetCharCallback(func(_ *glfw.Window, ch rune) {
		b.pending = append(b.pending, ui.Event{Kind: ui.EventTextInput, Rune: ch})
	})
}

// toPixels maps window coordinates to framebuffer pixels (hidpi scaling).
func (b *GLFWBackend) toPixels(x, y float64) (float32, float32) {
	ww, wh := b.win.GetSize()
	fw, fh := b.win.GetFramebufferSize()
	sx, sy := 1.0, 1.0
	if ww > 0 && wh > 0 {
		sx = float64(fw) / float64(ww)
		sy = float64(fh) / float64(wh)
	}
	return float32(x * sx), float32(y * sy)
}

// core.Backend impl

func (b *GLFWBackend) Now() float64 { return glfw.GetTime() }

func (b *GLFWBackend) WaitEvents(timeout time.Duration) {
	switch {
	case timeout == ui.WaitForever:
		glfw.WaitEvents()
	case timeout <= 0:
		glfw.PollEvents()
	default:
		glfw.WaitEventsTimeout(timeout.Seconds())
	}
}

// DrainEvents returns the buffered events; the buffer is reused, so the
// returned slice is valid only until the next WaitEvents.
func (b *GLFWBackend) DrainEvents() []ui.Event {
	evs := b.pending
	b.pending = b.pending[:0]
	return evs
}

func (b *GLFWBackend) FramebufferSize() (int, int) { return b.win.GetFramebufferSize() }
func (b *GLFWBackend) ShouldClose() bool           { return b.win.ShouldClose() }
func (b *GLFWBackend) SetTitle(t string)           { b.win.SetTitle(t) }
func (b *GLFWBackend) SwapBuffers()                { b.win.SwapBuffers() }

func (b *GLFWBackend) MeasureText(s string, size float32) (float32, float32) {
	return b.font.Measure(s, size)
}

func (b *GLFWBackend) Render(list ui.DrawList, w, h int) error {
	return b.renderer.Render(list, w, h)
}

func (b *GLFWBackend) ClipboardGet() string {
	s := glfw.GetClipboardString()
	return s
}

func (b *GLFWBackend) ClipboardSet(s string) { glfw.SetClipboardString(s) }

func (b *GLFWBackend) SetCursor(cur ui.Cursor) {
	if cur == b.current {
		return
	}
	b.current = cur
	c, ok := b.cursors[cur]
	if !ok {
		c = glfw.CreateStandardCursor(standardShape(cur))
		b.cursors[cur] = c
	}
	b.win.SetCursor(c)
}

func (b *GLFWBackend) Shutdown() {
	b.renderer.Shutdown()
	b.font.Close()
	glfw.Terminate()
}

func standardShape(cur ui.Cursor) glfw.StandardCursor {
	switch cur {
	case ui.CursorHand:
		return glfw.HandCursor
	case ui.CursorIBeam:
		return glfw.IBeamCursor
	case ui.CursorHResize:
		return glfw.HResizeCursor
	case ui.CursorVResize:
		return glfw.VResizeCursor
	default:
		return glfw.ArrowCursor
	}
}

func translateKey(k glfw.Key) ui.Key {
	switch k {
	case glfw.KeyEscape:
		return ui.KeyEscape
	case glfw.KeyTab:
		return ui.KeyTab
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return ui.KeyEnter
	case glfw.KeyBackspace:
		return ui.KeyBackspace
	case glfw.KeyDelete:
		return ui.KeyDelete
	case glfw.KeySpace:
		return ui.KeySpace
	case glfw.KeyLeft:
		return ui.KeyLeft
	case glfw.KeyRight:
		return ui.KeyRight
	case glfw.KeyUp:
		return ui.KeyUp
	case glfw.KeyDown:
		return ui.KeyDown
	case glfw.KeyHome:
		return ui.KeyHome
	case glfw.KeyEnd:
		return ui.KeyEnd
	case glfw.KeyA:
		return ui.KeyA
	case glfw.KeyC:
		return ui.KeyC
	case glfw.KeyV:
		return ui.KeyV
	case glfw.KeyX:
		return ui.KeyX
	default:
		return ui.KeyUnknown
	}
}

func translateMods(m glfw.ModifierKey) ui.Mod {
	var out ui.Mod
	if m&glfw.ModShift != 0 {
		out |= ui.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= ui.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= ui.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= ui.ModSuper
	}
	return out
}
