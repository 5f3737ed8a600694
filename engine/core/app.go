package core

import (
	"time"

	"github.com/hubastard/canopy/engine/ui"
)

// App defines the application hooks around the per-frame UI declaration.
type App interface {
	OnStart(e *Engine)    // called once after the backend is up
	Frame(e *Engine)      // declare the widget tree; runs between BeginFrame/EndFrame
	OnShutdown(e *Engine) // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Backend Backend
	UI      *ui.Ctx
	start   time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Backend is the capability contract a windowing/render backend fulfills for
// the core: clock, input, text measurement, draw-list consumption, clipboard
// and cursor hints. The core never reaches past this interface.
type Backend interface {
	ui.TextMeasurer
	ui.Clipboard

	// Now is a monotonic clock reading in seconds.
	Now() float64

	// WaitEvents blocks until input arrives or the timeout elapses.
	// ui.WaitForever means block indefinitely; zero returns immediately
	// after pumping the OS queue.
	WaitEvents(timeout time.Duration)

	// DrainEvents returns the input gathered since the last call, already
	// translated to ui events.
	DrainEvents() []ui.Event

	FramebufferSize() (int, int)
	ShouldClose() bool
	SetTitle(title string)

	// Render consumes one frame's draw command list.
	Render(list ui.DrawList, width, height int) error
	SwapBuffers()

	SetCursor(cur ui.Cursor)
	Shutdown()
}

// Config for an engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	ClearColor [4]float32

	// FontPath/FontSize seed the backend's measurement face.
	FontPath string
	FontSize float32

	// GraceFrames is the retained-state GC grace window.
	GraceFrames uint64
}
