package core

import (
	"log"
	"runtime"
	"time"

	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/ui"
)

// Run wires the backend and executes the frame loop. One frame is built, laid
// out and rendered to completion before the next begins; the only blocking
// point is the between-frame wait, bounded by the animation subsystem's hint.
func Run(app App, cfg Config, newBackend func(Config) (Backend, error)) error {
	// Windowing and GL contexts require the main OS thread.
	runtime.LockOSThread()

	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer backend.Shutdown()

	ctx := ui.New(backend,
		ui.WithClipboard(backend),
		ui.WithGrace(cfg.GraceFrames),
	)
	eng := &Engine{Backend: backend, UI: ctx, start: time.Now()}

	app.OnStart(eng)

	wait := time.Duration(0)
	for !backend.ShouldClose() {
		stopEvents := profiler.Start(profiler.PhaseEvents)
		backend.WaitEvents(wait)
		for _, ev := range backend.DrainEvents() {
			ctx.AddEvent(ev)
		}
		stopEvents()

		fbW, fbH := backend.FramebufferSize()
		if fbW < 1 || fbH < 1 {
			// Minimized; nothing to lay out against.
			wait = 100 * time.Millisecond
			continue
		}

		stopBuild := profiler.Start(profiler.PhaseBuild)
		ctx.BeginFrame(backend.Now(), float32(fbW), float32(fbH))
		app.Frame(eng)
		stopBuild()

		stopEnd := profiler.Start(profiler.PhaseEndFrame)
		list, nextWait := ctx.EndFrame()
		wait = nextWait
		stopEnd()

		stopRender := profiler.Start(profiler.PhaseRender)
		if err := backend.Render(list, fbW, fbH); err != nil {
			// Retained state is untouched past EndFrame; report and
			// carry on with the next frame.
			log.Printf("render: %v", err)
		}
		backend.SetCursor(ctx.CursorHint())
		backend.SwapBuffers()
		stopRender()
	}

	app.OnShutdown(eng)
	log.Println("Engine exit")
	return nil
}
