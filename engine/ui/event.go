package ui

// EventKind discriminates the Event tagged union.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventPointerMove
	EventPointerDown
	EventPointerUp
	EventWheel
	EventKeyDown
	EventKeyUp
	EventTextInput
)

// Key codes (subset; extend as widgets need them).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyTab
	KeyEnter
	KeyBackspace
	KeyDelete
	KeySpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyA
	KeyC
	KeyV
	KeyX
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

// Event is one input occurrence. A single struct rather than an interface so
// per-frame queues stay free of boxing allocations; Kind selects which fields
// are meaningful.
type Event struct {
	Kind EventKind

	// Pointer events and wheel.
	X, Y   float32
	Button int
	// Wheel deltas.
	DX, DY float32

	// Key events.
	Key  Key
	Mods Mod

	// Text input.
	Rune rune

	// Handled is set once a widget consumes the event.
	Handled bool

	// Target is filled in by routing: the widget the event was delivered to.
	Target ID
}

// EventMask selects which event kinds a hit region opts into.
type EventMask uint16

const (
	MaskPointerMove EventMask = 1 << iota
	MaskPointerDown
	MaskPointerUp
	MaskWheel

	MaskPointer = MaskPointerMove | MaskPointerDown | MaskPointerUp
	MaskAll     = MaskPointer | MaskWheel
)

func (m EventMask) accepts(k EventKind) bool {
	switch k {
	case EventPointerMove:
		return m&MaskPointerMove != 0
	case EventPointerDown:
		return m&MaskPointerDown != 0
	case EventPointerUp:
		return m&MaskPointerUp != 0
	case EventWheel:
		return m&MaskWheel != 0
	}
	return false
}

// hitRegion is a placed, clipped rectangle recorded at end-frame and used to
// route pointer events until the next frame completes.
type hitRegion struct {
	id        ID
	rect      Rect // already intersected with the clip stack at placement
	z         int32
	mask      EventMask
	focusable bool
}

// router carries the event state that survives across frames: keyboard focus,
// pointer capture, the previous frame's hit regions and focus order, and the
// pointer results widgets poll during declaration.
type router struct {
	focused  ID
	captured ID

	// Snapshot of the last completed frame.
	regions    []hitRegion
	focusables []ID

	// Per-frame pointer bookkeeping, derived from routed events.
	pointerX, pointerY float32
	pressedID          ID // widget under the initial pointer-down
	releasedID         ID // widget that received pointer-up this frame
	releasedInside     bool
	wheelID            ID
	wheelDX, wheelDY   float32

	// Optional sink for key/text events when nothing is focused.
	fallback func(*Event)
}

// route delivers one event to exactly one widget and marks it handled when a
// receiver exists. Unmatched events are dropped with Handled=false.
func (rt *router) route(ev *Event) {
	switch ev.Kind {
	case EventPointerMove, EventPointerDown, EventPointerUp, EventWheel:
		rt.routePointer(ev)
	case EventKeyDown, EventKeyUp, EventTextInput:
		rt.routeKey(ev)
	}
}

func (rt *router) routePointer(ev *Event) {
	if ev.Kind != EventWheel {
		rt.pointerX, rt.pointerY = ev.X, ev.Y
	}

	// Capture overrides hit-testing entirely.
	if rt.captured != 0 {
		ev.Target = rt.captured
		ev.Handled = true
		rt.notePointer(ev, true)
		if ev.Kind == EventPointerUp {
			rt.captured = 0
		}
		return
	}

	idx := rt.hitIndex(ev.X, ev.Y, ev.Kind)
	if idx < 0 {
		// Dropped, Handled stays false. A press on empty space still
		// clears keyboard focus.
		if ev.Kind == EventPointerDown {
			rt.focused = 0
		}
		return
	}
	region := &rt.regions[idx]
	ev.Target = region.id
	ev.Handled = true
	if ev.Kind == EventPointerDown {
		rt.captured = region.id
		if region.focusable {
			rt.focused = region.id
		}
	}
	rt.notePointer(ev, false)
}

// hitIndex scans the previous frame's regions topmost-first (regions are
// recorded in z order) and returns the first containing the point that opts
// into the event kind, or -1.
func (rt *router) hitIndex(x, y float32, kind EventKind) int {
	for i := len(rt.regions) - 1; i >= 0; i-- {
		r := &rt.regions[i]
		if r.mask.accepts(kind) && r.rect.Contains(x, y) {
			return i
		}
	}
	return -1
}

// hitTest is hitIndex reduced to the target id.
func (rt *router) hitTest(x, y float32, kind EventKind) (ID, bool) {
	if i := rt.hitIndex(x, y, kind); i >= 0 {
		return rt.regions[i].id, true
	}
	return 0, false
}

func (rt *router) notePointer(ev *Event, captured bool) {
	switch ev.Kind {
	case EventPointerDown:
		rt.pressedID = ev.Target
	case EventPointerUp:
		rt.releasedID = ev.Target
		if captured {
			// Release counts as inside only if the pointer still hits
			// the captured widget's own region.
			rt.releasedInside = rt.regionContains(ev.Target, ev.X, ev.Y)
		} else {
			rt.releasedInside = true
		}
		rt.pressedID = 0
	case EventWheel:
		// Deltas accumulate per target; a wheel event over a different
		// widget must not inherit an earlier target's total.
		if rt.wheelID != ev.Target {
			rt.wheelID = ev.Target
			rt.wheelDX, rt.wheelDY = 0, 0
		}
		rt.wheelDX += ev.DX
		rt.wheelDY += ev.DY
	}
}

func (rt *router) regionContains(id ID, x, y float32) bool {
	for i := range rt.regions {
		if rt.regions[i].id == id && rt.regions[i].rect.Contains(x, y) {
			return true
		}
	}
	return false
}

func (rt *router) routeKey(ev *Event) {
	if rt.focused == 0 {
		if rt.fallback != nil {
			rt.fallback(ev)
		}
		return
	}
	ev.Target = rt.focused
	ev.Handled = true
}

// moveFocus walks the previous frame's focusable declaration order by delta
// (+1 forward, -1 backward), wrapping at the ends.
func (rt *router) moveFocus(delta int) {
	n := len(rt.focusables)
	if n == 0 {
		rt.focused = 0
		return
	}
	cur := -1
	for i, id := range rt.focusables {
		if id == rt.focused {
			cur = i
			break
		}
	}
	if cur < 0 {
		if delta >= 0 {
			rt.focused = rt.focusables[0]
		} else {
			rt.focused = rt.focusables[n-1]
		}
		return
	}
	rt.focused = rt.focusables[((cur+delta)%n+n)%n]
}

// resetFrame clears the per-frame pointer bookkeeping; capture, focus and the
// region snapshot persist until replaced.
func (rt *router) resetFrame() {
	rt.releasedID = 0
	rt.releasedInside = false
	rt.wheelID = 0
	rt.wheelDX, rt.wheelDY = 0, 0
}
