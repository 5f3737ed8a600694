package ui

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/hubastard/canopy/engine/colors"
)

// TextMeasurer is the backend-supplied measurement capability. The core never
// touches font binaries; it only needs extents.
type TextMeasurer interface {
	MeasureText(s string, size float32) (w, h float32)
}

// Clipboard is the backend-supplied clipboard capability. Optional; widgets
// degrade gracefully without one.
type Clipboard interface {
	ClipboardGet() string
	ClipboardSet(s string)
}

// FrameStats are per-frame counters, valid after EndFrame.
type FrameStats struct {
	Frame      uint64
	Widgets    int
	Commands   int
	Regions    int
	Evicted    int
	Animations int
}

type phase uint8

const (
	phaseIdle phase = iota
	phaseBuilding
)

type occKey struct {
	parent ID
	key    string
}

// frameContext is the transient state of exactly one frame. Everything in it
// is arena-style: slices reset to length zero at BeginFrame, maps cleared in
// place, so a warmed-up session builds frames without heap allocation.
type frameContext struct {
	nodes       []node
	parentStack []int32
	occ         map[occKey]int
	seen        map[ID]struct{}
	events      []Event
	drawList    DrawList
	focusables  []ID
	regions     []hitRegion
	scratch     []float32 // grid row-height arena, regions stacked by nesting depth
	zCounter    int32
	now         float64
	width       float32
	height      float32
}

// Ctx is one UI session: the retained store, router and animation state that
// span frames, plus the frame context reset every frame. Single-threaded; a
// host embedding it from multiple goroutines must serialize all calls.
type Ctx struct {
	store    *Store
	anims    *animSet
	rt       router
	measurer TextMeasurer
	clip     Clipboard

	phase  phase
	fc     frameContext
	stats  FrameStats
	cursor Cursor
}

// Option configures a Ctx at creation.
type Option func(*Ctx)

// WithGrace sets how many extra frames untouched state survives before GC
// evicts it. Zero (the default) evicts state not touched in the completed
// frame; widgets that fade out before disappearing want one or two.
func WithGrace(frames uint64) Option {
	return func(c *Ctx) { c.store.Grace = frames }
}

// WithClipboard wires the backend clipboard into widget reach.
func WithClipboard(cb Clipboard) Option {
	return func(c *Ctx) { c.clip = cb }
}

// WithKeyFallback registers a handler for key/text events when no widget has
// focus; without one such events are dropped.
func WithKeyFallback(fn func(*Event)) Option {
	return func(c *Ctx) { c.rt.fallback = fn }
}

func New(measurer TextMeasurer, opts ...Option) *Ctx {
	c := &Ctx{
		store:    NewStore(),
		anims:    newAnimSet(),
		measurer: measurer,
		fc: frameContext{
			nodes:       make([]node, 0, 256),
			parentStack: make([]int32, 0, 32),
			occ:         make(map[occKey]int, 64),
			seen:        make(map[ID]struct{}, 256),
			drawList:    make(DrawList, 0, 256),
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Store exposes the retained state store for application-level state layered
// on GetOrCreate/Peek (e.g. save/restore of scroll positions).
func (c *Ctx) Store() *Store { return c.store }

// Stats returns the counters of the last completed frame.
func (c *Ctx) Stats() FrameStats { return c.stats }

// Now returns the timestamp supplied to the current frame.
func (c *Ctx) Now() float64 { return c.fc.now }

// ===== Frame lifecycle =====

// BeginFrame opens a frame: advances the store generation, resets all
// transient stacks and seeds the root container covering the window.
// Fatal if a frame is already building.
func (c *Ctx) BeginFrame(now float64, width, height float32) {
	if c.phase != phaseIdle {
		panic("ui: BeginFrame called while a frame is already building")
	}
	c.phase = phaseBuilding
	c.store.frame++

	fc := &c.fc
	fc.nodes = fc.nodes[:0]
	fc.parentStack = fc.parentStack[:0]
	fc.drawList = fc.drawList[:0]
	fc.focusables = fc.focusables[:0]
	fc.regions = fc.regions[:0]
	fc.scratch = fc.scratch[:0]
	clear(fc.occ)
	clear(fc.seen)
	fc.zCounter = 0
	fc.now = now
	fc.width, fc.height = width, height

	c.stats = FrameStats{Frame: c.store.frame}
	c.cursor = CursorArrow

	fc.nodes = append(fc.nodes, node{
		id:         RootID,
		axis:       AxisOverlay,
		parent:     -1,
		firstChild: -1,
		lastChild:  -1,
		nextSib:    -1,
	})
	fc.parentStack = append(fc.parentStack, 0)
}

// EndFrame closes the frame: runs the measure and place passes, emits the
// z-ordered draw list, snapshots hit regions and focus order for event
// routing, garbage-collects untouched state and computes the host wait hint.
func (c *Ctx) EndFrame() (DrawList, time.Duration) {
	if c.phase != phaseBuilding {
		panic("ui: EndFrame called with no frame building")
	}
	if len(c.fc.parentStack) != 1 {
		panic(fmt.Sprintf("ui: EndFrame with %d unclosed container(s)", len(c.fc.parentStack)-1))
	}

	window := NewRect(0, 0, c.fc.width, c.fc.height)
	c.measure(0)
	c.place(0, window, window)

	for i := range c.fc.nodes {
		c.emitNode(&c.fc.nodes[i])
	}

	// Routing snapshot for events arriving before the next EndFrame.
	c.rt.regions = append(c.rt.regions[:0], c.fc.regions...)
	c.rt.focusables = append(c.rt.focusables[:0], c.fc.focusables...)
	c.rt.resetFrame()
	c.fc.events = c.fc.events[:0]

	c.stats.Evicted = c.store.GC(c.store.frame)
	c.stats.Widgets = len(c.fc.seen)
	c.stats.Commands = len(c.fc.drawList)
	c.stats.Regions = len(c.rt.regions)

	c.anims.prune(c.fc.now)
	c.stats.Animations = len(c.anims.entries)

	c.phase = phaseIdle
	return c.fc.drawList, c.anims.nextWait(c.fc.now)
}

func (c *Ctx) emitNode(n *node) {
	if n.kind == nodeText {
		if n.text != "" {
			c.fc.drawList = append(c.fc.drawList, DrawCommand{
				Kind:     CmdText,
				Rect:     n.rect,
				Clip:     n.clip,
				Z:        n.z,
				Color:    n.fg,
				Text:     n.text,
				FontSize: n.fontSize,
			})
		}
	} else if n.bg[3] > 0 {
		c.fc.drawList = append(c.fc.drawList, DrawCommand{
			Kind:  CmdRect,
			Rect:  n.rect,
			Clip:  n.clip,
			Z:     n.z,
			Color: n.bg,
		})
	}
	if n.mask != 0 && n.id != 0 {
		c.fc.regions = append(c.fc.regions, hitRegion{
			id:        n.id,
			rect:      n.rect.Intersect(n.clip),
			z:         n.z,
			mask:      n.mask,
			focusable: n.focusable,
		})
	}
	if n.focusable && n.id != 0 {
		c.fc.focusables = append(c.fc.focusables, n.id)
	}
}

// AddEvent routes one input event. Pointer events go to the capture holder or
// to the topmost hit region of the last completed frame; key and text events
// go to the focused widget. Events may arrive between frames or during one;
// widgets observe them through the query APIs until the frame ends.
func (c *Ctx) AddEvent(ev Event) bool {
	if ev.Kind == EventKeyDown && ev.Key == KeyTab {
		// Focus traversal is toolkit-level: Tab never reaches widgets.
		if ev.Mods&ModShift != 0 {
			c.rt.moveFocus(-1)
		} else {
			c.rt.moveFocus(1)
		}
		ev.Handled = true
		return true
	}
	c.rt.route(&ev)
	c.fc.events = append(c.fc.events, ev)
	return ev.Handled
}

// ===== Declaration =====

func (c *Ctx) assertBuilding(op string) {
	if c.phase != phaseBuilding {
		panic("ui: " + op + " called outside BeginFrame/EndFrame")
	}
}

// declare computes the identity for key under the current parent, tracking
// occurrence indices so repeated keys (loop bodies) stay distinct and stable.
// A duplicate identity within one frame is fatal.
func (c *Ctx) declare(key string) (ID, int32) {
	parentIdx := c.fc.parentStack[len(c.fc.parentStack)-1]
	parentID := c.fc.nodes[parentIdx].id

	ok := occKey{parent: parentID, key: key}
	occ := c.fc.occ[ok]
	c.fc.occ[ok] = occ + 1

	id := DeriveID(parentID, key, occ)
	if _, dup := c.fc.seen[id]; dup {
		panic(fmt.Sprintf("ui: duplicate widget id %#x (key %q) declared twice in one frame", uint64(id), key))
	}
	c.fc.seen[id] = struct{}{}
	return id, parentIdx
}

func (c *Ctx) appendNode(n node, parentIdx int32) int32 {
	idx := int32(len(c.fc.nodes))
	n.parent = parentIdx
	n.firstChild, n.lastChild, n.nextSib = -1, -1, -1
	c.fc.zCounter++
	n.z = c.fc.zCounter
	c.fc.nodes = append(c.fc.nodes, n)

	p := &c.fc.nodes[parentIdx]
	if p.firstChild < 0 {
		p.firstChild = idx
	} else {
		c.fc.nodes[p.lastChild].nextSib = idx
	}
	p.lastChild = idx
	return idx
}

// PeekID returns the identity the next declaration with key would receive
// under the current parent, without consuming the occurrence slot. Widgets
// use it to query last-frame interaction state before declaring their box.
func (c *Ctx) PeekID(key string) ID {
	c.assertBuilding("PeekID")
	parentIdx := c.fc.parentStack[len(c.fc.parentStack)-1]
	parentID := c.fc.nodes[parentIdx].id
	return DeriveID(parentID, key, c.fc.occ[occKey{parent: parentID, key: key}])
}

// Pixels scrolled per wheel notch.
const wheelStep = 24

// BeginBox opens a container. Every BeginBox needs a matching EndBox; widgets
// declared in between become its children.
func (c *Ctx) BeginBox(p BoxProps) ID {
	c.assertBuilding("BeginBox")
	id, parentIdx := c.declare(p.Key)
	if p.Scroll {
		p.Clip = true
		p.Mask |= MaskWheel
		st := GetOrCreate(c.store, DeriveID(id, "scroll.offset", 0), scrollOffset{})
		dx, dy := c.Wheel(id)
		st.X -= dx * wheelStep
		st.Y -= dy * wheelStep
	}
	idx := c.appendNode(boxNode(id, p), parentIdx)
	c.fc.parentStack = append(c.fc.parentStack, idx)
	return id
}

// EndBox closes the innermost open container.
func (c *Ctx) EndBox() {
	c.assertBuilding("EndBox")
	if len(c.fc.parentStack) <= 1 {
		panic("ui: EndBox without matching BeginBox")
	}
	c.fc.parentStack = c.fc.parentStack[:len(c.fc.parentStack)-1]
}

// Box declares a leaf box (no children).
func (c *Ctx) Box(p BoxProps) ID {
	c.assertBuilding("Box")
	id, parentIdx := c.declare(p.Key)
	c.appendNode(boxNode(id, p), parentIdx)
	return id
}

// ScrollOffset reads the retained offset of a Scroll box.
func (c *Ctx) ScrollOffset(id ID) (x, y float32) {
	st, ok := Peek[scrollOffset](c.store, DeriveID(id, "scroll.offset", 0))
	if !ok {
		return 0, 0
	}
	return st.X, st.Y
}

func boxNode(id ID, p BoxProps) node {
	return node{
		id:         id,
		kind:       nodeBox,
		axis:       p.Axis,
		mainAlign:  p.MainAlign,
		crossAlign: p.CrossAlign,
		gap:        p.Gap,
		padding:    p.Padding,
		width:      p.Width,
		height:     p.Height,
		cols:       p.Cols,
		clips:      p.Clip,
		scrollX:    p.ScrollX,
		scrollY:    p.ScrollY,
		absX:       p.X,
		absY:       p.Y,
		scroll:     p.Scroll,
		mask:       p.Mask,
		focusable:  p.Focusable,
		bg:         p.Bg,
	}
}

// Text declares a text leaf. Measurement is cached in the widget's retained
// state and recomputed only when the string or size changes.
func (c *Ctx) Text(p TextProps) ID {
	c.assertBuilding("Text")
	id, parentIdx := c.declare(p.Key)

	if p.FontSize <= 0 {
		p.FontSize = 16
	}
	if p.Color[3] == 0 {
		p.Color = colors.White
	}

	tc := GetOrCreate(c.store, id, textCache{})
	if tc.text != p.Text || tc.size != p.FontSize {
		tc.w, tc.h = c.measurer.MeasureText(p.Text, p.FontSize)
		tc.text, tc.size = p.Text, p.FontSize
	}

	c.appendNode(node{
		id:       id,
		kind:     nodeText,
		width:    p.Width,
		height:   p.Height,
		absX:     p.X,
		absY:     p.Y,
		contentW: tc.w,
		contentH: tc.h,
		text:     p.Text,
		fontSize: p.FontSize,
		fg:       p.Color,
	}, parentIdx)
	return id
}

// PeekMinSize reads a widget's cached measurement from a previous frame
// without touching its liveness, for parents that want a child's extent
// before the child is declared.
func (c *Ctx) PeekMinSize(id ID) (w, h float32, ok bool) {
	hint, ok := Peek[layoutHint](c.store, DeriveID(id, "layout.hint", 0))
	if !ok {
		return 0, 0, false
	}
	return hint.W, hint.H, true
}

// ===== Interaction queries =====

// Hot reports whether the pointer currently rests on the widget (topmost hit,
// no other widget holding capture).
func (c *Ctx) Hot(id ID) bool {
	if c.rt.captured != 0 {
		return c.rt.captured == id
	}
	target, ok := c.rt.hitTest(c.rt.pointerX, c.rt.pointerY, EventPointerMove)
	return ok && target == id
}

// Active reports whether the widget holds the pointer press (capture).
func (c *Ctx) Active(id ID) bool { return c.rt.pressedID == id }

// Clicked reports whether a pointer press on the widget was released on it
// this frame.
func (c *Ctx) Clicked(id ID) bool { return c.rt.releasedID == id && c.rt.releasedInside }

// Wheel returns the wheel deltas routed to the widget this frame.
func (c *Ctx) Wheel(id ID) (dx, dy float32) {
	if c.rt.wheelID != id {
		return 0, 0
	}
	return c.rt.wheelDX, c.rt.wheelDY
}

// LastRect returns the widget's placed (and clipped) rectangle from the last
// completed frame, for widgets that interpret pointer positions relative to
// their own geometry (sliders, drag handles).
func (c *Ctx) LastRect(id ID) (Rect, bool) {
	for i := range c.rt.regions {
		if c.rt.regions[i].id == id {
			return c.rt.regions[i].rect, true
		}
	}
	return Rect{}, false
}

// Pointer returns the last known pointer position.
func (c *Ctx) Pointer() (x, y float32) { return c.rt.pointerX, c.rt.pointerY }

// Focused reports keyboard focus.
func (c *Ctx) Focused(id ID) bool { return c.rt.focused == id }

// FocusedID returns the focused widget, zero when none.
func (c *Ctx) FocusedID() ID { return c.rt.focused }

// SetFocus moves keyboard focus; zero clears it.
func (c *Ctx) SetFocus(id ID) { c.rt.focused = id }

// MoveFocus walks the previous frame's focusable declaration order, wrapping
// at the ends.
func (c *Ctx) MoveFocus(delta int) { c.rt.moveFocus(delta) }

// CapturedID returns the pointer capture holder, zero when none.
func (c *Ctx) CapturedID() ID { return c.rt.captured }

// ReleaseCapture drops pointer capture before the pointer-up that would
// normally clear it.
func (c *Ctx) ReleaseCapture() {
	c.rt.captured = 0
	c.rt.pressedID = 0
}

// WidgetEvents visits this frame's events routed to the widget, in arrival
// order. Used by focused widgets for key and text input.
func (c *Ctx) WidgetEvents(id ID, fn func(Event)) {
	for i := range c.fc.events {
		if c.fc.events[i].Target == id {
			fn(c.fc.events[i])
		}
	}
}

// SetCursor records the cursor-shape hint for this frame.
func (c *Ctx) SetCursor(cur Cursor) { c.cursor = cur }

// CursorHint returns the shape requested by the last frame's widgets.
func (c *Ctx) CursorHint() Cursor { return c.cursor }

// ClipboardGet reads the host clipboard; empty without a backend clipboard.
func (c *Ctx) ClipboardGet() string {
	if c.clip == nil {
		return ""
	}
	return c.clip.ClipboardGet()
}

// ClipboardSet writes the host clipboard; no-op without one.
func (c *Ctx) ClipboardSet(s string) {
	if c.clip != nil {
		c.clip.ClipboardSet(s)
	}
}

// ===== Animation =====

// Animate starts (or restarts) the named animation on the widget, running
// from 'from' to 'to' over duration starting at the current frame timestamp.
func (c *Ctx) Animate(id ID, name string, from, to float32, duration time.Duration, fn ease.TweenFunc) {
	c.assertBuilding("Animate")
	c.anims.start(id, name, from, to, duration, fn, c.fc.now)
}

// AnimValue samples the named animation at the frame timestamp. ok is false
// once the entry has been pruned (or never existed).
func (c *Ctx) AnimValue(id ID, name string) (float32, bool) {
	return c.anims.value(id, name, c.fc.now)
}

// Animating reports whether the named animation still has time to run.
func (c *Ctx) Animating(id ID, name string) bool {
	return c.anims.running(id, name, c.fc.now)
}

// StopAnim removes the named animation without delivering its final value.
func (c *Ctx) StopAnim(id ID, name string) { c.anims.stop(id, name) }
