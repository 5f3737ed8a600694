package ui

import (
	"github.com/chewxy/math32"

	"github.com/hubastard/canopy/engine/colors"
)

// ===== Layout vocabulary =====

// Axis selects a container's layout policy.
type Axis uint8

const (
	AxisRow Axis = iota
	AxisColumn
	AxisOverlay  // children stacked atop each other, later = higher z
	AxisGrid     // fixed column count, rows sized by tallest cell
	AxisAbsolute // children placed at their own offsets within the content box
)

type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch // cross axis only: children fill the cross extent
)

type SizeMode uint8

const (
	SizeFit    SizeMode = iota // as small as content allows
	SizeFixed                  // exactly Value
	SizeExpand                 // min size plus a weighted share of leftover space
)

// SizeSpec is one axis of a widget's sizing policy.
type SizeSpec struct {
	Mode   SizeMode
	Value  float32 // SizeFixed
	Weight float32 // SizeExpand share; zero means 1
}

func Fit() SizeSpec               { return SizeSpec{Mode: SizeFit} }
func Px(v float32) SizeSpec       { return SizeSpec{Mode: SizeFixed, Value: v} }
func Expand() SizeSpec            { return SizeSpec{Mode: SizeExpand} }
func Weighted(w float32) SizeSpec { return SizeSpec{Mode: SizeExpand, Weight: w} }

func (s SizeSpec) weight() float32 {
	if s.Weight <= 0 {
		return 1
	}
	return s.Weight
}

type Insets struct{ L, T, R, B float32 }

func InsetsAll(v float32) Insets { return Insets{v, v, v, v} }

// BoxProps declares a container or leaf box.
type BoxProps struct {
	Key        string
	Axis       Axis
	MainAlign  Align
	CrossAlign Align
	Gap        float32
	Padding    Insets
	Width      SizeSpec
	Height     SizeSpec
	Bg         colors.Color

	// Clip confines children (drawing and hit areas) to this box.
	Clip bool

	// Scroll makes the box a scroll viewport: the core retains its offset,
	// applies wheel events routed to it and clamps against the content
	// extent. Implies Clip and wheel opt-in.
	Scroll bool

	// Scroll offsets shift children within the content box (explicit
	// offsets for callers managing their own scroll state).
	ScrollX, ScrollY float32

	// Grid column count; only read when Axis == AxisGrid.
	Cols int

	// Offset within the parent's content box when the parent is AxisAbsolute.
	X, Y float32

	// Event opt-in and focusability.
	Mask      EventMask
	Focusable bool
}

// TextProps declares a text leaf.
type TextProps struct {
	Key      string
	Text     string
	FontSize float32
	Color    colors.Color
	Width    SizeSpec
	Height   SizeSpec
	X, Y     float32
}

// ===== Frame-scoped node tree =====

// Nodes live in a flat arena slice reset each frame; links are indices so a
// frame allocates nothing once the arena has warmed up.
type nodeKind uint8

const (
	nodeBox nodeKind = iota
	nodeText
)

type node struct {
	id   ID
	kind nodeKind

	parent, firstChild, lastChild, nextSib int32

	axis       Axis
	mainAlign  Align
	crossAlign Align
	gap        float32
	padding    Insets
	width      SizeSpec
	height     SizeSpec
	cols       int
	clips      bool
	scroll     bool
	scrollX    float32
	scrollY    float32
	absX, absY float32

	// Content min size (text measurement or zero for plain boxes).
	contentW, contentH float32

	// Measure pass output. kidsW/kidsH are the children extent without
	// padding, kept for scroll clamping.
	minW, minH   float32
	kidsW, kidsH float32

	// Place pass output.
	rect Rect
	clip Rect

	z         int32
	mask      EventMask
	focusable bool

	bg       colors.Color
	text     string
	fontSize float32
	fg       colors.Color
}

// layoutHint is the per-widget cached measurement, readable next frame by a
// parent via PeekMinSize before the child is declared.
type layoutHint struct {
	W, H float32
}

// scrollOffset is the retained offset of a Scroll box, clamped to the
// content extent during the place pass.
type scrollOffset struct {
	X, Y float32
}

// textCache avoids re-measuring a text run whose content hasn't changed.
type textCache struct {
	text string
	size float32
	w, h float32
}

// ===== Measure pass (bottom-up) =====

func (c *Ctx) measure(i int32) (float32, float32) {
	n := &c.fc.nodes[i]

	var kidsMain, kidsCross float32 // aggregated children min sizes
	switch n.axis {
	case AxisRow, AxisColumn:
		count := 0
		for k := n.firstChild; k >= 0; k = c.fc.nodes[k].nextSib {
			w, h := c.measure(k)
			if n.axis == AxisRow {
				kidsMain += w
				kidsCross = math32.Max(kidsCross, h)
			} else {
				kidsMain += h
				kidsCross = math32.Max(kidsCross, w)
			}
			count++
		}
		if count > 1 {
			kidsMain += n.gap * float32(count-1)
		}
	case AxisOverlay, AxisAbsolute:
		for k := n.firstChild; k >= 0; k = c.fc.nodes[k].nextSib {
			w, h := c.measure(k)
			kc := &c.fc.nodes[k]
			if n.axis == AxisAbsolute {
				w += kc.absX
				h += kc.absY
			}
			kidsMain = math32.Max(kidsMain, h)
			kidsCross = math32.Max(kidsCross, w)
		}
	case AxisGrid:
		cols := n.cols
		if cols < 1 {
			cols = 1
		}
		var maxCellW, rowH, gridH float32
		col, rows := 0, 0
		for k := n.firstChild; k >= 0; k = c.fc.nodes[k].nextSib {
			w, h := c.measure(k)
			maxCellW = math32.Max(maxCellW, w)
			rowH = math32.Max(rowH, h)
			col++
			if col == cols {
				gridH += rowH
				rowH, col = 0, 0
				rows++
			}
		}
		if col > 0 {
			gridH += rowH
			rows++
		}
		kidsCross = maxCellW*float32(cols) + n.gap*float32(cols-1)
		kidsMain = gridH
		if rows > 1 {
			kidsMain += n.gap * float32(rows-1)
		}
	}

	if n.axis == AxisRow {
		n.kidsW, n.kidsH = kidsMain, kidsCross
	} else {
		n.kidsW, n.kidsH = kidsCross, kidsMain
	}

	var contentW, contentH float32
	switch n.axis {
	case AxisRow:
		contentW = math32.Max(n.contentW, kidsMain)
		contentH = math32.Max(n.contentH, kidsCross)
	default:
		contentW = math32.Max(n.contentW, kidsCross)
		contentH = math32.Max(n.contentH, kidsMain)
	}
	contentW += n.padding.L + n.padding.R
	contentH += n.padding.T + n.padding.B

	n.minW = resolveMin(n.width, contentW)
	n.minH = resolveMin(n.height, contentH)

	if n.id != 0 {
		hint := GetOrCreate(c.store, DeriveID(n.id, "layout.hint", 0), layoutHint{})
		hint.W, hint.H = n.minW, n.minH
	}
	return n.minW, n.minH
}

func resolveMin(s SizeSpec, content float32) float32 {
	if s.Mode == SizeFixed {
		return math32.Max(s.Value, 0)
	}
	return math32.Max(content, 0)
}

// ===== Place pass (top-down) =====

func (c *Ctx) place(i int32, allotted Rect, clip Rect) {
	n := &c.fc.nodes[i]
	n.rect = allotted
	n.clip = clip

	childClip := clip
	if n.clips {
		childClip = clip.Intersect(allotted)
	}

	inner := allotted.Inset(n.padding.L, n.padding.T, n.padding.R, n.padding.B)
	inner.X -= n.scrollX
	inner.Y -= n.scrollY
	if n.scroll {
		st := GetOrCreate(c.store, DeriveID(n.id, "scroll.offset", 0), scrollOffset{})
		st.X = clampf(st.X, 0, math32.Max(0, n.kidsW-inner.W))
		st.Y = clampf(st.Y, 0, math32.Max(0, n.kidsH-inner.H))
		inner.X -= st.X
		inner.Y -= st.Y
	}

	switch n.axis {
	case AxisRow, AxisColumn:
		c.placeFlex(n, inner, childClip)
	case AxisOverlay:
		for k := n.firstChild; k >= 0; k = c.fc.nodes[k].nextSib {
			kc := &c.fc.nodes[k]
			w := resolveFinal(kc.width, kc.minW, inner.W)
			h := resolveFinal(kc.height, kc.minH, inner.H)
			c.place(k, NewRect(inner.X, inner.Y, w, h), childClip)
		}
	case AxisAbsolute:
		for k := n.firstChild; k >= 0; k = c.fc.nodes[k].nextSib {
			kc := &c.fc.nodes[k]
			w := resolveFinal(kc.width, kc.minW, inner.W)
			h := resolveFinal(kc.height, kc.minH, inner.H)
			c.place(k, NewRect(inner.X+kc.absX, inner.Y+kc.absY, w, h), childClip)
		}
	case AxisGrid:
		c.placeGrid(n, inner, childClip)
	}
}

// placeFlex lays out a row or column: fixed/fit children keep their min size
// along the main axis, expand children split the leftover by weight, and the
// cross axis honors alignment with optional stretch.
func (c *Ctx) placeFlex(n *node, inner Rect, clip Rect) {
	vertical := n.axis == AxisColumn
	innerMain, innerCross := inner.W, inner.H
	if vertical {
		innerMain, innerCross = inner.H, inner.W
	}

	var minSum, weightSum float32
	count := 0
	for k := n.firstChild; k >= 0; k = c.fc.nodes[k].nextSib {
		kc := &c.fc.nodes[k]
		main, spec := kc.minW, kc.width
		if vertical {
			main, spec = kc.minH, kc.height
		}
		minSum += main
		if spec.Mode == SizeExpand {
			weightSum += spec.weight()
		}
		count++
	}
	gapTotal := float32(0)
	if count > 1 {
		gapTotal = n.gap * float32(count-1)
	}

	extra := math32.Max(0, innerMain-minSum-gapTotal)
	cursor := float32(0)
	if weightSum == 0 {
		switch n.mainAlign {
		case AlignCenter:
			cursor = extra * 0.5
		case AlignEnd:
			cursor = extra
		}
	}

	for k := n.firstChild; k >= 0; k = c.fc.nodes[k].nextSib {
		kc := &c.fc.nodes[k]

		mainSpec, crossSpec := kc.width, kc.height
		main, cross := kc.minW, kc.minH
		if vertical {
			mainSpec, crossSpec = kc.height, kc.width
			main, cross = kc.minH, kc.minW
		}
		if mainSpec.Mode == SizeExpand && weightSum > 0 {
			main += extra * mainSpec.weight() / weightSum
		}

		if n.crossAlign == AlignStretch || crossSpec.Mode == SizeExpand {
			cross = innerCross
		}
		cross = clampf(cross, 0, math32.Max(innerCross, 0))

		var crossPos float32
		switch n.crossAlign {
		case AlignCenter:
			crossPos = (innerCross - cross) * 0.5
		case AlignEnd:
			crossPos = innerCross - cross
		}

		var r Rect
		if vertical {
			r = NewRect(inner.X+crossPos, inner.Y+cursor, cross, main)
		} else {
			r = NewRect(inner.X+cursor, inner.Y+crossPos, main, cross)
		}
		c.place(k, r, clip)
		cursor += main + n.gap
	}
}

func (c *Ctx) placeGrid(n *node, inner Rect, clip Rect) {
	cols := n.cols
	if cols < 1 {
		cols = 1
	}
	cellW := math32.Max(0, (inner.W-n.gap*float32(cols-1))/float32(cols))

	// Row heights first: tallest min height per row. They are carved from the
	// frame scratch arena past its high-water mark, so a nested grid placed
	// inside the loop below appends behind this region instead of overwriting
	// it; the mark is restored on exit.
	base := len(c.fc.scratch)
	defer func() { c.fc.scratch = c.fc.scratch[:base] }()

	col, cur := 0, float32(0)
	for k := n.firstChild; k >= 0; k = c.fc.nodes[k].nextSib {
		cur = math32.Max(cur, c.fc.nodes[k].minH)
		col++
		if col == cols {
			c.fc.scratch = append(c.fc.scratch, cur)
			col, cur = 0, 0
		}
	}
	if col > 0 {
		c.fc.scratch = append(c.fc.scratch, cur)
	}
	rowH := c.fc.scratch[base:]

	col = 0
	row := 0
	y := inner.Y
	for k := n.firstChild; k >= 0; k = c.fc.nodes[k].nextSib {
		kc := &c.fc.nodes[k]
		h := rowH[row]
		w := cellW
		if kc.width.Mode != SizeExpand && n.crossAlign != AlignStretch {
			w = math32.Min(kc.minW, cellW)
		}
		if kc.height.Mode != SizeExpand && n.crossAlign != AlignStretch {
			h = math32.Min(kc.minH, rowH[row])
		}
		x := inner.X + float32(col)*(cellW+n.gap)
		c.place(k, NewRect(x, y, w, h), clip)
		col++
		if col == cols {
			col = 0
			y += rowH[row] + n.gap
			row++
		}
	}
}

func resolveFinal(s SizeSpec, min, avail float32) float32 {
	if s.Mode == SizeExpand {
		return math32.Max(min, avail)
	}
	return min
}
