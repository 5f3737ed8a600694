package ui

import "github.com/chewxy/math32"

// Rect is an axis-aligned rectangle in window coordinates (origin top-left).
type Rect struct {
	X, Y, W, H float32
}

func NewRect(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: math32.Max(w, 0), H: math32.Max(h, 0)}
}

func (r Rect) Right() float32  { return r.X + r.W }
func (r Rect) Bottom() float32 { return r.Y + r.H }

// Empty reports whether the rect encloses no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the point lies inside the rect (edges inclusive).
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Intersect returns the overlap of two rects. Disjoint rects yield an
// empty rect with zero size, never negative.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math32.Max(r.X, o.X)
	y0 := math32.Max(r.Y, o.Y)
	x1 := math32.Min(r.Right(), o.Right())
	y1 := math32.Min(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: math32.Max(0, x1-x0), H: math32.Max(0, y1-y0)}
}

// Inset shrinks the rect by the given insets, clamping size at zero.
func (r Rect) Inset(l, t, rr, b float32) Rect {
	return Rect{
		X: r.X + l,
		Y: r.Y + t,
		W: math32.Max(0, r.W-l-rr),
		H: math32.Max(0, r.H-t-b),
	}
}

func clampf(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}
