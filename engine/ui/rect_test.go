package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRectClampsNegativeSizes(t *testing.T) {
	r := NewRect(10, 10, -5, -5)
	assert.Equal(t, Rect{X: 10, Y: 10}, r)
	assert.True(t, r.Empty())
}

func TestContainsIncludesEdges(t *testing.T) {
	r := NewRect(10, 10, 20, 20)
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(30, 30))
	assert.True(t, r.Contains(20, 20))
	assert.False(t, r.Contains(9.99, 20))
	assert.False(t, r.Contains(20, 30.01))
}

func TestIntersectOfDisjointRectsIsEmpty(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, 20, 10, 10)
	got := a.Intersect(b)
	assert.True(t, got.Empty())
	assert.GreaterOrEqual(t, got.W, float32(0))
	assert.GreaterOrEqual(t, got.H, float32(0))
}

func TestIntersectOverlap(t *testing.T) {
	a := NewRect(0, 0, 20, 20)
	b := NewRect(10, 5, 20, 20)
	assert.Equal(t, Rect{X: 10, Y: 5, W: 10, H: 15}, a.Intersect(b))
}

func TestInsetClampsAtZeroSize(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	assert.Equal(t, Rect{X: 2, Y: 2, W: 6, H: 6}, r.Inset(2, 2, 2, 2))
	assert.True(t, r.Inset(8, 8, 8, 8).Empty())
}
