package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithAlphaLeavesReceiverUntouched(t *testing.T) {
	c := White
	got := c.WithAlpha(0.5)
	assert.Equal(t, Color{1, 1, 1, 0.5}, got)
	assert.Equal(t, White, c)
}

func TestScaleOnlyAffectsRGB(t *testing.T) {
	c := Color{0.5, 0.4, 0.2, 0.8}
	assert.Equal(t, Color{1, 0.8, 0.4, 0.8}, c.Scale(2))
}

func TestLerpEndpointsAndClamping(t *testing.T) {
	assert.Equal(t, Black, Lerp(Black, White, 0))
	assert.Equal(t, White, Lerp(Black, White, 1))
	assert.Equal(t, Color{0.5, 0.5, 0.5, 1}, Lerp(Black, White, 0.5))
	assert.Equal(t, Black, Lerp(Black, White, -3), "t below zero clamps")
	assert.Equal(t, White, Lerp(Black, White, 3), "t above one clamps")
}
