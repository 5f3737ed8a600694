package scratch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSprintfVerbs(t *testing.T) {
	Init(256)
	defer Reset()

	assert.Equal(t, "frame 12", Sprintf("frame %d", 12))
	assert.Equal(t, "fps 59.94", Sprintf("fps %.2f", 59.94))
	assert.Equal(t, "0.500", Sprintf("%f", float32(0.5)))
	assert.Equal(t, "a=b 100%", Sprintf("a=%s 100%%", "b"))
	assert.Equal(t, "n 42", Sprintf("n %d", uint64(42)))
}

func TestSprintfResultsSurviveWithinAFrame(t *testing.T) {
	Init(256)
	defer Reset()

	a := Sprintf("row %d", 1)
	b := Sprintf("row %d", 2)
	assert.Equal(t, "row 1", a)
	assert.Equal(t, "row 2", b)
}

func TestResetReclaimsWithoutShrinking(t *testing.T) {
	Init(64)
	Sprintf("%s", "some content that takes space")
	c := Cap()
	Reset()
	assert.Zero(t, Len())
	assert.Equal(t, c, Cap())
}

func TestBuilderChainsPieces(t *testing.T) {
	Init(128)
	defer Reset()

	m := Mark()
	F().S("x=").I(7).C(' ').F64(1.25, 2)
	assert.Equal(t, "x=7 1.25", StringFrom(m))
}
