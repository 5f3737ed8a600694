package text

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func loadTestFont(t *testing.T, sizePx float32) *Font {
	t.Helper()
	path := filepath.Join(t.TempDir(), "go-regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	f, err := Load(path, sizePx)
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func TestLoadBuildsAnAsciiAtlas(t *testing.T) {
	f := loadTestFont(t, 32)

	assert.Positive(t, f.Ascent)
	assert.Negative(t, f.Descent)
	assert.Positive(t, f.LineHeight())
	assert.Equal(t, len(f.Pixels), f.AtlasW*f.AtlasH*4)

	for _, r := range "AgW0 ~" {
		_, ok := f.Glyphs[r]
		assert.Truef(t, ok, "missing glyph %q", r)
	}

	a := f.Glyphs['A']
	assert.Positive(t, a.Advance)
	assert.Positive(t, a.W)
	assert.Less(t, a.U0, a.U1)
	assert.Less(t, a.V0, a.V1)
}

func TestLoadRejectsMissingOrBrokenFiles(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.ttf"), 32)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.ttf")
	require.NoError(t, os.WriteFile(bad, []byte("not a font"), 0o644))
	_, err = Load(bad, 32)
	assert.Error(t, err)
}

func TestMeasureGrowsWithContent(t *testing.T) {
	f := loadTestFont(t, 32)

	w1, h1 := f.Measure("hi", 32)
	w2, _ := f.Measure("hi there", 32)
	assert.Positive(t, w1)
	assert.Greater(t, w2, w1)
	assert.Equal(t, f.LineHeight(), h1)

	we, he := f.Measure("", 32)
	assert.Zero(t, we)
	assert.Equal(t, f.LineHeight(), he, "empty text still occupies a line")
}

func TestMeasureHandlesNewlines(t *testing.T) {
	f := loadTestFont(t, 32)

	w1, h1 := f.Measure("hello", 32)
	w2, h2 := f.Measure("hello\nhi", 32)
	assert.Equal(t, w1, w2, "widest line wins")
	assert.Equal(t, 2*h1, h2)
}

func TestMeasureScalesLinearlyFromRasterSize(t *testing.T) {
	f := loadTestFont(t, 32)

	w32, h32 := f.Measure("scale", 32)
	w16, h16 := f.Measure("scale", 16)
	assert.InDelta(t, w32/2, w16, 0.01)
	assert.InDelta(t, h32/2, h16, 0.01)
}
