// Package text rasterizes a glyph atlas for measurement and backend-side text
// drawing. The UI core never imports this; it only sees the measurement
// capability through its TextMeasurer interface.
package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // baseline-to-top in pixels
	W, H     int     // glyph bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

// Font is a rasterized face: metrics, glyph table and the atlas bitmap
// (white coverage on transparent, ready for GPU upload by the backend).
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Pixels                   []byte // RGBA, AtlasW*AtlasH*4
	AtlasW, AtlasH           int

	face font.Face
}

func (f *Font) Close() {
	if f != nil && f.face != nil {
		_ = f.face.Close()
		f.face = nil
	}
}

func (f *Font) LineHeight() float32 { return f.Ascent - f.Descent + f.LineGap }

// Kern returns the kerning adjustment between two runes in pixels.
func (f *Font) Kern(a, b rune) float32 {
	if f.face == nil {
		return 0
	}
	return float32(f.face.Kern(a, b)) / 64.0
}

// Load builds a white-coverage glyph atlas for ASCII/Latin-1 at sizePx.
func Load(path string, sizePx float32) (*Font, error) {
	ttfData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}

	ft, err := opentype.Parse(ttfData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	measure := make([]meas, 0, 224)
	for rr := rune(32); rr <= rune(255); rr++ {
		br, adv, ok := face.GlyphBounds(rr)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r:   rr,
			w:   (br.Max.X - br.Min.X).Round(),
			h:   (br.Max.Y - br.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Round()),
			by:  float32(-br.Min.Y.Round()),
		})
	}

	// Shelf packer; grow the atlas until everything fits.
	const padding = 2
	atlasSize := 256
	var pos map[rune]image.Point
	for {
		x, y, rowH := padding, padding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))
		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if x+g.w+padding > atlasSize {
				x = padding
				y += rowH + padding
				rowH = 0
			}
			if y+g.h+padding > atlasSize {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + padding
			if g.h > rowH {
				rowH = g.h
			}
		}
		if fits {
			break
		}
		atlasSize *= 2
		if atlasSize > 4096 {
			return nil, fmt.Errorf("font atlas too large (>%d)", 4096)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{color.RGBA{}}, image.Point{}, draw.Src)

	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		gl := Glyph{
			Rune: g.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
		}
		if g.w > 0 && g.h > 0 {
			p := pos[g.r]
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			gl.U0 = float32(p.X) / float32(atlasSize)
			gl.V0 = float32(p.Y) / float32(atlasSize)
			gl.U1 = float32(p.X+g.w) / float32(atlasSize)
			gl.V1 = float32(p.Y+g.h) / float32(atlasSize)
		}
		glyphs[g.r] = gl
	}

	return &Font{
		SizePx: sizePx,
		Ascent: ascent, Descent: descent, LineGap: lineGap,
		Glyphs: glyphs,
		Pixels: dst.Pix,
		AtlasW: atlasSize, AtlasH: atlasSize,
		face: face,
	}, nil
}

// Measure returns the extent of s rendered at the given size, handling
// newlines. Scaling is linear from the rasterized size.
func (f *Font) Measure(s string, size float32) (width, height float32) {
	var lineW float32
	var prev rune = -1
	lineH := f.LineHeight()
	height = lineH

	scale := float32(1)
	if size > 0 && f.SizePx > 0 {
		scale = size / f.SizePx
	}

	for _, r := range s {
		if r == '\n' {
			if lineW > width {
				width = lineW
			}
			lineW = 0
			height += lineH
			prev = -1
			continue
		}
		g, ok := f.Glyphs[r]
		if !ok {
			if sp, ok2 := f.Glyphs[' ']; ok2 {
				lineW += sp.Advance
			}
			prev = r
			continue
		}
		if prev >= 0 {
			lineW += f.Kern(prev, r)
		}
		lineW += g.Advance
		prev = r
	}
	if lineW > width {
		width = lineW
	}
	return width * scale, height * scale
}
