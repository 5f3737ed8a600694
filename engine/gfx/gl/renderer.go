// Package glbackend consumes the UI core's draw command list with OpenGL 3.3:
// batched quads in one vertex stream, the font atlas plus a white texel for
// solid fills, scissor per clip rect.
package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/canopy/engine/text"
	"github.com/hubastard/canopy/engine/ui"
)

// Vertex: pos2 + color4 + uv2 => 8 floats.
const (
	vStride  = 8
	maxQuads = 4096
)

type Renderer struct {
	program uint32
	vao     uint32
	vbo     uint32
	ibo     uint32
	atlas   uint32
	projLoc int32

	font  *text.Font
	clear [4]float32

	verts []float32
	quads int

	// Scissor state of the open batch.
	curClip ui.Rect
	fbW     int
	fbH     int
}

// New builds the pipeline and uploads the font atlas. Requires a current GL
// context on the calling thread.
func New(fnt *text.Font, clearColor [4]float32) (*Renderer, error) {
	r := &Renderer{font: fnt, clear: clearColor}

	var err error
	r.program, err = makeProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	r.projLoc = gl.GetUniformLocation(r.program, gl.Str("uProj\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, maxQuads*4*vStride*4, nil, gl.DYNAMIC_DRAW)

	// Static index buffer: two triangles per quad.
	inds := make([]uint32, maxQuads*6)
	for q := 0; q < maxQuads; q++ {
		base := uint32(q * 4)
		copy(inds[q*6:], []uint32{base, base + 1, base + 2, base + 2, base + 3, base})
	}
	gl.GenBuffers(1, &r.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(inds)*4, gl.Ptr(inds), gl.STATIC_DRAW)

	const stride = vStride * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.BindVertexArray(0)

	// Atlas texture, with a white 2x2 block patched at the origin so solid
	// quads sample opaque white (the packer leaves that corner empty).
	gl.GenTextures(1, &r.atlas)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(fnt.AtlasW), int32(fnt.AtlasH),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(fnt.Pixels))
	white := [16]byte{255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255}
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, 2, 2, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(white[:]))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.verts = make([]float32, 0, maxQuads*4*vStride)
	return r, nil
}

func (r *Renderer) Shutdown() {
	if r.atlas != 0 {
		gl.DeleteTextures(1, &r.atlas)
	}
	if r.ibo != 0 {
		gl.DeleteBuffers(1, &r.ibo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Render clears the framebuffer and replays one frame's command list.
// Commands arrive z-ordered; batches break on clip changes.
func (r *Renderer) Render(list ui.DrawList, fbW, fbH int) error {
	r.fbW, r.fbH = fbW, fbH
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(r.clear[0], r.clear[1], r.clear[2], r.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.program)
	proj := orthoTopLeft(float32(fbW), float32(fbH))
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])
	gl.BindVertexArray(r.vao)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)
	gl.Enable(gl.SCISSOR_TEST)

	r.curClip = ui.NewRect(0, 0, float32(fbW), float32(fbH))
	r.applyScissor(r.curClip)

	for i := range list {
		cmd := &list[i]
		if cmd.Clip != r.curClip {
			r.flush()
			r.curClip = cmd.Clip
			r.applyScissor(cmd.Clip)
		}
		switch cmd.Kind {
		case ui.CmdRect:
			r.pushSolid(cmd.Rect, cmd.Color)
		case ui.CmdText:
			r.pushText(cmd)
		}
	}
	r.flush()

	gl.Disable(gl.SCISSOR_TEST)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	return nil
}

func (r *Renderer) applyScissor(clip ui.Rect) {
	// GL scissor origin is bottom-left; clip rects are top-left.
	gl.Scissor(
		int32(clip.X),
		int32(float32(r.fbH)-clip.Y-clip.H),
		int32(clip.W),
		int32(clip.H),
	)
}

// White-texel UV at the patched atlas corner.
func (r *Renderer) whiteUV() (float32, float32) {
	return 1.0 / float32(r.font.AtlasW), 1.0 / float32(r.font.AtlasH)
}

func (r *Renderer) pushSolid(rc ui.Rect, col [4]float32) {
	u, v := r.whiteUV()
	r.pushQuad(rc.X, rc.Y, rc.W, rc.H, col, u, v, u, v)
}

func (r *Renderer) pushText(cmd *ui.DrawCommand) {
	fnt := r.font
	scale := float32(1)
	if cmd.FontSize > 0 && fnt.SizePx > 0 {
		scale = cmd.FontSize / fnt.SizePx
	}
	penX := cmd.Rect.X
	baseY := cmd.Rect.Y + fnt.Ascent*scale
	var prev rune = -1

	for _, ch := range cmd.Text {
		if ch == '\n' {
			penX = cmd.Rect.X
			baseY += fnt.LineHeight() * scale
			prev = -1
			continue
		}
		g, ok := fnt.Glyphs[ch]
		if !ok {
			if sp, ok2 := fnt.Glyphs[' ']; ok2 {
				penX += sp.Advance * scale
			}
			prev = ch
			continue
		}
		if prev >= 0 {
			penX += fnt.Kern(prev, ch) * scale
		}
		if g.W > 0 && g.H > 0 {
			left := penX + g.BearingX*scale
			top := baseY - g.BearingY*scale
			r.pushQuad(left, top, float32(g.W)*scale, float32(g.H)*scale,
				cmd.Color, g.U0, g.V0, g.U1, g.V1)
		}
		penX += g.Advance * scale
		prev = ch
	}
}

func (r *Renderer) pushQuad(x, y, w, h float32, col [4]float32, u0, v0, u1, v1 float32) {
	if r.quads == maxQuads {
		r.flush()
	}
	r.verts = append(r.verts,
		x, y, col[0], col[1], col[2], col[3], u0, v0,
		x+w, y, col[0], col[1], col[2], col[3], u1, v0,
		x+w, y+h, col[0], col[1], col[2], col[3], u1, v1,
		x, y+h, col[0], col[1], col[2], col[3], u0, v1,
	)
	r.quads++
}

func (r *Renderer) flush() {
	if r.quads == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.verts)*4, gl.Ptr(r.verts))
	gl.DrawElements(gl.TRIANGLES, int32(r.quads*6), gl.UNSIGNED_INT, nil)
	r.verts = r.verts[:0]
	r.quads = 0
}

// orthoTopLeft maps (0,0)-(w,h) with Y down onto clip space.
func orthoTopLeft(w, h float32) [16]float32 {
	return [16]float32{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
}

// --- Shader utilities ---

const vertexSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec4 aColor;
layout(location=2) in vec2 aUV;
uniform mat4 uProj;
out vec4 vColor;
out vec2 vUV;
void main() {
    vColor = aColor;
    vUV = aUV;
    gl_Position = uProj * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const fragmentSource = `
#version 330 core
in vec4 vColor;
in vec2 vUV;
uniform sampler2D uAtlas;
out vec4 FragColor;
void main() {
    FragColor = vColor * texture(uAtlas, vUV);
}
` + "\x00"

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
