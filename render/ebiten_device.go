package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/glyphgrid/common"
)

// EbitenDevice implements Device on top of ebiten. Vertices use a
// bottom-left origin and GL-style UVs; the device flips both into ebiten's
// top-left convention.
type EbitenDevice struct {
	textures *TextureRegistry
	shader   *ebiten.Shader

	target     *ebiten.Image
	projection [16]float32
	targetW    float32
	targetH    float32

	uploaded []Vertex
	verts    []ebiten.Vertex
	indices  []uint32
	bound    *ebiten.Image
}

// NewEbitenDevice compiles the glyph shader and returns a device that resolves
// texture handles through textures.
func NewEbitenDevice(textures *TextureRegistry, shaderSrc []byte) (*EbitenDevice, error) {
	shader, err := ebiten.NewShader(shaderSrc)
	if err != nil {
		return nil, fmt.Errorf("render: compile glyph shader: %w", err)
	}
	return &EbitenDevice{textures: textures, shader: shader}, nil
}

// SetTarget selects the image drawn into and updates the projection to
// its size.
func (d *EbitenDevice) SetTarget(target *ebiten.Image) {
	if d == nil {
		return
	}
	d.target = target
	if target == nil {
		return
	}
	b := target.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	if w != d.targetW || h != d.targetH {
		d.targetW, d.targetH = w, h
		d.projection = Ortho(0, w, 0, h, -1, 1)
	}
}

// Upload converts the frame's vertex stream once. Source coordinates are
// resolved per batch in DrawArrays because they depend on the bound texture.
func (d *EbitenDevice) Upload(vertices []Vertex) {
	if d == nil {
		return
	}
	d.uploaded = vertices
	if cap(d.verts) < len(vertices) {
		d.verts = make([]ebiten.Vertex, len(vertices), max(len(vertices), 2*cap(d.verts)))
	}
	d.verts = d.verts[:len(vertices)]
	for i, v := range vertices {
		d.verts[i] = toEbitenVertex(v, d.projection, d.targetW, d.targetH)
	}
	for len(d.indices) < len(vertices) {
		d.indices = append(d.indices, uint32(len(d.indices)))
	}
}

// Bind selects the texture for subsequent draws.
func (d *EbitenDevice) Bind(tex Texture) {
	if d == nil {
		return
	}
	d.bound = d.textures.Image(tex)
	if d.bound == nil {
		common.Logger().Warn("render: bind unknown texture", "id", tex.ID)
	}
}

// DrawArrays draws vertices [offset, offset+count) with the bound texture.
func (d *EbitenDevice) DrawArrays(offset, count int) {
	if d == nil || d.target == nil || d.bound == nil || count <= 0 {
		return
	}
	if offset < 0 || offset+count > len(d.verts) {
		common.Logger().Warn("render: draw range outside uploaded vertices",
			"offset", offset, "count", count, "uploaded", len(d.verts))
		return
	}

	b := d.bound.Bounds()
	texW, texH := float32(b.Dx()), float32(b.Dy())
	verts := d.verts[offset : offset+count]
	for i := range verts {
		uv := d.uploaded[offset+i].UV
		verts[i].SrcX, verts[i].SrcY = uvToSource(uv, texW, texH)
		verts[i].SrcX += float32(b.Min.X)
		verts[i].SrcY += float32(b.Min.Y)
	}

	op := &ebiten.DrawTrianglesShaderOptions{}
	op.Images[0] = d.bound
	d.target.DrawTrianglesShader32(verts, d.indices[:count], d.shader, op)
}

// toEbitenVertex maps a bottom-left origin position through the projection
// into target pixels with a top-left origin. FG goes into the vertex color
// and BG into the custom channels read by the glyph shader.
func toEbitenVertex(v Vertex, projection [16]float32, w, h float32) ebiten.Vertex {
	nx, ny := Project(projection, v.Pos.X, v.Pos.Y)
	return ebiten.Vertex{
		DstX:    (nx + 1) / 2 * w,
		DstY:    (1 - ny) / 2 * h,
		ColorR:  v.FG.R,
		ColorG:  v.FG.G,
		ColorB:  v.FG.B,
		ColorA:  1,
		Custom0: v.BG.R,
		Custom1: v.BG.G,
		Custom2: v.BG.B,
		Custom3: 1,
	}
}

// uvToSource converts GL UVs (v=0 at the bottom) to source pixels (y=0 at
// the top).
func uvToSource(uv Vec2, texW, texH float32) (float32, float32) {
	return uv.X * texW, (1 - uv.Y) * texH
}
