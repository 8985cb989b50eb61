package render

// Vec2 is a 2D float vector laid out as two consecutive float32s.
type Vec2 struct {
	X float32
	Y float32
}

// Color is a linear RGB color with channels in [0,1].
type Color struct {
	R float32
	G float32
	B float32
}

// RGB builds a Color from byte channels.
func RGB(r, g, b uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255}
}

// Vertex is one corner of a glyph quad. Positions use a bottom-left origin
// and UVs use the GL convention where v=0 is the bottom of the texture.
type Vertex struct {
	Pos Vec2
	UV  Vec2
	FG  Color
	BG  Color
}

// V is shorthand for building a Vertex.
func V(x, y, u, v float32, fg, bg Color) Vertex {
	return Vertex{
		Pos: Vec2{X: x, Y: y},
		UV:  Vec2{X: u, Y: v},
		FG:  fg,
		BG:  bg,
	}
}

// Texture is an opaque GPU texture handle. Handles compare by ID; the zero
// Texture means "no texture".
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// Valid reports whether t refers to a registered texture.
func (t Texture) Valid() bool {
	return t.ID != 0
}

// Sprite is a textured quad submitted to a Batcher for one frame.
type Sprite struct {
	Texture     Texture
	TopLeft     Vertex
	TopRight    Vertex
	BottomRight Vertex
	BottomLeft  Vertex
}

// Batch is a contiguous run of vertices in the frame's vertex stream that
// shares one texture.
type Batch struct {
	Offset  int
	Count   int
	Texture Texture
}

// Ortho returns a column-major orthographic projection matrix.
func Ortho(l, r, b, t, n, f float32) [16]float32 {
	return [16]float32{
		2 / (r - l), 0, 0, 0,
		0, 2 / (t - b), 0, 0,
		0, 0, -2 / (f - n), 0,
		-(r + l) / (r - l), -(t + b) / (t - b), -(f + n) / (f - n), 1,
	}
}

// Project applies a column-major 4x4 matrix to the point (x, y, 0, 1) and
// returns the resulting x and y.
func Project(m [16]float32, x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}
