package terminal

import (
	"errors"
	"testing"

	"github.com/milk9111/glyphgrid/render"
)

type countingDevice struct {
	uploaded []render.Vertex
	draws    int
}

func (d *countingDevice) Upload(v []render.Vertex) { d.uploaded = append(d.uploaded[:0], v...) }
func (d *countingDevice) Bind(render.Texture)      {}
func (d *countingDevice) DrawArrays(offset, count int) {
	d.draws++
}

type countingPresenter struct{ presents int }

func (p *countingPresenter) Present() { p.presents++ }

// font12 is a 192x192 atlas, giving 12 pixel cells.
var font12 = render.Texture{ID: 7, Width: 192, Height: 192}

func newTestGrid(t *testing.T, cols, rows int) (*Grid, *countingDevice) {
	t.Helper()
	dev := &countingDevice{}
	g, err := NewGrid(font12, render.NewBatcher(dev), cols, rows)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g, dev
}

func TestNewGridRejectsSmallFont(t *testing.T) {
	tests := []render.Texture{
		{},
		{ID: 1, Width: 15, Height: 15},
	}
	for _, font := range tests {
		_, err := NewGrid(font, render.NewBatcher(&countingDevice{}), 4, 4)
		if !errors.Is(err, ErrInvalidFont) {
			t.Fatalf("font %+v: expected ErrInvalidFont, got %v", font, err)
		}
	}
}

func TestGridSizing(t *testing.T) {
	g, _ := newTestGrid(t, 80, 25)
	if w, h := g.Size(); w != 80 || h != 25 {
		t.Fatalf("expected 80x25 cells, got %dx%d", w, h)
	}
	if w, h := g.PixelSize(); w != 960 || h != 300 {
		t.Fatalf("expected 960x300 pixels, got %dx%d", w, h)
	}
	if g.GlyphSize() != 12 {
		t.Fatalf("expected glyph size 12, got %d", g.GlyphSize())
	}
}

func TestGridSetStoresFlippedRow(t *testing.T) {
	g, _ := newTestGrid(t, 10, 5)
	g.Set(3, 2, 'A', Red, Blue)

	c, ok := g.Get(3, 2)
	if !ok {
		t.Fatalf("expected cell at (3,2)")
	}
	want := Cell{X: 3, Y: 2, Glyph: 'A', FG: Red, BG: Blue}
	if c != want {
		t.Fatalf("got %+v, want %+v", c, want)
	}

	g.Set(0, 0, 'x')
	c, _ = g.Get(0, 0)
	if c.Y != 4 || c.FG != White || c.BG != Black {
		t.Fatalf("top row should store Y=4 with default colors, got %+v", c)
	}
}

func TestGridSetOverwritesInPlace(t *testing.T) {
	g, _ := newTestGrid(t, 10, 5)
	g.Set(1, 1, 'a')
	g.Set(1, 1, 'b', Green)
	if g.Len() != 1 {
		t.Fatalf("expected one cell, got %d", g.Len())
	}
	c, _ := g.Get(1, 1)
	if c.Glyph != 'b' || c.FG != Green {
		t.Fatalf("expected overwrite, got %+v", c)
	}
}

func TestGridSetClipsOutOfBounds(t *testing.T) {
	g, _ := newTestGrid(t, 4, 3)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}} {
		g.Set(p[0], p[1], '#')
	}
	if g.Len() != 0 {
		t.Fatalf("out of bounds writes must be ignored, got %d cells", g.Len())
	}
}

func TestGridSetString(t *testing.T) {
	g, _ := newTestGrid(t, 6, 2)
	g.SetString(2, 1, "héllo", Yellow)
	if g.Len() != 4 {
		t.Fatalf("expected 4 cells after clipping, got %d", g.Len())
	}
	c, _ := g.Get(3, 1)
	if c.Glyph != GlyphCode('é') {
		t.Fatalf("expected cp437 code for é, got %d", c.Glyph)
	}
}

func TestGridUnset(t *testing.T) {
	g, _ := newTestGrid(t, 4, 4)
	g.Set(0, 0, 'a')
	g.Set(1, 0, 'b')
	g.Set(2, 0, 'c')
	g.Unset(0, 0)
	if _, ok := g.Get(0, 0); ok {
		t.Fatalf("expected (0,0) to be empty")
	}
	c, ok := g.Get(2, 0)
	if !ok || c.Glyph != 'c' {
		t.Fatalf("moved cell must stay addressable, got %+v %v", c, ok)
	}
}

func TestGridRenderSpriteGeometry(t *testing.T) {
	g, dev := newTestGrid(t, 10, 5)
	p := &countingPresenter{}
	g.SetPresenter(p)
	g.Set(3, 2, 'A', Red, Blue)
	g.Render()

	if dev.draws != 1 || p.presents != 1 {
		t.Fatalf("expected one draw and one present, got %d and %d", dev.draws, p.presents)
	}
	if len(dev.uploaded) != render.VerticesPerSprite {
		t.Fatalf("expected %d vertices, got %d", render.VerticesPerSprite, len(dev.uploaded))
	}

	// 'A' is code 65: atlas row 4, column 1.
	const uv = 1.0 / 16
	uvRow := float32(1 - uv*5)
	uvCol := float32(uv)
	tl := dev.uploaded[0]
	bl := dev.uploaded[1]
	br := dev.uploaded[2]
	tr := dev.uploaded[4]

	tests := []struct {
		name string
		got  render.Vertex
		pos  render.Vec2
		uv   render.Vec2
	}{
		{"top_left", tl, render.Vec2{X: 36, Y: 36}, render.Vec2{X: uvCol, Y: uvRow + uv}},
		{"bottom_left", bl, render.Vec2{X: 36, Y: 24}, render.Vec2{X: uvCol, Y: uvRow}},
		{"bottom_right", br, render.Vec2{X: 48, Y: 24}, render.Vec2{X: uvCol + uv, Y: uvRow}},
		{"top_right", tr, render.Vec2{X: 48, Y: 36}, render.Vec2{X: uvCol + uv, Y: uvRow + uv}},
	}
	for _, tc := range tests {
		if tc.got.Pos != tc.pos || tc.got.UV != tc.uv {
			t.Fatalf("%s: got pos %+v uv %+v, want pos %+v uv %+v", tc.name, tc.got.Pos, tc.got.UV, tc.pos, tc.uv)
		}
		if tc.got.FG != Red.Color || tc.got.BG != Blue.Color {
			t.Fatalf("%s: unexpected colors %+v %+v", tc.name, tc.got.FG, tc.got.BG)
		}
	}
}

func TestGridClearThenRenderDrawsNothing(t *testing.T) {
	g, dev := newTestGrid(t, 8, 8)
	g.SetString(0, 0, "abc")
	g.Clear()
	g.Render()
	if dev.draws != 0 || len(dev.uploaded) != 0 {
		t.Fatalf("expected an empty frame, got %d draws %d vertices", dev.draws, len(dev.uploaded))
	}
}

func TestGridResize(t *testing.T) {
	tests := []struct {
		name        string
		pw, ph      int
		wantChanged bool
		wantW       int
		wantH       int
		wantLen     int
	}{
		{"same_size_keeps_cells", 120, 60, false, 10, 5, 1},
		{"grow", 240, 60, true, 20, 5, 0},
		{"partial_cells_truncate", 125, 70, true, 10, 5, 0},
		{"shrink_to_nothing", 5, 5, true, 0, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := newTestGrid(t, 10, 5)
			g.Set(1, 1, 'z')
			if changed := g.Resize(tc.pw, tc.ph); changed != tc.wantChanged {
				t.Fatalf("Resize changed=%v, want %v", changed, tc.wantChanged)
			}
			if w, h := g.Size(); w != tc.wantW || h != tc.wantH {
				t.Fatalf("size %dx%d, want %dx%d", w, h, tc.wantW, tc.wantH)
			}
			if g.Len() != tc.wantLen {
				t.Fatalf("expected %d cells, got %d", tc.wantLen, g.Len())
			}
		})
	}
}

func TestGridCellsVisitsEveryCell(t *testing.T) {
	g, _ := newTestGrid(t, 5, 5)
	g.SetString(0, 0, "abcde")
	seen := map[byte]bool{}
	g.Cells(func(c Cell) { seen[c.Glyph] = true })
	if len(seen) != 5 {
		t.Fatalf("expected 5 distinct glyphs, got %v", seen)
	}
}

func TestNilGridIsInert(t *testing.T) {
	var g *Grid
	g.Set(0, 0, 'a')
	g.SetDefaults(Red, Blue)
	g.Clear()
	g.Render()
	if g.Len() != 0 || g.Resize(10, 10) {
		t.Fatalf("nil grid must be inert")
	}
}

func TestGridSetDefaults(t *testing.T) {
	g, _ := newTestGrid(t, 4, 4)
	if fg, bg := g.Defaults(); fg != White || bg != Black {
		t.Fatalf("expected white on black, got %+v on %+v", fg, bg)
	}
	g.Set(0, 0, 'a')
	g.SetDefaults(Red, Blue)
	g.Set(1, 0, 'b')

	old, _ := g.Get(0, 0)
	if old.FG != White || old.BG != Black {
		t.Fatalf("existing cells must keep their colors, got %+v", old)
	}
	c, _ := g.Get(1, 0)
	if c.FG != Red || c.BG != Blue {
		t.Fatalf("expected new defaults, got %+v", c)
	}
}
