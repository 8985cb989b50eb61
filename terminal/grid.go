package terminal

import (
	"errors"
	"fmt"

	"github.com/milk9111/glyphgrid/assets"
	"github.com/milk9111/glyphgrid/collection"
	"github.com/milk9111/glyphgrid/common"
	"github.com/milk9111/glyphgrid/render"
)

var ErrInvalidFont = errors.New("terminal: font texture must be at least 16 pixels wide")

// Presenter finishes a frame after the grid has drawn, e.g. a buffer swap.
type Presenter interface {
	Present()
}

// Cell is one occupied grid position. Y is stored flipped so that row 0 is
// the bottom of the display.
type Cell struct {
	X     int
	Y     int
	Glyph byte
	FG    Color
	BG    Color
}

// Grid is a terminal-like display of colored glyphs. Only occupied cells are
// stored, and rendering walks them once.
type Grid struct {
	font      render.Texture
	batcher   *render.Batcher
	presenter Presenter

	cells     *collection.SparseSet[int, Cell]
	fg        Color
	bg        Color
	glyphSize int
	pixelW    int
	pixelH    int
	width     int
	height    int
}

// NewGrid creates a grid of columns x rows cells drawn with font through
// batcher. The glyph pixel size is the font width divided by 16.
func NewGrid(font render.Texture, batcher *render.Batcher, columns, rows int) (*Grid, error) {
	glyph := font.Width / assets.AtlasColumns
	if !font.Valid() || glyph <= 0 {
		return nil, fmt.Errorf("terminal: font %+v: %w", font, ErrInvalidFont)
	}
	g := &Grid{
		font:      font,
		batcher:   batcher,
		cells:     collection.NewIntKeyed[int, Cell](),
		fg:        White,
		bg:        Black,
		glyphSize: glyph,
	}
	g.Resize(columns*glyph, rows*glyph)
	return g, nil
}

// SetPresenter attaches the collaborator called at the end of Render.
func (g *Grid) SetPresenter(p Presenter) {
	if g == nil {
		return
	}
	g.presenter = p
}

// SetDefaults sets the colors used when Set omits them. Existing cells keep
// their colors.
func (g *Grid) SetDefaults(fg, bg Color) {
	if g == nil {
		return
	}
	g.fg, g.bg = fg, bg
}

// Defaults returns the foreground and background used when Set omits colors.
func (g *Grid) Defaults() (Color, Color) {
	if g == nil {
		return White, Black
	}
	return g.fg, g.bg
}

// Size returns the grid size in cells.
func (g *Grid) Size() (int, int) {
	if g == nil {
		return 0, 0
	}
	return g.width, g.height
}

// PixelSize returns the pixel size the grid was last resized to.
func (g *Grid) PixelSize() (int, int) {
	if g == nil {
		return 0, 0
	}
	return g.pixelW, g.pixelH
}

// GlyphSize returns the pixel size of one square cell.
func (g *Grid) GlyphSize() int {
	if g == nil {
		return 0
	}
	return g.glyphSize
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return g.cells.Len()
}

// Resize recomputes the grid size for a new pixel size. Cell keys depend on
// the width, so any change clears the grid. It reports whether the size
// changed.
func (g *Grid) Resize(pixelW, pixelH int) bool {
	if g == nil || (pixelW == g.pixelW && pixelH == g.pixelH) {
		return false
	}
	g.pixelW, g.pixelH = max(pixelW, 0), max(pixelH, 0)
	g.width = g.pixelW / g.glyphSize
	g.height = g.pixelH / g.glyphSize
	g.cells.Clear()
	common.Logger().Info("terminal: resized",
		"pixels_w", g.pixelW, "pixels_h", g.pixelH,
		"cells_w", g.width, "cells_h", g.height)
	return true
}

// Set writes one character at column x, row y (row 0 at the top). colors
// holds an optional foreground and background. Positions outside the grid
// are ignored.
func (g *Grid) Set(x, y int, ch rune, colors ...Color) {
	g.SetGlyph(x, y, GlyphCode(ch), colors...)
}

// SetString writes s left to right starting at column x, one rune per
// column.
func (g *Grid) SetString(x, y int, s string, colors ...Color) {
	i := 0
	for _, ch := range s {
		g.Set(x+i, y, ch, colors...)
		i++
	}
}

// SetGlyph writes a raw atlas code at column x, row y.
func (g *Grid) SetGlyph(x, y int, code byte, colors ...Color) {
	if g == nil || !g.inBounds(x, y) {
		return
	}
	fg, bg := g.fg, g.bg
	if len(colors) > 0 {
		fg = colors[0]
	}
	if len(colors) > 1 {
		bg = colors[1]
	}

	i := g.cells.GetOrAdd(g.cellIndex(x, y))
	if err := g.cells.Update(i, func(c *Cell) {
		c.X = x
		c.Y = g.height - 1 - y
		c.Glyph = code
		c.FG = fg
		c.BG = bg
	}); err != nil {
		common.Logger().Warn("terminal: set", "x", x, "y", y, "err", err)
	}
}

// Unset clears a single position.
func (g *Grid) Unset(x, y int) {
	if g == nil || !g.inBounds(x, y) {
		return
	}
	g.cells.Remove(g.cellIndex(x, y))
}

// Get returns the cell at column x, row y.
func (g *Grid) Get(x, y int) (Cell, bool) {
	if g == nil || !g.inBounds(x, y) {
		return Cell{}, false
	}
	c, err := g.cells.Get(g.cellIndex(x, y))
	return c, err == nil
}

// Clear removes every cell.
func (g *Grid) Clear() {
	if g == nil {
		return
	}
	g.cells.Clear()
}

// Cells calls fn for every occupied cell in storage order.
func (g *Grid) Cells(fn func(c Cell)) {
	if g == nil {
		return
	}
	for _, c := range g.cells.Values() {
		fn(c)
	}
}

// Render submits one glyph sprite per occupied cell, draws the batches and
// presents the frame.
func (g *Grid) Render() {
	if g == nil {
		return
	}
	g.batcher.Begin()
	for _, c := range g.cells.Values() {
		g.batcher.Draw(glyphSprite(g.font, c.X, c.Y, c.Glyph, c.FG.Color, c.BG.Color))
	}
	g.batcher.End()
	g.batcher.Render()
	if g.presenter != nil {
		g.presenter.Present()
	}
}

func (g *Grid) cellIndex(x, y int) int {
	return g.width*y + x
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}
