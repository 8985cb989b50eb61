package terminal

import (
	"github.com/milk9111/glyphgrid/assets"
	"github.com/milk9111/glyphgrid/render"
	"golang.org/x/text/encoding/charmap"
)

// ReplacementGlyph is used for runes that code page 437 cannot encode.
const ReplacementGlyph = '?'

// GlyphCode maps a rune to its atlas code. ASCII maps to itself; other runes
// go through code page 437.
func GlyphCode(r rune) byte {
	if r >= 0 && r < 0x80 {
		return byte(r)
	}
	if b, ok := charmap.CodePage437.EncodeRune(r); ok {
		return b
	}
	return ReplacementGlyph
}

// GlyphRune maps an atlas code back to the rune it depicts.
func GlyphRune(code byte) rune {
	return charmap.CodePage437.DecodeByte(code)
}

// glyphSprite builds the quad for one cell. The atlas is a 16x16 grid laid
// out top to bottom by ascending code, while UVs have v=0 at the bottom, so
// the row origin is measured down from v=1. Together with the flipped cell
// row this keeps glyphs upright.
func glyphSprite(font render.Texture, column, row int, code byte, fg, bg render.Color) render.Sprite {
	const chDim = assets.AtlasColumns

	pxSize := float32(font.Width / chDim)
	x := float32(column) * pxSize
	y := float32(row) * pxSize

	chRow := int(code) / chDim
	chCol := int(code) % chDim
	uvSize := float32(1) / chDim
	uvRow := 1 - uvSize*float32(chRow+1)
	uvCol := uvSize * float32(chCol)

	return render.Sprite{
		Texture:     font,
		TopLeft:     render.V(x, y+pxSize, uvCol, uvRow+uvSize, fg, bg),
		TopRight:    render.V(x+pxSize, y+pxSize, uvCol+uvSize, uvRow+uvSize, fg, bg),
		BottomRight: render.V(x+pxSize, y, uvCol+uvSize, uvRow, fg, bg),
		BottomLeft:  render.V(x, y, uvCol, uvRow, fg, bg),
	}
}
