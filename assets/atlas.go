package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/charmap"
)

// AtlasColumns is the number of glyph cells per atlas row and column.
const AtlasColumns = 16

// DefaultGlyphSize is the pixel size of one built-in atlas cell.
const DefaultGlyphSize = 12

var (
	ErrAtlasEmpty = errors.New("assets: atlas has no pixels")
	ErrAtlasShape = errors.New("assets: atlas must be a square 16x16 grid of square cells")
)

// ValidateAtlas checks that img can be addressed as a 16x16 glyph grid.
func ValidateAtlas(img image.Image) error {
	if img == nil {
		return ErrAtlasEmpty
	}
	b := img.Bounds()
	if b.Empty() {
		return ErrAtlasEmpty
	}
	w, h := b.Dx(), b.Dy()
	if w != h || w%AtlasColumns != 0 {
		return fmt.Errorf("assets: atlas %dx%d: %w", w, h, ErrAtlasShape)
	}
	return nil
}

// LoadAtlas decodes and validates an atlas image.
func LoadAtlas(path string) (image.Image, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateAtlas(img); err != nil {
		return nil, fmt.Errorf("assets: load atlas %s: %w", path, err)
	}
	return img, nil
}

// GenerateAtlas renders a code page 437 atlas with cells of cell pixels.
// Glyphs are white with alpha coverage on a transparent background, laid out
// top to bottom by ascending code.
func GenerateAtlas(cell int) *image.NRGBA {
	if cell <= 0 {
		cell = DefaultGlyphSize
	}
	size := cell * AtlasColumns
	atlas := image.NewNRGBA(image.Rect(0, 0, size, size))

	face := basicfont.Face7x13
	for code := 0; code < AtlasColumns*AtlasColumns; code++ {
		row := code / AtlasColumns
		col := code % AtlasColumns
		r := image.Rect(col*cell, row*cell, (col+1)*cell, (row+1)*cell)
		dst := atlas.SubImage(r).(*image.NRGBA)

		ch := charmap.CodePage437.DecodeByte(byte(code))
		if drawBlock(dst, ch) {
			continue
		}
		if !hasGlyph(face, ch) {
			continue
		}
		d := font.Drawer{
			Dst:  dst,
			Src:  image.White,
			Face: face,
			Dot: fixed.P(
				r.Min.X+(cell-face.Width)/2,
				r.Min.Y+(cell-face.Height)/2+face.Ascent,
			),
		}
		d.DrawString(string(ch))
	}
	return atlas
}

func hasGlyph(face *basicfont.Face, r rune) bool {
	if r < 0x20 || r == 0x7f {
		return false
	}
	for _, rng := range face.Ranges {
		if r >= rng.Low && r < rng.High {
			return true
		}
	}
	return false
}

// drawBlock fills shade and half-block characters, which basicfont lacks.
func drawBlock(dst *image.NRGBA, r rune) bool {
	b := dst.Bounds()
	cx := b.Min.X + b.Dx()/2
	cy := b.Min.Y + b.Dy()/2
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	switch r {
	case '█':
		draw.Draw(dst, b, image.NewUniform(white), image.Point{}, draw.Src)
	case '▀':
		draw.Draw(dst, image.Rect(b.Min.X, b.Min.Y, b.Max.X, cy), image.NewUniform(white), image.Point{}, draw.Src)
	case '▄':
		draw.Draw(dst, image.Rect(b.Min.X, cy, b.Max.X, b.Max.Y), image.NewUniform(white), image.Point{}, draw.Src)
	case '▌':
		draw.Draw(dst, image.Rect(b.Min.X, b.Min.Y, cx, b.Max.Y), image.NewUniform(white), image.Point{}, draw.Src)
	case '▐':
		draw.Draw(dst, image.Rect(cx, b.Min.Y, b.Max.X, b.Max.Y), image.NewUniform(white), image.Point{}, draw.Src)
	case '░', '▒', '▓':
		alpha := map[rune]uint8{'░': 0x40, '▒': 0x80, '▓': 0xc0}[r]
		shade := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: alpha}
		draw.Draw(dst, b, image.NewUniform(shade), image.Point{}, draw.Src)
	default:
		return false
	}
	return true
}
