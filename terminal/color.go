package terminal

import (
	"strings"

	"github.com/milk9111/glyphgrid/render"
)

// Color is a cell color with float channels in [0,1].
type Color struct {
	render.Color
}

// NewColor builds a Color from byte channels.
func NewColor(r, g, b uint8) Color {
	return Color{Color: render.RGB(r, g, b)}
}

// RGB8 returns the color as byte channels, rounding to nearest.
func (c Color) RGB8() (uint8, uint8, uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

var (
	Black       = NewColor(0, 0, 0)
	White       = NewColor(255, 255, 255)
	Gray        = NewColor(128, 128, 128)
	Red         = NewColor(255, 0, 0)
	Blue        = NewColor(0, 0, 255)
	Green       = NewColor(0, 255, 0)
	Cyan        = NewColor(0, 255, 255)
	Magenta     = NewColor(255, 0, 255)
	Yellow      = NewColor(255, 255, 0)
	DarkGray    = NewColor(64, 64, 64)
	DarkRed     = NewColor(139, 0, 0)
	DarkBlue    = NewColor(0, 0, 139)
	DarkGreen   = NewColor(0, 139, 0)
	DarkCyan    = NewColor(0, 139, 139)
	DarkMagenta = NewColor(139, 0, 139)
	DarkYellow  = NewColor(139, 139, 0)
)

var palette = map[string]Color{
	"black":       Black,
	"white":       White,
	"gray":        Gray,
	"red":         Red,
	"blue":        Blue,
	"green":       Green,
	"cyan":        Cyan,
	"magenta":     Magenta,
	"yellow":      Yellow,
	"darkgray":    DarkGray,
	"darkred":     DarkRed,
	"darkblue":    DarkBlue,
	"darkgreen":   DarkGreen,
	"darkcyan":    DarkCyan,
	"darkmagenta": DarkMagenta,
	"darkyellow":  DarkYellow,
}

// Named looks up a palette color by case-insensitive name. Underscores and
// dashes are ignored, so "dark_red" and "DarkRed" both match.
func Named(name string) (Color, bool) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	c, ok := palette[key]
	return c, ok
}
