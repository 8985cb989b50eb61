package config

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/milk9111/glyphgrid/terminal"
	"gopkg.in/yaml.v3"
)

// Color is a terminal color read from YAML as a palette name or hex string.
type Color struct {
	terminal.Color
	set bool
}

// IsSet reports whether the field was present in the document.
func (c Color) IsSet() bool { return c.set }

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: color must be a string (line %d): %w", value.Line, ErrInvalid)
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	c.set = true
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return Hex(c.Color), nil
}

// ParseColor accepts a palette name such as "dark_red" or a hex color in
// #rgb or #rrggbb form. The '#' may be omitted for six digit values, which
// YAML would otherwise read as a comment.
func ParseColor(s string) (terminal.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := terminal.Named(s); ok {
		return c, nil
	}
	hex := s
	if len(hex) == 6 && !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return terminal.Color{}, fmt.Errorf("config: color %q: %w", s, ErrInvalid)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return terminal.Color{}, fmt.Errorf("config: color %q: %w", s, ErrInvalid)
	}
	r, g, b := c.RGB255()
	return terminal.NewColor(r, g, b), nil
}

// Hex formats a color as #rrggbb.
func Hex(c terminal.Color) string {
	r, g, b := c.RGB8()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()
}

// Blend mixes a toward b in HCL space, t in [0,1].
func Blend(a, b terminal.Color, t float64) terminal.Color {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	r, g, bl := toColorful(a).BlendHcl(toColorful(b), t).Clamped().RGB255()
	return terminal.NewColor(r, g, bl)
}

func toColorful(c terminal.Color) colorful.Color {
	r, g, b := c.RGB8()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
