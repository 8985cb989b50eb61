package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.kage config.yaml scenes/*.tengo
var assetsFS embed.FS

// GlyphShader returns the Kage source of the glyph fragment shader.
func GlyphShader() []byte {
	b, err := assetsFS.ReadFile("glyph.kage")
	if err != nil {
		// the shader is compiled into the binary
		panic("assets: glyph.kage missing from embed: " + err.Error())
	}
	return b
}

// DefaultConfig returns the built-in YAML configuration.
func DefaultConfig() []byte {
	b, err := assetsFS.ReadFile("config.yaml")
	if err != nil {
		panic("assets: config.yaml missing from embed: " + err.Error())
	}
	return b
}

// LoadFile reads an asset by path. Files on disk win so edits are picked up
// on reload; the embedded copy is the fallback.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty path: %w", os.ErrNotExist)
	}
	for _, p := range []string{path, filepath.Join("assets", filepath.FromSlash(clean))} {
		if b, err := os.ReadFile(p); err == nil {
			return b, nil
		}
	}
	if b, err := assetsFS.ReadFile(clean); err == nil {
		return b, nil
	}
	return nil, fmt.Errorf("assets: %s: %w", path, os.ErrNotExist)
}

// LoadImage decodes an image asset by path.
func LoadImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
