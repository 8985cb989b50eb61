package main

import (
	"path/filepath"
	"testing"

	"github.com/milk9111/glyphgrid/assets"
)

func TestWriteAtlasRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cell int
	}{
		{"default", assets.DefaultGlyphSize},
		{"small", 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "atlas.png")
			if err := writeAtlas(path, tc.cell); err != nil {
				t.Fatalf("writeAtlas: %v", err)
			}
			img, err := assets.LoadAtlas(path)
			if err != nil {
				t.Fatalf("LoadAtlas: %v", err)
			}
			if got := img.Bounds().Dx(); got != tc.cell*assets.AtlasColumns {
				t.Fatalf("width %d, want %d", got, tc.cell*assets.AtlasColumns)
			}
		})
	}
}

func TestWriteAtlasRejectsBadCell(t *testing.T) {
	if err := writeAtlas(filepath.Join(t.TempDir(), "x.png"), 0); err == nil {
		t.Fatalf("expected error for zero cell size")
	}
}
