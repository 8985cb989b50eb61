package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/milk9111/glyphgrid/assets"
)

func main() {
	cell := flag.Int("cell", assets.DefaultGlyphSize, "glyph cell size in pixels")
	out := flag.String("out", "atlas.png", "output PNG path")
	check := flag.String("check", "", "validate an existing atlas instead of generating one")
	flag.Parse()

	if *check != "" {
		if _, err := assets.LoadAtlas(*check); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: ok\n", *check)
		return
	}

	if err := writeAtlas(*out, *cell); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", *out, *cell*assets.AtlasColumns, *cell*assets.AtlasColumns)
}

func writeAtlas(path string, cell int) error {
	if cell <= 0 {
		return fmt.Errorf("atlasgen: cell size must be positive, got %d", cell)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("atlasgen: %w", err)
	}
	if err := png.Encode(f, assets.GenerateAtlas(cell)); err != nil {
		_ = f.Close()
		return fmt.Errorf("atlasgen: encode %s: %w", path, err)
	}
	return f.Close()
}
