package main

import (
	"flag"
	"image"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/glyphgrid/assets"
	"github.com/milk9111/glyphgrid/common"
	"github.com/milk9111/glyphgrid/config"
	"github.com/milk9111/glyphgrid/render"
	"github.com/milk9111/glyphgrid/terminal"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (built-in defaults when empty)")
	scenePath := flag.String("scene", "", "tengo scene script, overrides the config")
	useTTY := flag.Bool("tty", false, "draw in the terminal instead of a window")
	debug := flag.Bool("debug", false, "enable debug logging and frame stats")
	logPath := flag.String("log", "", "log file (stderr in window mode, discarded in tty mode when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *scenePath != "" {
		cfg.Scene = *scenePath
	}

	closeLog := setupLogger(cfg, *logPath, *useTTY, *debug)
	defer closeLog()

	if *useTTY {
		runTerminal(cfg, *configPath)
		return
	}
	runWindow(cfg, *configPath, *debug)
}

func setupLogger(cfg *config.Config, path string, tty, debug bool) func() {
	level := cfg.Level()
	if debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log %s: %v", path, err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	case tty:
		out = io.Discard
	}
	common.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return closeFn
}

func loadAtlas(cfg *config.Config) image.Image {
	if cfg.Atlas == "" {
		return assets.GenerateAtlas(cfg.GlyphSize)
	}
	img, err := assets.LoadAtlas(cfg.Atlas)
	if err != nil {
		log.Fatal(err)
	}
	return img
}

func runWindow(cfg *config.Config, configPath string, debug bool) {
	registry := render.NewTextureRegistry()
	font, err := registry.Register("font", loadAtlas(cfg))
	if err != nil {
		log.Fatal(err)
	}
	device, err := render.NewEbitenDevice(registry, assets.GlyphShader())
	if err != nil {
		log.Fatal(err)
	}
	batcher := render.NewBatcher(device)
	grid, err := terminal.NewGrid(font, batcher, cfg.Columns, cfg.Rows)
	if err != nil {
		log.Fatal(err)
	}
	common.Logger().Info("atlas ready", "id", font.ID, "size", font.Width, "glyph", grid.GlyphSize(), "textures", registry.Len())

	s := newSession(cfg, configPath, grid, batcher)
	if err := s.start(); err != nil {
		log.Fatal(err)
	}
	defer s.close()

	w, h := grid.PixelSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewGame(s, device, debug)); err != nil {
		log.Fatal(err)
	}
}

func runTerminal(cfg *config.Config, configPath string) {
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	// The terminal draws glyphs itself, so the font only needs a size.
	size := cfg.GlyphSize * assets.AtlasColumns
	font := render.Texture{ID: 1, Width: size, Height: size}
	batcher := render.NewBatcher(render.Discard)
	cols, rows := screen.Size()
	grid, err := terminal.NewGrid(font, batcher, cols, rows)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}

	s := newSession(cfg, configPath, grid, batcher)
	if err := s.start(); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	defer s.close()

	runTTY(s, screen)
}
