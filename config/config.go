package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/milk9111/glyphgrid/assets"
	"github.com/milk9111/glyphgrid/common"
	"github.com/milk9111/glyphgrid/terminal"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid value")

const (
	DefaultTitle   = "glyphgrid"
	DefaultColumns = 80
	DefaultRows    = 25
	DefaultScene   = "scenes/demo.tengo"

	maxCells     = 1024
	maxGlyphSize = 128
)

// Config describes the window, font and scene of a glyphgrid program.
type Config struct {
	Title         string `yaml:"title"`
	Columns       int    `yaml:"columns"`
	Rows          int    `yaml:"rows"`
	Atlas         string `yaml:"atlas"`
	GlyphSize     int    `yaml:"glyph_size"`
	Foreground    Color  `yaml:"foreground"`
	Background    Color  `yaml:"background"`
	SortByTexture *bool  `yaml:"sort_by_texture"`
	Scene         string `yaml:"scene"`
	LogLevel      string `yaml:"log_level"`
	Watch         bool   `yaml:"watch"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Parse(assets.DefaultConfig())
	if err != nil {
		panic("config: embedded default is invalid: " + err.Error())
	}
	return cfg
}

// Load reads a YAML file. An empty path selects the built-in configuration.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	common.Logger().Info("config: loaded", "path", path)
	return cfg, nil
}

// Parse decodes YAML, fills zero fields with defaults and validates the
// result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Title) == "" {
		c.Title = DefaultTitle
	}
	if c.Columns == 0 {
		c.Columns = DefaultColumns
	}
	if c.Rows == 0 {
		c.Rows = DefaultRows
	}
	if c.GlyphSize == 0 {
		c.GlyphSize = assets.DefaultGlyphSize
	}
	if !c.Foreground.IsSet() {
		c.Foreground = Color{Color: terminal.White, set: true}
	}
	if !c.Background.IsSet() {
		c.Background = Color{Color: terminal.Black, set: true}
	}
	if c.SortByTexture == nil {
		sorted := true
		c.SortByTexture = &sorted
	}
	if strings.TrimSpace(c.Scene) == "" {
		c.Scene = DefaultScene
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = "info"
	}
}

// Validate reports the first out of range field.
func (c *Config) Validate() error {
	switch {
	case c.Columns < 1 || c.Columns > maxCells:
		return fmt.Errorf("config: columns %d: %w", c.Columns, ErrInvalid)
	case c.Rows < 1 || c.Rows > maxCells:
		return fmt.Errorf("config: rows %d: %w", c.Rows, ErrInvalid)
	case c.GlyphSize < 1 || c.GlyphSize > maxGlyphSize:
		return fmt.Errorf("config: glyph_size %d: %w", c.GlyphSize, ErrInvalid)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("config: log_level %q: %w", c.LogLevel, ErrInvalid)
	}
	return nil
}

// Sorted reports whether the batcher should group sprites by texture.
func (c *Config) Sorted() bool {
	return c.SortByTexture == nil || *c.SortByTexture
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	return common.ParseLevel(c.LogLevel)
}
