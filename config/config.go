// Package config holds the editor's user-editable settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/goob/atlas"
	"github.com/milk9111/goob/view"
)

const (
	MinTileSize = 4
	MaxTileSize = 256
)

var ErrInvalid = errors.New("config: invalid settings file")

// Settings are loaded from YAML and then overridden by command-line flags.
type Settings struct {
	Atlas        atlas.Config `yaml:"atlas"`
	MapWidth     int          `yaml:"map_width"`
	MapHeight    int          `yaml:"map_height"`
	ShowGrid     bool         `yaml:"show_grid"`
	MinZoom      float64      `yaml:"min_zoom"`
	MaxZoom      float64      `yaml:"max_zoom"`
	WheelFactor  float64      `yaml:"wheel_factor"`
	PaletteWidth int          `yaml:"palette_width"`
	TilesetPath  string       `yaml:"tileset,omitempty"`
	ExportPath   string       `yaml:"export,omitempty"`
	WatchTileset bool         `yaml:"watch_tileset"`
}

func Default() Settings {
	return Settings{
		Atlas:        atlas.Config{TileSize: 32},
		MapWidth:     64,
		MapHeight:    48,
		ShowGrid:     true,
		MinZoom:      view.DefaultMinZoom,
		MaxZoom:      view.DefaultMaxZoom,
		WheelFactor:  1.1,
		PaletteWidth: 260,
		ExportPath:   "tilemap.png",
	}
}

// DefaultPath is where the editor looks for settings when none are given.
func DefaultPath() string {
	return "~/.config/goob/editor.yaml"
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return p
}

// Load reads settings from path on top of Default. A missing file is not an
// error.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(ExpandPath(path))
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	s.Normalize()
	return s, nil
}

// Save writes s as YAML, creating parent directories.
func Save(path string, s Settings) error {
	p := ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("config: save %s: %w", path, err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(p, data, 0o644)
}

// Normalize clamps values to what the editor accepts.
func (s *Settings) Normalize() {
	s.Atlas.TileSize = ClampTileSize(s.Atlas.TileSize)
	if s.Atlas.Margin < 0 {
		s.Atlas.Margin = 0
	}
	if s.Atlas.Spacing < 0 {
		s.Atlas.Spacing = 0
	}
	if s.MapWidth < 1 {
		s.MapWidth = 1
	}
	if s.MapHeight < 1 {
		s.MapHeight = 1
	}
	if s.MinZoom <= 0 {
		s.MinZoom = view.DefaultMinZoom
	}
	if s.MaxZoom < s.MinZoom {
		s.MaxZoom = s.MinZoom
	}
	if s.WheelFactor <= 1 {
		s.WheelFactor = 1.1
	}
	if s.PaletteWidth < 64 {
		s.PaletteWidth = 64
	}
	s.TilesetPath = ExpandPath(s.TilesetPath)
	s.ExportPath = ExpandPath(s.ExportPath)
}

func ClampTileSize(n int) int {
	if n < MinTileSize {
		return MinTileSize
	}
	if n > MaxTileSize {
		return MaxTileSize
	}
	return n
}
