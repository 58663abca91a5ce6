// Package atlas addresses tiles inside a tileset image laid out as a regular
// grid with an outer margin and inter-tile spacing (the Tiled convention).
//
// Every consumer that turns a tile id into source pixels (palette overlay,
// live mesh, export) goes through TileRect so the three never disagree.
package atlas

import "image"

// Config describes how a tileset image is sliced.
type Config struct {
	TileSize int `yaml:"tile_size"`
	Margin   int `yaml:"margin"`
	Spacing  int `yaml:"spacing"`
}

// Valid reports whether the config can address any tile at all.
func (c Config) Valid() bool {
	return c.TileSize > 0 && c.Margin >= 0 && c.Spacing >= 0
}

// Stride is the distance in pixels between the origins of adjacent tiles.
func (c Config) Stride() int {
	return c.TileSize + c.Spacing
}

// Layout is the tile grid derived from a (tileset, Config) pair. It must be
// recomputed whenever either one changes.
type Layout struct {
	Columns int
	Rows    int
}

// Compute derives the grid for an image of width x height pixels. An axis
// that cannot fit a single tile inside the margins yields zero.
func Compute(width, height int, cfg Config) Layout {
	if !cfg.Valid() {
		return Layout{}
	}
	return Layout{
		Columns: count(width, cfg),
		Rows:    count(height, cfg),
	}
}

func count(extent int, cfg Config) int {
	if extent < 2*cfg.Margin+cfg.TileSize {
		return 0
	}
	return (extent - 2*cfg.Margin + cfg.Spacing) / cfg.Stride()
}

// Count is the number of addressable tiles.
func (l Layout) Count() int {
	return l.Columns * l.Rows
}

// Degenerate reports a layout with no addressable tiles.
func (l Layout) Degenerate() bool {
	return l.Columns == 0 || l.Rows == 0
}

// Valid reports whether id addresses a tile in this layout.
func (l Layout) Valid(id int) bool {
	return id >= 0 && id < l.Count()
}

// TileRect returns the source rectangle of tile id. The caller validates id
// and columns; no clamping is done here.
func TileRect(id, columns int, cfg Config) image.Rectangle {
	col := id % columns
	row := id / columns
	px := cfg.Margin + col*cfg.Stride()
	py := cfg.Margin + row*cfg.Stride()
	return image.Rect(px, py, px+cfg.TileSize, py+cfg.TileSize)
}

// UV normalises r to texture coordinates of a width x height image.
func UV(r image.Rectangle, width, height int) (u0, v0, u1, v1 float32) {
	w := float32(width)
	h := float32(height)
	return float32(r.Min.X) / w, float32(r.Min.Y) / h, float32(r.Max.X) / w, float32(r.Max.Y) / h
}
