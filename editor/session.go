// Package editor composes the editing state: atlas config and layout, camera,
// map, selection and the loaded tileset. It holds no geometry of its own;
// every computation is delegated to the package that owns it.
package editor

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/goob/atlas"
	"github.com/milk9111/goob/common"
	"github.com/milk9111/goob/config"
	"github.com/milk9111/goob/export"
	"github.com/milk9111/goob/mapgen"
	"github.com/milk9111/goob/palette"
	"github.com/milk9111/goob/render"
	"github.com/milk9111/goob/tilemap"
	"github.com/milk9111/goob/tileset"
	"github.com/milk9111/goob/view"
)

// Loaded pairs the CPU tileset (source of truth, used by export) with the GPU
// texture built from it (used by rendering). The pair is replaced as a whole.
type Loaded struct {
	Tileset *tileset.Tileset
	Texture *ebiten.Image
}

// Session is the editor state mutated between frames on the UI thread.
type Session struct {
	Camera    *view.Camera
	Map       *tilemap.Map
	Selection Selection
	ShowGrid  bool

	config atlas.Config
	layout atlas.Layout
	loaded *Loaded
	mesh   render.Builder
}

// NewSession builds an empty session from settings.
func NewSession(s config.Settings) (*Session, error) {
	s.Normalize()
	m, err := tilemap.New(s.MapWidth, s.MapHeight)
	if err != nil {
		return nil, fmt.Errorf("editor: new session: %w", err)
	}
	return &Session{
		Camera:    view.NewCamera(s.MinZoom, s.MaxZoom),
		Map:       m,
		Selection: Eraser,
		ShowGrid:  s.ShowGrid,
		config:    s.Atlas,
	}, nil
}

func (s *Session) Config() atlas.Config { return s.config }

func (s *Session) Layout() atlas.Layout { return s.layout }

// Loaded returns the current tileset/texture pair, or nil.
func (s *Session) Loaded() *Loaded { return s.loaded }

// Indexer is the palette hit-tester for the current layout.
func (s *Session) Indexer() palette.Indexer {
	return palette.Indexer{Config: s.config, Layout: s.layout}
}

// SetTileset swaps in a new tileset and its texture together and recomputes
// the layout. The previous texture is released.
func (s *Session) SetTileset(ts *tileset.Tileset, tex *ebiten.Image) {
	old := s.loaded
	if ts == nil {
		s.loaded = nil
	} else {
		s.loaded = &Loaded{Tileset: ts, Texture: tex}
	}
	s.recompute()
	if old != nil && old.Texture != nil && (s.loaded == nil || old.Texture != s.loaded.Texture) {
		old.Texture.Deallocate()
	}
	if ts != nil {
		slog.Info("tileset active", "path", ts.Path, "columns", s.layout.Columns, "rows", s.layout.Rows)
	}
}

// SetConfig replaces the atlas config and recomputes the layout.
func (s *Session) SetConfig(cfg atlas.Config) {
	s.config = cfg
	s.recompute()
}

// SetTileSize clamps n to the editable range and applies it.
func (s *Session) SetTileSize(n int) {
	cfg := s.config
	cfg.TileSize = config.ClampTileSize(n)
	s.SetConfig(cfg)
}

func (s *Session) recompute() {
	if s.loaded == nil {
		s.layout = atlas.Layout{}
		return
	}
	s.layout = atlas.Compute(s.loaded.Tileset.Width(), s.loaded.Tileset.Height(), s.config)
}

// NewMap discards the current map and resets the view.
func (s *Session) NewMap(width, height int) error {
	m, err := tilemap.New(width, height)
	if err != nil {
		return fmt.Errorf("editor: new map: %w", err)
	}
	s.Map = m
	s.Camera.Reset()
	return nil
}

// ClearMap empties every cell, keeping the size and view.
func (s *Session) ClearMap() {
	s.Map.Clear()
}

// CellAt is the map cell under a screen point, if it lies inside the map.
func (s *Session) CellAt(p common.Vec2, canvas common.Rect) (x, y int, ok bool) {
	if s.config.TileSize <= 0 {
		return 0, 0, false
	}
	x, y = s.Camera.CellAt(p, canvas, s.config.TileSize)
	return x, y, s.Map.InBounds(x, y)
}

// PaintAt applies the current selection at a screen point. Painting is
// disabled while the atlas is degenerate; erasing never is.
func (s *Session) PaintAt(p common.Vec2, canvas common.Rect) bool {
	id, ok := s.Selection.Tile()
	if !ok {
		return s.EraseAt(p, canvas)
	}
	if s.layout.Degenerate() {
		return false
	}
	x, y, in := s.CellAt(p, canvas)
	if !in {
		return false
	}
	return s.Map.Set(x, y, id)
}

// EraseAt empties the cell under a screen point.
func (s *Session) EraseAt(p common.Vec2, canvas common.Rect) bool {
	x, y, in := s.CellAt(p, canvas)
	if !in {
		return false
	}
	return s.Map.Erase(x, y)
}

// PickPalette selects the tile under pointer in the palette panel.
func (s *Session) PickPalette(pointer common.Vec2, dst common.Rect, scale float64) bool {
	id, ok := s.Indexer().TileAt(pointer, dst, scale)
	if ok {
		s.Selection = Tile(id)
	}
	return ok
}

// Mesh builds this frame's map geometry. The mesh is reused by the next call.
func (s *Session) Mesh(canvas common.Rect) *render.Mesh {
	w, h := 0, 0
	if s.loaded != nil {
		w, h = s.loaded.Tileset.Width(), s.loaded.Tileset.Height()
	}
	return s.mesh.Build(s.Map, s.config, s.layout, w, h, s.Camera, canvas)
}

// Grid returns the tile grid overlay, or nil when hidden.
func (s *Session) Grid(canvas common.Rect) []common.Segment {
	if !s.ShowGrid {
		return nil
	}
	return render.GridLines(s.Camera, canvas, s.config.TileSize)
}

// Border outlines the map extents.
func (s *Session) Border(canvas common.Rect) []common.Segment {
	return render.MapBorder(s.Camera, canvas, s.Map.Width(), s.Map.Height(), s.config.TileSize)
}

// Compose flattens the map at native tile resolution.
func (s *Session) Compose() (*image.RGBA, error) {
	var src *image.RGBA
	if s.loaded != nil {
		src = s.loaded.Tileset.Pixels
	}
	return export.Compose(src, s.Map, s.config, s.layout)
}

// Export writes the flattened map to path as PNG.
func (s *Session) Export(path string) error {
	img, err := s.Compose()
	if err != nil {
		return err
	}
	return export.Save(path, img)
}

// ExportGrid writes the flattened map with tile boundaries drawn in c.
func (s *Session) ExportGrid(path string, c color.Color) error {
	img, err := s.Compose()
	if err != nil {
		return err
	}
	return export.Save(path, export.BurnGrid(img, s.config.TileSize, c))
}

// RunScript fills the map from a tengo script. Scripts see the current
// layout's tile count; the map is left untouched if the script fails.
func (s *Session) RunScript(path string) error {
	return mapgen.RunFile(path, s.Map, s.layout.Count())
}
