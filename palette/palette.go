// Package palette hit-tests and outlines the tileset image shown in the
// palette panel. The image is drawn at an arbitrary display scale that is
// independent of the map camera.
package palette

import (
	"math"

	"github.com/milk9111/goob/atlas"
	"github.com/milk9111/goob/common"
)

const minScale = 0.1

// Indexer maps palette-panel positions to tile ids for one atlas layout.
type Indexer struct {
	Config atlas.Config
	Layout atlas.Layout
}

func (ix Indexer) usable(scale float64) bool {
	return ix.Config.Valid() && !ix.Layout.Degenerate() && scale > 0
}

// origin is the screen position of the first tile's top-left corner.
func (ix Indexer) origin(dst common.Rect, scale float64) common.Vec2 {
	m := float64(ix.Config.Margin) * scale
	return dst.TopLeft().Add(common.V(m, m))
}

// TileAt returns the tile under pointer when the tileset image is drawn into
// dst at scale. Pointers in the spacing gap resolve to the tile before it.
func (ix Indexer) TileAt(pointer common.Vec2, dst common.Rect, scale float64) (int, bool) {
	if !ix.usable(scale) {
		return 0, false
	}
	rel := pointer.Sub(ix.origin(dst, scale))
	step := float64(ix.Config.Stride()) * scale
	col := int(math.Floor(rel.X / step))
	row := int(math.Floor(rel.Y / step))
	if col < 0 || row < 0 || col >= ix.Layout.Columns || row >= ix.Layout.Rows {
		return 0, false
	}
	return row*ix.Layout.Columns + col, true
}

// TileBounds is the on-screen rectangle of tile id, used for hover and
// selection highlights.
func (ix Indexer) TileBounds(id int, dst common.Rect, scale float64) (common.Rect, bool) {
	if !ix.usable(scale) || !ix.Layout.Valid(id) {
		return common.Rect{}, false
	}
	r := common.RectFromImage(atlas.TileRect(id, ix.Layout.Columns, ix.Config))
	return common.Rect{
		Min: dst.TopLeft().Add(r.Min.Scale(scale)),
		Max: dst.TopLeft().Add(r.Max.Scale(scale)),
	}, true
}

// GridLines outlines every tile cell of the palette image.
func (ix Indexer) GridLines(dst common.Rect, scale float64) []common.Segment {
	if !ix.usable(scale) {
		return nil
	}
	start := ix.origin(dst, scale)
	step := float64(ix.Config.Stride()) * scale
	cols, rows := ix.Layout.Columns, ix.Layout.Rows
	right := start.X + float64(cols)*step
	bottom := start.Y + float64(rows)*step

	segs := make([]common.Segment, 0, cols+rows+2)
	for c := 0; c <= cols; c++ {
		x := start.X + float64(c)*step
		segs = append(segs, common.Segment{A: common.V(x, start.Y), B: common.V(x, bottom)})
	}
	for r := 0; r <= rows; r++ {
		y := start.Y + float64(r)*step
		segs = append(segs, common.Segment{A: common.V(start.X, y), B: common.V(right, y)})
	}
	return segs
}

// FitScale is the scale that fits an image of imageWidth into a panel.
func FitScale(panelWidth, imageWidth float64) float64 {
	if imageWidth <= 0 {
		return 1
	}
	return math.Max(panelWidth/imageWidth, minScale)
}
