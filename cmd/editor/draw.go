package main

import (
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/goob/common"
	"github.com/milk9111/goob/export"
	"github.com/milk9111/goob/render"
)

func toImageRect(r common.Rect) image.Rectangle {
	return image.Rect(int(r.Min.X), int(r.Min.Y), int(r.Max.X), int(r.Max.Y))
}

// region clips drawing to r while keeping screen coordinates.
func region(screen *ebiten.Image, r common.Rect) *ebiten.Image {
	return screen.SubImage(toImageRect(r)).(*ebiten.Image)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	canvas := g.canvasRect()
	view := region(screen, canvas)
	if l := g.sess.Loaded(); l != nil && g.mesh != nil {
		g.painter.Draw(view, l.Texture, g.mesh)
	}
	render.StrokeSegments(view, g.grid, 1, gridColor)
	render.StrokeSegments(view, g.sess.Border(canvas), 2, borderColor)
	g.drawHoverCell(view, canvas)

	g.drawPalette(screen)
	if g.showMinimap {
		g.drawMinimap(screen, canvas)
	}
	g.drawStatus(screen)
	g.ui.Draw(screen)
}

func (g *Game) cursor() common.Vec2 {
	x, y := ebiten.CursorPosition()
	return common.V(float64(x), float64(y))
}

func (g *Game) drawHoverCell(dst *ebiten.Image, canvas common.Rect) {
	p := g.cursor()
	if !canvas.Contains(p) {
		return
	}
	x, y, ok := g.sess.CellAt(p, canvas)
	if !ok {
		return
	}
	ts := float64(g.sess.Config().TileSize)
	cam := g.sess.Camera
	r := common.Rect{
		Min: cam.WorldToScreen(common.V(float64(x)*ts, float64(y)*ts), canvas),
		Max: cam.WorldToScreen(common.V(float64(x+1)*ts, float64(y+1)*ts), canvas),
	}
	render.StrokeRect(dst, r, 1, hoverColor)
}

func (g *Game) drawPalette(screen *ebiten.Image) {
	panel := g.paletteRect()
	dst := region(screen, panel)
	dst.Fill(panelColor)

	view, scale, ok := g.paletteView()
	if !ok {
		g.drawText(dst, "no tileset", panel.Min.Add(common.V(palettePad, palettePad)))
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(view.Min.X, view.Min.Y)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(g.sess.Loaded().Texture, op)

	ix := g.sess.Indexer()
	if g.sess.Layout().Degenerate() {
		g.drawText(dst, "no whole tiles at this size", common.V(view.Min.X, view.Max.Y+palettePad))
		return
	}
	render.StrokeSegments(dst, ix.GridLines(view, scale), 1, gridColor)

	if id, ok := ix.TileAt(g.cursor(), view, scale); ok && panel.Contains(g.cursor()) {
		if r, ok := ix.TileBounds(id, view, scale); ok {
			render.StrokeRect(dst, r, 1, hoverColor)
		}
	}
	if id, ok := g.sess.Selection.Tile(); ok {
		if r, ok := ix.TileBounds(id, view, scale); ok {
			render.StrokeRect(dst, r, 2, selectedColor)
		}
	}
}

// drawMinimap shows a downscaled export in the canvas corner. It is
// recomposed only after the map, tileset or atlas config changed.
func (g *Game) drawMinimap(screen *ebiten.Image, canvas common.Rect) {
	if g.minimapDirty {
		g.minimapDirty = false
		if g.minimap != nil {
			g.minimap.Deallocate()
			g.minimap = nil
		}
		if img, err := g.sess.Compose(); err == nil {
			g.minimap = ebiten.NewImageFromImage(export.Thumbnail(img, minimapSize, minimapSize))
		}
	}
	if g.minimap == nil {
		return
	}
	b := g.minimap.Bounds()
	x := canvas.Max.X - float64(b.Dx()) - palettePad
	y := canvas.Min.Y + palettePad
	frame := common.R(x-1, y-1, x+float64(b.Dx())+1, y+float64(b.Dy())+1)
	region(screen, frame).Fill(panelColor)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(g.minimap, op)
	render.StrokeRect(screen, frame, 1, borderColor)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	cfg := g.sess.Config()
	layout := g.sess.Layout()
	parts := []string{
		g.sess.Selection.String(),
		fmt.Sprintf("tile %dpx m%d s%d", cfg.TileSize, cfg.Margin, cfg.Spacing),
		fmt.Sprintf("atlas %dx%d", layout.Columns, layout.Rows),
		fmt.Sprintf("map %dx%d", g.sess.Map.Width(), g.sess.Map.Height()),
		fmt.Sprintf("zoom %.2f", g.sess.Camera.Zoom),
	}
	if x, y, ok := g.sess.CellAt(g.cursor(), g.canvasRect()); ok && g.canvasRect().Contains(g.cursor()) {
		parts = append(parts, fmt.Sprintf("cell %d,%d", x, y))
	}
	if g.status != "" {
		parts = append(parts, g.status)
	}
	g.drawText(screen, strings.Join(parts, "  |  "), common.V(palettePad, float64(g.height-statusHeight+3)))
}

func (g *Game) drawText(dst *ebiten.Image, s string, at common.Vec2) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(at.X, at.Y)
	op.ColorScale.ScaleWithColor(hoverColor)
	text.Draw(dst, s, g.face, op)
}
