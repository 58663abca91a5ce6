package render

import (
	"math"

	"github.com/milk9111/goob/common"
	"github.com/milk9111/goob/view"
)

// GridLines returns screen-space tile grid lines covering the visible part of
// the canvas, padded by one tile on every side.
func GridLines(cam *view.Camera, canvas common.Rect, tileSize int) []common.Segment {
	if cam == nil || tileSize <= 0 {
		return nil
	}
	ts := float64(tileSize)
	tl := cam.ScreenToWorld(canvas.TopLeft(), canvas)
	br := cam.ScreenToWorld(canvas.BottomRight(), canvas)

	minTx := int(math.Floor(tl.X/ts)) - 1
	minTy := int(math.Floor(tl.Y/ts)) - 1
	maxTx := int(math.Ceil(br.X/ts)) + 1
	maxTy := int(math.Ceil(br.Y/ts)) + 1

	segs := make([]common.Segment, 0, (maxTx-minTx+1)+(maxTy-minTy+1))
	for x := minTx; x <= maxTx; x++ {
		wx := float64(x) * ts
		segs = append(segs, common.Segment{
			A: cam.WorldToScreen(common.V(wx, tl.Y), canvas),
			B: cam.WorldToScreen(common.V(wx, br.Y), canvas),
		})
	}
	for y := minTy; y <= maxTy; y++ {
		wy := float64(y) * ts
		segs = append(segs, common.Segment{
			A: cam.WorldToScreen(common.V(tl.X, wy), canvas),
			B: cam.WorldToScreen(common.V(br.X, wy), canvas),
		})
	}
	return segs
}

// MapBorder outlines the map extents in screen space.
func MapBorder(cam *view.Camera, canvas common.Rect, mapW, mapH, tileSize int) []common.Segment {
	if cam == nil || mapW <= 0 || mapH <= 0 || tileSize <= 0 {
		return nil
	}
	w := float64(mapW * tileSize)
	h := float64(mapH * tileSize)
	tl := cam.WorldToScreen(common.V(0, 0), canvas)
	tr := cam.WorldToScreen(common.V(w, 0), canvas)
	br := cam.WorldToScreen(common.V(w, h), canvas)
	bl := cam.WorldToScreen(common.V(0, h), canvas)
	return []common.Segment{{A: tl, B: tr}, {A: tr, B: br}, {A: br, B: bl}, {A: bl, B: tl}}
}
