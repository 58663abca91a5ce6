package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/goob/common"
)

// Painter submits meshes to ebiten, keeping its vertex buffer across frames.
type Painter struct {
	verts []ebiten.Vertex
	opts  ebiten.DrawTrianglesOptions
}

// Draw renders the whole mesh with a single draw call against tex.
func (p *Painter) Draw(dst, tex *ebiten.Image, mesh *Mesh) {
	if dst == nil || tex == nil || mesh == nil || len(mesh.Indices) == 0 {
		return
	}
	b := tex.Bounds()
	tw := float32(b.Dx())
	th := float32(b.Dy())
	ox := float32(b.Min.X)
	oy := float32(b.Min.Y)

	p.verts = p.verts[:0]
	for _, v := range mesh.Vertices {
		p.verts = append(p.verts, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   ox + v.U*tw,
			SrcY:   oy + v.V*th,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}
	p.opts.Filter = ebiten.FilterNearest
	dst.DrawTriangles32(p.verts, mesh.Indices, tex, &p.opts)
}

// StrokeSegments draws each segment as a line of the given width.
func StrokeSegments(dst *ebiten.Image, segs []common.Segment, width float32, clr color.Color) {
	for _, s := range segs {
		vector.StrokeLine(dst, float32(s.A.X), float32(s.A.Y), float32(s.B.X), float32(s.B.Y), width, clr, false)
	}
}

// StrokeRect outlines r.
func StrokeRect(dst *ebiten.Image, r common.Rect, width float32, clr color.Color) {
	sz := r.Size()
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(sz.X), float32(sz.Y), width, clr, false)
}
