// Package render builds the geometry the editor canvas draws each frame: one
// textured triangle batch for the painted map and line segments for grids.
package render

import (
	"github.com/milk9111/goob/atlas"
	"github.com/milk9111/goob/common"
	"github.com/milk9111/goob/tilemap"
	"github.com/milk9111/goob/view"
)

// Vertex is a screen-space position with normalised texture coordinates.
type Vertex struct {
	X, Y float32
	U, V float32
}

// Mesh is an indexed triangle list sharing the tileset texture.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Quads is the number of tiles in the mesh.
func (m *Mesh) Quads() int {
	return len(m.Vertices) / 4
}

func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// quad order: top-left, top-right, bottom-right, bottom-left.
func (m *Mesh) appendQuad(p0, p1, p2, p3 common.Vec2, u0, v0, u1, v1 float32) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{X: float32(p0.X), Y: float32(p0.Y), U: u0, V: v0},
		Vertex{X: float32(p1.X), Y: float32(p1.Y), U: u1, V: v0},
		Vertex{X: float32(p2.X), Y: float32(p2.Y), U: u1, V: v1},
		Vertex{X: float32(p3.X), Y: float32(p3.Y), U: u0, V: v1},
	)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// Builder regenerates the map mesh every frame, reusing its buffers.
type Builder struct {
	mesh Mesh
}

// Build emits one quad per painted cell whose id is valid in layout. The
// returned mesh is owned by the builder and overwritten by the next call.
func (b *Builder) Build(m *tilemap.Map, cfg atlas.Config, layout atlas.Layout, texW, texH int, cam *view.Camera, canvas common.Rect) *Mesh {
	b.mesh.Reset()
	if m == nil || cam == nil || !cfg.Valid() || layout.Degenerate() || texW <= 0 || texH <= 0 {
		return &b.mesh
	}

	ts := float64(cfg.TileSize)
	m.Each(func(x, y, id int) {
		if !layout.Valid(id) {
			return
		}
		u0, v0, u1, v1 := atlas.UV(atlas.TileRect(id, layout.Columns, cfg), texW, texH)

		x0, y0 := float64(x)*ts, float64(y)*ts
		x1, y1 := x0+ts, y0+ts
		b.mesh.appendQuad(
			cam.WorldToScreen(common.V(x0, y0), canvas),
			cam.WorldToScreen(common.V(x1, y0), canvas),
			cam.WorldToScreen(common.V(x1, y1), canvas),
			cam.WorldToScreen(common.V(x0, y1), canvas),
			u0, v0, u1, v1,
		)
	})
	return &b.mesh
}
