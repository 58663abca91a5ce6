// Package view maps between screen pixels and world (map) pixels.
package view

import (
	"math"

	"github.com/milk9111/goob/common"
)

const (
	DefaultMinZoom = 0.25
	DefaultMaxZoom = 8.0
)

// Camera is the pan/zoom state of the map canvas. Offset is the world point
// shown at the canvas' top-left corner.
type Camera struct {
	Offset  common.Vec2
	Zoom    float64
	MinZoom float64
	MaxZoom float64
}

// NewCamera returns a camera at the origin with zoom 1 clamped to the range.
func NewCamera(minZoom, maxZoom float64) *Camera {
	if minZoom <= 0 {
		minZoom = DefaultMinZoom
	}
	if maxZoom < minZoom {
		maxZoom = minZoom
	}
	c := &Camera{MinZoom: minZoom, MaxZoom: maxZoom}
	c.Reset()
	return c
}

// Reset moves the camera back to the origin at zoom 1.
func (c *Camera) Reset() {
	c.Offset = common.Vec2{}
	c.Zoom = common.Clamp(1, c.MinZoom, c.MaxZoom)
}

func (c *Camera) ScreenToWorld(p common.Vec2, canvas common.Rect) common.Vec2 {
	return p.Sub(canvas.TopLeft()).Div(c.Zoom).Add(c.Offset)
}

func (c *Camera) WorldToScreen(p common.Vec2, canvas common.Rect) common.Vec2 {
	return p.Sub(c.Offset).Scale(c.Zoom).Add(canvas.TopLeft())
}

// ZoomAround scales the zoom by delta while keeping the world point under p
// at the same screen position.
func (c *Camera) ZoomAround(p common.Vec2, canvas common.Rect, delta float64) {
	before := c.ScreenToWorld(p, canvas)
	c.Zoom = common.Clamp(c.Zoom*delta, c.MinZoom, c.MaxZoom)
	after := c.ScreenToWorld(p, canvas)
	c.Offset = c.Offset.Sub(after.Sub(before))
}

// Pan moves the view by a screen-space drag delta.
func (c *Camera) Pan(delta common.Vec2) {
	c.Offset = c.Offset.Sub(delta.Div(c.Zoom))
}

// CellAt returns the map cell under screen point p. The result is not
// clamped; negative or past-the-edge cells are the caller's to reject.
func (c *Camera) CellAt(p common.Vec2, canvas common.Rect, tileSize int) (tx, ty int) {
	w := c.ScreenToWorld(p, canvas)
	ts := float64(tileSize)
	return int(math.Floor(w.X / ts)), int(math.Floor(w.Y / ts))
}
