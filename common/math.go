package common

import "image"

// Vec2 is a point or displacement in either screen or world pixels.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Div(s float64) Vec2 { return Vec2{v.X / s, v.Y / s} }

// Rect is an axis-aligned rectangle; Max is exclusive for Contains.
type Rect struct {
	Min, Max Vec2
}

func R(x0, y0, x1, y1 float64) Rect {
	return Rect{Min: Vec2{x0, y0}, Max: Vec2{x1, y1}}
}

// RectFromImage converts an integer image rectangle.
func RectFromImage(r image.Rectangle) Rect {
	return R(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y))
}

func (r Rect) TopLeft() Vec2 { return r.Min }

func (r Rect) BottomRight() Vec2 { return r.Max }

func (r Rect) Size() Vec2 { return r.Max.Sub(r.Min) }

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Segment is a line from A to B.
type Segment struct {
	A, B Vec2
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
