package model

import "math"

// Vec2 is a point or displacement on the playfield, in world units.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2           { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2           { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2      { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64              { return math.Hypot(v.X, v.Y) }
func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Len() }

// Normalize returns the unit vector in v's direction, or the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// ClampLen shortens v to at most max, keeping its direction.
func (v Vec2) ClampLen(max float64) Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Size is a rectangular footprint.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect is an axis-aligned rectangle with inclusive edges.
type Rect struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// NewRect builds a rectangle from any two opposite corners, so drag
// selections work in every direction.
func NewRect(a, b Vec2) Rect {
	return Rect{
		Min: Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

// RectAround returns the footprint of size centred on pos.
func RectAround(pos Vec2, size Size) Rect {
	return Rect{
		Min: Vec2{pos.X - size.W/2, pos.Y - size.H/2},
		Max: Vec2{pos.X + size.W/2, pos.Y + size.H/2},
	}
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Expand grows the rectangle by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{
		Min: Vec2{r.Min.X - m, r.Min.Y - m},
		Max: Vec2{r.Max.X + m, r.Max.Y + m},
	}
}
