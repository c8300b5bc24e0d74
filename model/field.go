package model

// Default playfield dimensions.
const (
	DefaultFieldWidth  = 1600
	DefaultFieldHeight = 1200
)

// Field is the playable area. Its origin is the top-left corner.
type Field struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func DefaultField() Field {
	return Field{Width: DefaultFieldWidth, Height: DefaultFieldHeight}
}

// Contains reports whether p lies inside the field, edges included.
func (f Field) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= f.Width && p.Y >= 0 && p.Y <= f.Height
}

// Clamp pulls p back onto the field.
func (f Field) Clamp(p Vec2) Vec2 {
	return Vec2{X: clampf(p.X, 0, f.Width), Y: clampf(p.Y, 0, f.Height)}
}

func (f Field) Center() Vec2 { return Vec2{X: f.Width / 2, Y: f.Height / 2} }

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
