package production

import (
	"math"
	"math/rand"

	"github.com/nstehr/skirmish/model"
)

// Occupied reports whether a candidate spawn point is blocked.
type Occupied func(p model.Vec2) bool

// Placer searches for a free spawn point around a building: a ring of
// evenly spaced points, the same ring scaled out, then optionally random
// samples in the annulus beyond the first ring.
type Placer struct {
	Radius        float64
	Points        int
	FallbackScale float64
	RandomSamples int
	Rand          *rand.Rand
}

// NewPlacer returns the standard search: 16 points at radius 80, then at
// 120, then 10 random samples in [80, 160).
func NewPlacer(r *rand.Rand) *Placer {
	return &Placer{
		Radius:        80,
		Points:        16,
		FallbackScale: 1.5,
		RandomSamples: 10,
		Rand:          r,
	}
}

// Place returns the first unoccupied candidate around center. withRandom
// enables the random fallback for unit types that support it.
func (p *Placer) Place(center model.Vec2, withRandom bool, occupied Occupied) (model.Vec2, bool) {
	for _, radius := range []float64{p.Radius, p.Radius * p.FallbackScale} {
		for i := 0; i < p.Points; i++ {
			angle := float64(i) * 2 * math.Pi / float64(p.Points)
			c := offset(center, angle, radius)
			if !occupied(c) {
				return c, true
			}
		}
	}
	if !withRandom || p.Rand == nil {
		return model.Vec2{}, false
	}
	for i := 0; i < p.RandomSamples; i++ {
		angle := p.Rand.Float64() * 2 * math.Pi
		dist := p.Radius + p.Rand.Float64()*p.Radius
		c := offset(center, angle, dist)
		if !occupied(c) {
			return c, true
		}
	}
	return model.Vec2{}, false
}

func offset(center model.Vec2, angle, dist float64) model.Vec2 {
	return model.Vec2{
		X: center.X + math.Cos(angle)*dist,
		Y: center.Y + math.Sin(angle)*dist,
	}
}
