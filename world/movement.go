package world

import (
	"math"

	"github.com/nstehr/skirmish/model"
)

// move steps a unit toward its move target. Arrival snaps exactly onto the
// target; otherwise the unit advances its speed per tick, plus the
// separation push when avoidance is on. Idle units only get the push.
func (w *World) move(u *model.Entity) {
	us := u.Unit
	var step model.Vec2
	if us.MoveTarget != nil {
		to := us.MoveTarget.Sub(u.Pos)
		if to.Len() <= us.Stats.Speed {
			u.Pos = *us.MoveTarget
			us.MoveTarget = nil
			us.Chasing = false
			return
		}
		step = to.Normalize().Scale(us.Stats.Speed)
	}
	if w.opts.Avoidance.Enabled {
		step = step.Add(w.separation(u))
	}
	if step == (model.Vec2{}) {
		return
	}
	u.Pos = w.opts.Field.Clamp(u.Pos.Add(step))
}

// separation sums a push away from every live unit within the avoidance
// radius. Full force inside the minimum distance, fading linearly to zero
// at the radius; coincident units are pushed in a random direction.
func (w *World) separation(u *model.Entity) model.Vec2 {
	av := w.opts.Avoidance
	var force model.Vec2
	for _, o := range w.units {
		if o == u || !o.Alive() {
			continue
		}
		diff := u.Pos.Sub(o.Pos)
		d := diff.Len()
		if d >= av.Radius {
			continue
		}
		var dir model.Vec2
		if d == 0 {
			a := w.rand.Float64() * 2 * math.Pi
			dir = model.Vec2{X: math.Cos(a), Y: math.Sin(a)}
		} else {
			dir = diff.Scale(1 / d)
		}
		strength := av.MaxForce
		if d >= av.MinDistance {
			strength = av.MaxForce * (av.Radius - d) / av.Radius
		}
		force = force.Add(dir.Scale(strength))
	}
	return force.ClampLen(av.MaxForce)
}
