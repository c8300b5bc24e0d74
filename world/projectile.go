package world

import (
	"github.com/nstehr/skirmish/event"
	"github.com/nstehr/skirmish/model"
)

// updateProjectiles homes every live projectile on its target's current
// position. A projectile resolves on contact, on losing its target, or on
// leaving the field; damage is applied only on contact and only once.
func (w *World) updateProjectiles() {
	for _, p := range w.projectiles {
		ps := p.Projectile
		if ps.Resolved {
			continue
		}
		target, ok := w.entities[ps.Target]
		if !ok || !target.Alive() {
			w.expire(p)
			continue
		}
		to := target.Pos.Sub(p.Pos)
		d := to.Len()
		if d <= ps.Stats.Speed || (ps.Stats.RadiusHit && d <= target.Size.W/2) {
			target.TakeDamage(ps.Damage)
			ps.Resolved = true
			p.Pos = target.Pos
			w.emit(event.ProjectileHit, event.Shot{
				Team:       p.Team(),
				Projectile: p.ID(),
				Kind:       ps.Kind,
				Source:     ps.Source,
				Target:     ps.Target,
				Damage:     ps.Damage,
			})
			continue
		}
		p.Pos = p.Pos.Add(to.Normalize().Scale(ps.Stats.Speed))
		if !w.opts.Field.Contains(p.Pos) {
			w.expire(p)
		}
	}
}

func (w *World) expire(p *model.Entity) {
	ps := p.Projectile
	ps.Resolved = true
	w.emit(event.ProjectileExpired, event.Shot{
		Team:       p.Team(),
		Projectile: p.ID(),
		Kind:       ps.Kind,
		Source:     ps.Source,
		Target:     ps.Target,
	})
}
