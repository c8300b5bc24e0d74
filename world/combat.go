package world

import (
	"log/slog"

	"github.com/nstehr/skirmish/event"
	"github.com/nstehr/skirmish/model"
)

// engage resolves a unit's attack order. Dead or missing targets are
// dropped here, the first time they are looked at. Out of range the unit
// chases the target's current position; in range it stops and fires
// whenever its cooldown allows.
func (w *World) engage(u *model.Entity) {
	us := u.Unit
	if us.AttackTarget == model.NoEntity {
		return
	}
	target, ok := w.entities[us.AttackTarget]
	if !ok || !target.Alive() || !hostile(u, target) {
		us.ClearAttack()
		return
	}
	if u.Pos.DistanceTo(target.Pos) > us.Stats.Range {
		us.Chase(target.Pos)
		return
	}
	us.StopChase()
	if w.now < us.NextAttackAt {
		return
	}
	w.fire(u, target)
	us.NextAttackAt = w.now + us.Stats.Cooldown
}

// hostile reports whether target is something u may attack.
func hostile(u, target *model.Entity) bool {
	k := target.Kind()
	return (k == model.KindUnit || k == model.KindBuilding) && target.Team() != u.Team()
}

func (w *World) fire(u, target *model.Entity) {
	us := u.Unit
	p, err := model.NewProjectile(w.allocID(), u.Team(), us.Stats.Projectile, u.Pos, u.ID(), target.ID(), us.Stats.Damage)
	if err != nil {
		slog.Error("fire failed", "unit", u.ID(), "error", err)
		return
	}
	w.insert(p)
	w.emit(event.ProjectileFired, event.Shot{
		Team:       u.Team(),
		Projectile: p.ID(),
		Kind:       us.Stats.Projectile,
		Source:     u.ID(),
		Target:     target.ID(),
		Damage:     us.Stats.Damage,
	})
}

// harvest mines the bound resource node once per mining cooldown while in
// range, crediting the team directly. An empty node unbinds the unit; it
// does not look for another one.
func (w *World) harvest(u *model.Entity) {
	us := u.Unit
	if us.MineTarget == model.NoEntity {
		return
	}
	node, ok := w.entities[us.MineTarget]
	if !ok || node.Resource == nil || node.Resource.Depleted() {
		us.MineTarget = model.NoEntity
		return
	}
	if u.Pos.DistanceTo(node.Pos) > us.Stats.MiningRange {
		return
	}
	// Close enough: stop walking to the node's centre.
	us.MoveTarget = nil
	if w.now < us.NextMineAt {
		return
	}
	got := node.Resource.Mine(us.Stats.MiningAmount)
	us.NextMineAt = w.now + us.Stats.MiningCooldown
	w.ledger.Add(u.Team(), got)
	w.emit(event.MineralsMined, event.Mined{
		Team:   u.Team(),
		Unit:   u.ID(),
		Node:   node.ID(),
		Amount: got,
	})
	if node.Resource.Depleted() {
		us.MineTarget = model.NoEntity
		w.emit(event.NodeDepleted, event.Mined{Team: u.Team(), Unit: u.ID(), Node: node.ID()})
	}
}
