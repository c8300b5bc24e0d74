package world

import (
	"time"

	"github.com/nstehr/skirmish/event"
	"github.com/nstehr/skirmish/model"
)

// Tick advances the simulation by dt. The clock moves first, so every
// cooldown and countdown in this tick sees the new time. Updates then run
// in a fixed order: buildings, units, projectiles, prune, controllers.
func (w *World) Tick(dt time.Duration) {
	start := time.Now()
	w.tick++
	w.now += dt

	w.updateBuildings(dt)
	w.updateUnits()
	w.updateProjectiles()
	w.prune()

	for _, c := range w.controllers {
		c.Think(w)
	}

	w.emit(event.TickCompleted, w.tickStats(time.Since(start)))
}

func (w *World) updateUnits() {
	// Index loop: units spawned this tick were appended by the building pass
	// and are updated too.
	for i := 0; i < len(w.units); i++ {
		u := w.units[i]
		if !u.Alive() {
			continue
		}
		w.move(u)
		w.engage(u)
		w.harvest(u)
	}
}

// prune drops resolved projectiles and dead units and buildings in one
// compaction pass. Their handles stop resolving afterwards.
func (w *World) prune() {
	w.projectiles = w.compact(w.projectiles)
	w.units = w.compact(w.units)
	w.buildings = w.compact(w.buildings)
}

func (w *World) compact(list []*model.Entity) []*model.Entity {
	kept := list[:0]
	for _, e := range list {
		if e.Alive() {
			kept = append(kept, e)
			continue
		}
		delete(w.entities, e.ID())
		delete(w.queues, e.ID())
		if e.Kind() != model.KindProjectile {
			w.emit(event.EntityDestroyed, event.Destroyed{
				Team: e.Team(),
				ID:   e.ID(),
				Kind: e.Kind(),
				Type: e.TypeName(),
			})
		}
	}
	clear(list[len(kept):])
	return kept
}

func (w *World) tickStats(elapsed time.Duration) event.TickStats {
	s := event.TickStats{
		Now:     w.now,
		Elapsed: elapsed,
		Entities: map[model.Kind]int{
			model.KindUnit:       len(w.units),
			model.KindBuilding:   len(w.buildings),
			model.KindProjectile: len(w.projectiles),
			model.KindResource:   len(w.resources),
		},
		Minerals: make(map[model.TeamID]int, len(w.teams)),
		Units:    make(map[model.TeamID]int, len(w.teams)),
	}
	for _, t := range w.teams {
		s.Minerals[t.ID] = w.ledger.Balance(t.ID)
		s.Units[t.ID] = 0
	}
	for _, u := range w.units {
		s.Units[u.Team()]++
	}
	return s
}
