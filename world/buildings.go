package world

import (
	"log/slog"
	"time"

	"github.com/nstehr/skirmish/event"
	"github.com/nstehr/skirmish/model"
	"github.com/nstehr/skirmish/production"
)

func (w *World) updateBuildings(dt time.Duration) {
	for _, b := range w.buildings {
		if !b.Alive() {
			continue
		}
		bs := b.Building
		if !bs.Constructed() {
			bs.Advance(dt)
			continue
		}
		q, ok := w.queues[b.ID()]
		if !ok {
			continue
		}
		if order, done := q.Advance(dt); done {
			w.spawn(b, order)
		}
	}
}

// spawn places a finished order next to its building. When no point is
// free the order is lost and, if configured, its cost is refunded.
func (w *World) spawn(b *model.Entity, o production.Order) {
	stats, ok := model.UnitStatsFor(o.Unit)
	if !ok {
		slog.Error("finished order has unknown unit type", "unit", o.Unit, "building", b.ID())
		return
	}
	pos, ok := w.placer.Place(b.Pos, stats.RandomSpawn, w.PointOccupied)
	if !ok {
		refunded := 0
		if w.opts.RefundOnSpawnFailure {
			w.ledger.Add(b.Team(), o.Cost)
			refunded = o.Cost
		}
		slog.Warn("no free spawn point",
			"team", b.Team(),
			"unit", o.Unit,
			"building", b.ID(),
			"refunded", refunded,
		)
		w.emit(event.SpawnFailed, event.SpawnFailure{
			Team:     b.Team(),
			Unit:     o.Unit,
			Building: b.ID(),
			Refunded: refunded,
		})
		return
	}
	u, err := w.AddUnit(b.Team(), o.Unit, pos)
	if err != nil {
		slog.Error("spawn failed", "unit", o.Unit, "error", err)
		return
	}
	slog.Debug("unit spawned", "team", b.Team(), "unit", o.Unit, "id", u.ID(), "x", pos.X, "y", pos.Y)
	w.emit(event.UnitSpawned, event.Spawn{
		Team:     b.Team(),
		Unit:     o.Unit,
		ID:       u.ID(),
		Building: b.ID(),
		Pos:      pos,
	})
}
