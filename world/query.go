package world

import (
	"math"

	"github.com/nstehr/skirmish/model"
)

// PointOccupied reports whether p is blocked for spawning: off the field,
// within the margin of a unit's centre, or inside a building or mineral
// field footprint grown by the margin.
func (w *World) PointOccupied(p model.Vec2) bool {
	if !w.opts.Field.Contains(p) {
		return true
	}
	for _, u := range w.units {
		if u.Alive() && u.Pos.DistanceTo(p) < OccupancyMargin {
			return true
		}
	}
	for _, list := range [][]*model.Entity{w.buildings, w.resources} {
		for _, e := range list {
			if e.Alive() && e.Bounds().Expand(OccupancyMargin).Contains(p) {
				return true
			}
		}
	}
	return false
}

// EntitiesInRect returns units, buildings and mineral fields whose centre
// lies in r.
func (w *World) EntitiesInRect(r model.Rect) []*model.Entity {
	var out []*model.Entity
	for _, list := range [][]*model.Entity{w.units, w.buildings, w.resources} {
		for _, e := range list {
			if r.Contains(e.Pos) {
				out = append(out, e)
			}
		}
	}
	return out
}

// EntityAt returns the building, unit or mineral field under p, in that
// order of preference.
func (w *World) EntityAt(p model.Vec2) (*model.Entity, bool) {
	for _, list := range [][]*model.Entity{w.buildings, w.units, w.resources} {
		for _, e := range list {
			if e.Contains(p) {
				return e, true
			}
		}
	}
	return nil, false
}

// Selected returns team's selected entities.
func (w *World) Selected(team model.TeamID) []*model.Entity {
	var out []*model.Entity
	for _, list := range [][]*model.Entity{w.units, w.buildings} {
		for _, e := range list {
			if e.Team() == team && e.Selected {
				out = append(out, e)
			}
		}
	}
	return out
}

// UnitCounts tallies team's live units by type.
func (w *World) UnitCounts(team model.TeamID) map[model.UnitType]int {
	counts := make(map[model.UnitType]int)
	for _, u := range w.units {
		if u.Team() == team {
			counts[u.Unit.Type]++
		}
	}
	return counts
}

// Snapshot builds the read surface for renderers.
func (w *World) Snapshot() model.Snapshot {
	s := model.Snapshot{
		Tick:     w.tick,
		Field:    w.opts.Field,
		Entities: make([]model.EntityView, 0, len(w.entities)),
	}
	for _, list := range [][]*model.Entity{w.resources, w.buildings, w.units, w.projectiles} {
		for _, e := range list {
			v := model.ViewOf(e)
			if q, ok := w.queues[e.ID()]; ok && e.Building.Constructed() {
				v.Progress = q.Progress()
			}
			s.Entities = append(s.Entities, v)
		}
	}
	counts := make(map[model.TeamID]int)
	for _, u := range w.units {
		counts[u.Team()]++
	}
	for _, t := range w.teams {
		s.Teams = append(s.Teams, model.TeamView{
			ID:       t.ID,
			Color:    t.Color,
			Minerals: w.ledger.Balance(t.ID),
			Units:    counts[t.ID],
		})
	}
	return s
}

// TeamState builds team's view for decision making: its own units,
// buildings and queues, every hostile unit then hostile building, and the
// non-empty mineral fields.
func (w *World) TeamState(team model.TeamID) model.GameState {
	gs := model.GameState{
		Tick:      w.tick,
		Now:       w.now,
		MapWidth:  w.opts.Field.Width,
		MapHeight: w.opts.Field.Height,
		Player: model.Player{
			Team:     team,
			Color:    model.ColorFor(team),
			Minerals: w.ledger.Balance(team),
		},
	}
	for _, u := range w.units {
		if u.Team() == team {
			gs.Units = append(gs.Units, model.Unit{
				ID:           u.ID(),
				Type:         u.TypeName(),
				X:            u.Pos.X,
				Y:            u.Pos.Y,
				HP:           u.Health(),
				MaxHP:        u.MaxHealth(),
				Idle:         u.Unit.Idle(),
				AttackTarget: u.Unit.AttackTarget,
				MineTarget:   u.Unit.MineTarget,
			})
			continue
		}
		gs.Enemies = append(gs.Enemies, enemyOf(u))
	}
	for _, b := range w.buildings {
		if b.Team() != team {
			gs.Enemies = append(gs.Enemies, enemyOf(b))
			continue
		}
		gs.Buildings = append(gs.Buildings, model.Building{
			ID:          b.ID(),
			Type:        b.TypeName(),
			X:           b.Pos.X,
			Y:           b.Pos.Y,
			HP:          b.Health(),
			MaxHP:       b.MaxHealth(),
			Constructed: b.Building.Constructed(),
		})
		if q, ok := w.queues[b.ID()]; ok {
			pq := model.ProductionQueue{
				Building:        b.ID(),
				CurrentProgress: int(math.Round(q.Progress() * 100)),
				Full:            q.Full(),
			}
			for _, o := range q.Orders() {
				pq.Items = append(pq.Items, string(o.Unit))
			}
			if len(pq.Items) > 0 {
				pq.CurrentItem = pq.Items[0]
			}
			for _, t := range b.Building.Stats.Produces {
				pq.Buildable = append(pq.Buildable, string(t))
			}
			gs.ProductionQueues = append(gs.ProductionQueues, pq)
		}
	}
	for _, r := range w.resources {
		if r.Resource.Depleted() {
			continue
		}
		gs.Resources = append(gs.Resources, model.Resource{
			ID:        r.ID(),
			X:         r.Pos.X,
			Y:         r.Pos.Y,
			Remaining: r.Resource.Remaining(),
		})
	}
	return gs
}

func enemyOf(e *model.Entity) model.Enemy {
	return model.Enemy{
		ID:    e.ID(),
		Team:  e.Team(),
		Kind:  e.Kind().String(),
		Type:  e.TypeName(),
		X:     e.Pos.X,
		Y:     e.Pos.Y,
		HP:    e.Health(),
		MaxHP: e.MaxHealth(),
	}
}

// Standing returns the teams, in registration order, that still own a
// unit or building.
func (w *World) Standing() []model.TeamID {
	alive := make(map[model.TeamID]bool)
	for _, list := range [][]*model.Entity{w.units, w.buildings} {
		for _, e := range list {
			if e.Alive() {
				alive[e.Team()] = true
			}
		}
	}
	var out []model.TeamID
	for _, t := range w.teams {
		if alive[t.ID] {
			out = append(out, t.ID)
		}
	}
	return out
}
