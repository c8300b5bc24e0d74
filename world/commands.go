package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nstehr/skirmish/command"
	"github.com/nstehr/skirmish/event"
	"github.com/nstehr/skirmish/model"
)

// Issue applies cmd for team. Orders naming several units are applied to
// every valid unit; per-unit failures are joined into the returned error.
func (w *World) Issue(team model.TeamID, cmd command.Command) error {
	switch c := cmd.(type) {
	case command.SelectCommand:
		w.selectFor(team, c)
		return nil
	case command.MoveCommand:
		dest := w.opts.Field.Clamp(model.Vec2{X: c.X, Y: c.Y})
		return w.eachUnit(team, c.UnitIDs, func(u *model.Entity) error {
			u.Unit.MoveTo(dest)
			return nil
		})
	case command.AttackCommand:
		target, ok := w.entities[c.TargetID]
		if !ok {
			return fmt.Errorf("attack target %d: %w", c.TargetID, command.ErrUnknownEntity)
		}
		if !target.Alive() || (target.Kind() != model.KindUnit && target.Kind() != model.KindBuilding) || target.Team() == team {
			return fmt.Errorf("attack target %d: %w", c.TargetID, command.ErrInvalidTarget)
		}
		return w.eachUnit(team, c.UnitIDs, func(u *model.Entity) error {
			u.Unit.Attack(target.ID())
			return nil
		})
	case command.MineCommand:
		node, ok := w.entities[c.NodeID]
		if !ok {
			return fmt.Errorf("mine node %d: %w", c.NodeID, command.ErrUnknownEntity)
		}
		if node.Resource == nil || node.Resource.Depleted() {
			return fmt.Errorf("mine node %d: %w", c.NodeID, command.ErrInvalidTarget)
		}
		return w.eachUnit(team, c.UnitIDs, func(u *model.Entity) error {
			if !u.Caps().Has(model.CanHarvest) {
				return fmt.Errorf("unit %d: %w", u.ID(), command.ErrCannotHarvest)
			}
			u.Unit.Harvest(node.ID(), node.Pos)
			return nil
		})
	case command.ProduceCommand:
		return w.produce(team, c)
	}
	return fmt.Errorf("%w: %T", command.ErrUnknownCommand, cmd)
}

func (w *World) eachUnit(team model.TeamID, ids []model.EntityID, fn func(u *model.Entity) error) error {
	var errs []error
	for _, id := range ids {
		u, ok := w.entities[id]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("unit %d: %w", id, command.ErrUnknownEntity))
		case u.Team() != team:
			errs = append(errs, fmt.Errorf("unit %d: %w", id, command.ErrNotOwned))
		case u.Unit == nil:
			errs = append(errs, fmt.Errorf("entity %d is not a unit: %w", id, command.ErrInvalidTarget))
		default:
			if err := fn(u); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (w *World) produce(team model.TeamID, c command.ProduceCommand) error {
	b, ok := w.entities[c.BuildingID]
	if !ok {
		return fmt.Errorf("building %d: %w", c.BuildingID, command.ErrUnknownEntity)
	}
	if b.Team() != team {
		return fmt.Errorf("building %d: %w", c.BuildingID, command.ErrNotOwned)
	}
	q, hasQueue := w.queues[b.ID()]
	if b.Building == nil || !hasQueue || !b.Building.CanProduce(c.Unit) {
		return fmt.Errorf("building %d, unit %q: %w", c.BuildingID, c.Unit, command.ErrCannotProduce)
	}
	if !b.Building.Constructed() {
		return fmt.Errorf("building %d: %w", c.BuildingID, command.ErrNotConstructed)
	}
	o, err := q.Enqueue(team, c.Unit, w.ledger)
	if err != nil {
		return fmt.Errorf("produce at %d: %w", c.BuildingID, err)
	}
	slog.Debug("production queued", "team", team, "unit", o.Unit, "building", b.ID(), "queued", q.Len())
	w.emit(event.ProductionQueued, event.Queued{
		Team:     team,
		Unit:     o.Unit,
		Building: b.ID(),
		Cost:     o.Cost,
	})
	return nil
}

// selectFor replaces team's selection. A rectangle selects every owned
// unit and building whose centre is inside it; a point selects the owned
// building under it, else the owned unit under it.
func (w *World) selectFor(team model.TeamID, c command.SelectCommand) {
	for _, e := range w.units {
		if e.Team() == team {
			e.Selected = false
		}
	}
	for _, e := range w.buildings {
		if e.Team() == team {
			e.Selected = false
		}
	}

	if c.Rect != nil {
		r := model.NewRect(c.Rect.Min, c.Rect.Max)
		for _, list := range [][]*model.Entity{w.units, w.buildings} {
			for _, e := range list {
				if e.Team() == team && r.Contains(e.Pos) {
					e.Selected = true
				}
			}
		}
		return
	}
	if c.Point == nil {
		return
	}
	for _, list := range [][]*model.Entity{w.buildings, w.units} {
		for _, e := range list {
			if e.Team() == team && e.Contains(*c.Point) {
				e.Selected = true
				return
			}
		}
	}
}
