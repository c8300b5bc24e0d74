package rules

import (
	"errors"
	"log/slog"

	"github.com/nstehr/skirmish/command"
	"github.com/nstehr/skirmish/model"
)

// Memory keys shared across ticks.
const (
	MemoryStrategyTarget = "strategyTarget"
)

// ActionProduce queues one unit of type t at the team's barracks.
func ActionProduce(t model.UnitType) ActionFunc {
	return func(env RuleEnv, out command.Issuer) error {
		slog.Debug("producing unit", "team", env.State.Player.Team, "unit", t, "minerals", env.Minerals())
		return out.Issue(env.State.Player.Team, command.ProduceCommand{
			BuildingID: env.Cycle.Barracks,
			Unit:       t,
		})
	}
}

// ActionAttackNearestBase sends the whole army at the enemy building
// closest to home.
func ActionAttackNearestBase(env RuleEnv, out command.Issuer) error {
	target := env.NearestEnemyBuilding()
	if target == nil {
		return nil
	}
	ids := make([]model.EntityID, 0, len(env.State.Units))
	for _, u := range env.State.Units {
		ids = append(ids, u.ID)
	}
	if prev, ok := env.Memory[MemoryStrategyTarget].(model.EntityID); !ok || prev != target.ID {
		slog.Info("army attacking enemy base",
			"team", env.State.Player.Team,
			"target", target.ID,
			"targetTeam", target.Team,
			"type", target.Type,
			"army", len(ids),
		)
	}
	env.Memory[MemoryStrategyTarget] = target.ID
	return out.Issue(env.State.Player.Team, command.AttackCommand{
		UnitIDs:  ids,
		TargetID: target.ID,
	})
}

// ActionAcquireTargets points every untasked unit at its nearest enemy.
func ActionAcquireTargets(env RuleEnv, out command.Issuer) error {
	var errs []error
	for _, u := range env.UnitsWithoutTarget() {
		target := env.NearestEnemyTo(u.X, u.Y)
		if target == nil {
			continue
		}
		err := out.Issue(env.State.Player.Team, command.AttackCommand{
			UnitIDs:  []model.EntityID{u.ID},
			TargetID: target.ID,
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ActionGuardBase sends untasked units to a random point within radius of
// home on each axis. The point is re-rolled every time the rule fires.
func ActionGuardBase(radius float64) ActionFunc {
	return func(env RuleEnv, out command.Issuer) error {
		var errs []error
		home := env.Cycle.Home
		for _, u := range env.UnitsWithoutTarget() {
			x := home.X + (env.rand()-0.5)*2*radius
			y := home.Y + (env.rand()-0.5)*2*radius
			err := out.Issue(env.State.Player.Team, command.MoveCommand{
				UnitIDs: []model.EntityID{u.ID},
				X:       x,
				Y:       y,
			})
			if err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
