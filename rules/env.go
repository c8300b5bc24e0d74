package rules

import (
	"math"
	"math/rand"
	"strings"

	"github.com/nstehr/skirmish/model"
)

// Cycle carries the controller's per-tick context into rule evaluation:
// which timers are due and which buildings the team is organised around.
type Cycle struct {
	ProductionDue bool
	StrategyDue   bool
	CommandCenter model.EntityID
	Barracks      model.EntityID
	Home          model.Vec2
	Rand          *rand.Rand
}

// RuleEnv wraps game state and exposes helper methods callable from expr expressions.
type RuleEnv struct {
	State  model.GameState
	Memory map[string]any
	Cycle  Cycle
}

func (e RuleEnv) ProductionDue() bool  { return e.Cycle.ProductionDue }
func (e RuleEnv) StrategyDue() bool    { return e.Cycle.StrategyDue }
func (e RuleEnv) Minerals() int        { return e.State.Player.Minerals }
func (e RuleEnv) ArmySize() int        { return len(e.State.Units) }
func (e RuleEnv) EnemiesVisible() bool { return len(e.State.Enemies) > 0 }

func (e RuleEnv) HasUnit(t string) bool {
	return containsType(e.State.Units, t)
}

func (e RuleEnv) HasBuilding(t string) bool {
	return containsType(e.State.Buildings, t)
}

func (e RuleEnv) UnitCount(t string) int {
	return countType(e.State.Units, t)
}

func (e RuleEnv) BuildingCount(t string) int {
	return countType(e.State.Buildings, t)
}

// CanAfford reports whether the team holds at least the cost of unit type t.
func (e RuleEnv) CanAfford(t string) bool {
	s, ok := model.UnitStatsFor(model.UnitType(strings.ToLower(t)))
	return ok && e.Minerals() >= s.Cost
}

// BarracksReady is true when the team's barracks is standing, built and
// has room in its queue.
func (e RuleEnv) BarracksReady() bool {
	var built bool
	for _, b := range e.State.Buildings {
		if b.ID == e.Cycle.Barracks {
			built = b.Constructed
			break
		}
	}
	if !built {
		return false
	}
	for _, pq := range e.State.ProductionQueues {
		if pq.Building == e.Cycle.Barracks {
			return !pq.Full
		}
	}
	return false
}

// UnitsWithoutTarget returns owned units with no attack target.
func (e RuleEnv) UnitsWithoutTarget() []model.Unit {
	var out []model.Unit
	for _, u := range e.State.Units {
		if u.AttackTarget == model.NoEntity {
			out = append(out, u)
		}
	}
	return out
}

// NearestEnemyTo scans enemies in order (units, then buildings) and returns
// the closest to (x, y). The first one seen wins ties.
func (e RuleEnv) NearestEnemyTo(x, y float64) *model.Enemy {
	return nearest(e.State.Enemies, model.Vec2{X: x, Y: y}, func(model.Enemy) bool { return true })
}

// NearestEnemyBuilding returns the enemy building closest to home.
func (e RuleEnv) NearestEnemyBuilding() *model.Enemy {
	return nearest(e.State.Enemies, e.Cycle.Home, model.Enemy.IsBuilding)
}

func (e RuleEnv) MapWidth() float64  { return e.State.MapWidth }
func (e RuleEnv) MapHeight() float64 { return e.State.MapHeight }

// rand returns a uniform float in [0,1) from the cycle's source, falling
// back to the global source when none is set.
func (e RuleEnv) rand() float64 {
	if e.Cycle.Rand != nil {
		return e.Cycle.Rand.Float64()
	}
	return rand.Float64()
}

func nearest(enemies []model.Enemy, from model.Vec2, keep func(model.Enemy) bool) *model.Enemy {
	var best *model.Enemy
	bestDist := math.MaxFloat64
	for i := range enemies {
		if !keep(enemies[i]) {
			continue
		}
		d := enemies[i].Pos().DistanceTo(from)
		if d < bestDist {
			bestDist = d
			best = &enemies[i]
		}
	}
	return best
}
