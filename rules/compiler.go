package rules

import (
	"fmt"

	"github.com/nstehr/skirmish/model"
)

// CompileDoctrine generates a complete rule set from a doctrine's weights.
// Conditions are built with fmt.Sprintf from interpolated values, so
// the compiler never generates invalid expr.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	// --- Production cycle ---
	// Heavy first; the exclusive category means a light unit is only bought
	// when the heavy rule does not fire.

	rules = append(rules, &Rule{
		Name:      "produce-heavy",
		Priority:  500,
		Category:  "production",
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(
			`ProductionDue() && BarracksReady() && Minerals() >= %d && CanAfford(%q) && UnitCount(%q)*%d <= UnitCount(%q)`,
			d.HeavyMineralThreshold(), HeavyUnit, HeavyUnit, d.LightPerHeavy(), LightUnit),
		Action: ActionProduce(model.Vehicle),
	})

	rules = append(rules, &Rule{
		Name:         "produce-light",
		Priority:     450,
		Category:     "production",
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`ProductionDue() && BarracksReady() && CanAfford(%q)`, LightUnit),
		Action:       ActionProduce(model.Infantry),
	})

	// --- Army orders ---
	// The strategy order is exclusive so per-tick targeting does not
	// overwrite it from the pre-order state.

	rules = append(rules, &Rule{
		Name:         "attack-nearest-base",
		Priority:     300,
		Category:     "orders",
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`StrategyDue() && ArmySize() >= %d && NearestEnemyBuilding() != nil`, d.MinArmySize()),
		Action:       ActionAttackNearestBase,
	})

	rules = append(rules, &Rule{
		Name:         "acquire-targets",
		Priority:     200,
		Category:     "orders",
		ConditionSrc: `EnemiesVisible() && len(UnitsWithoutTarget()) > 0`,
		Action:       ActionAcquireTargets,
	})

	rules = append(rules, &Rule{
		Name:         "guard-base",
		Priority:     100,
		Category:     "orders",
		ConditionSrc: `!EnemiesVisible() && len(UnitsWithoutTarget()) > 0`,
		Action:       ActionGuardBase(d.GuardRadius()),
	})

	return rules
}

// DefaultRules compiles the default doctrine.
func DefaultRules() []*Rule {
	return CompileDoctrine(DefaultDoctrine())
}
