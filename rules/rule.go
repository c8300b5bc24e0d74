package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/skirmish/command"
)

// ActionFunc issues commands when a rule's condition is true.
type ActionFunc func(env RuleEnv, out command.Issuer) error

// Rule is the atomic unit of AI behavior: a condition → action pair.
// The engine evaluates rules by priority and uses Category + Exclusive
// to keep conflicting orders out of the same tick.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
