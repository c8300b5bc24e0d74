package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/skirmish/command"
	"github.com/nstehr/skirmish/model"
)

// diagInterval is how many ticks pass between diagnostics log lines.
const diagInterval = 300

// Engine runs compiled rules against one team's state each tick.
// Rules fire in priority order; exclusive rules block lower-priority rules
// in the same category, so production and army orders never conflict.
type Engine struct {
	rules  []*Rule
	Memory map[string]any

	lastDiagTick int
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{
		rules:  compiled,
		Memory: make(map[string]any),
	}, nil
}

// Evaluate runs all rules against the current team state, issuing
// commands through out.
func (e *Engine) Evaluate(gs model.GameState, cycle Cycle, out command.Issuer) error {
	env := RuleEnv{State: gs, Memory: e.Memory, Cycle: cycle}
	e.logDiagnostics(env)
	fired := make(map[string]bool) // category → exclusive rule already fired

	for _, r := range e.rules {
		if fired[r.Category] {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "team", gs.Player.Team, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "team", gs.Player.Team, "priority", r.Priority, "category", r.Category)

		if err := r.Action(env, out); err != nil {
			slog.Error("rule action error", "rule", r.Name, "team", gs.Player.Team, "error", err)
		}

		if r.Exclusive {
			fired[r.Category] = true
		}
	}
	return nil
}

// logDiagnostics logs a state summary every
// diagInterval ticks regardless of rule activity.
func (e *Engine) logDiagnostics(env RuleEnv) {
	if env.State.Tick-e.lastDiagTick < diagInterval {
		return
	}
	e.lastDiagTick = env.State.Tick

	slog.Info("ai diagnostics",
		"team", env.State.Player.Team,
		"tick", env.State.Tick,
		"minerals", env.Minerals(),
		"army", env.ArmySize(),
		"light", env.UnitCount(LightUnit),
		"heavy", env.UnitCount(HeavyUnit),
		"untasked", len(env.UnitsWithoutTarget()),
		"enemies", len(env.State.Enemies),
		"barracksReady", env.BarracksReady(),
	)
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
