package agent

import (
	"log/slog"
	"time"

	"github.com/nstehr/skirmish/model"
	"github.com/nstehr/skirmish/rules"
	"github.com/nstehr/skirmish/world"
)

// recentEventCap bounds how many detected events an agent remembers.
const recentEventCap = 16

// Options holds the decision cadence for an agent.
type Options struct {
	ProductionInterval time.Duration
	StrategyInterval   time.Duration
}

func DefaultOptions() Options {
	return Options{
		ProductionInterval: 5 * time.Second,
		StrategyInterval:   10 * time.Second,
	}
}

// Agent owns the decision-making for a single AI team. It runs as a
// world.Controller after every tick and issues commands through the same
// surface a player uses.
type Agent struct {
	Team          model.TeamID
	Engine        *rules.Engine
	CommandCenter model.EntityID
	Barracks      model.EntityID
	// Home is where the command center stood when the agent was created.
	// It stays put after the command center is lost.
	Home model.Vec2

	production cadence
	strategy   cadence
	prev       *stateSnapshot
	events     []Event
}

// New creates an agent for the team owning commandCenter.
func New(engine *rules.Engine, commandCenter, barracks *model.Entity, opts Options) *Agent {
	a := &Agent{
		Team:          commandCenter.Team(),
		Engine:        engine,
		CommandCenter: commandCenter.ID(),
		Home:          commandCenter.Pos,
		production:    cadence{interval: opts.ProductionInterval},
		strategy:      cadence{interval: opts.StrategyInterval},
	}
	if barracks != nil {
		a.Barracks = barracks.ID()
	}
	return a
}

// Think evaluates the rule set against the team's view of w.
func (a *Agent) Think(w *world.World) {
	gs := w.TeamState(a.Team)
	now := w.Now()

	cur := takeSnapshot(gs)
	for _, ev := range detectEvents(gs, a.prev) {
		slog.Info("ai event", "team", a.Team, "kind", ev.Kind, "tick", ev.Tick, "detail", ev.Detail)
		a.record(ev)
		a.strategy.force()
	}
	a.prev = &cur

	cycle := rules.Cycle{
		ProductionDue: a.production.due(now),
		StrategyDue:   a.strategy.due(now),
		CommandCenter: a.CommandCenter,
		Barracks:      a.Barracks,
		Home:          a.Home,
		Rand:          w.Rand(),
	}
	if err := a.Engine.Evaluate(gs, cycle, w); err != nil {
		slog.Error("rule engine error", "team", a.Team, "error", err)
	}
}

// RecentEvents returns the most recent detected events, oldest first.
func (a *Agent) RecentEvents() []Event {
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

func (a *Agent) record(ev Event) {
	a.events = append(a.events, ev)
	if n := len(a.events); n > recentEventCap {
		a.events = a.events[n-recentEventCap:]
	}
}

// cadence fires at most once per interval of simulation time. The first
// check always fires.
type cadence struct {
	interval time.Duration
	last     time.Duration
	started  bool
}

func (c *cadence) due(now time.Duration) bool {
	if c.started && now-c.last <= c.interval {
		return false
	}
	c.started = true
	c.last = now
	return true
}

// force makes the next check fire regardless of the interval.
func (c *cadence) force() { c.started = false }
