// Package scenario builds the four-corner skirmish and runs it headless.
package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/nstehr/skirmish/agent"
	"github.com/nstehr/skirmish/command"
	"github.com/nstehr/skirmish/config"
	"github.com/nstehr/skirmish/model"
	"github.com/nstehr/skirmish/rules"
	"github.com/nstehr/skirmish/world"
)

// Layout positions are given for the default 1600x1200 field and scaled to
// the configured one.
var (
	basePositions = []model.Vec2{
		{X: 200, Y: 200},
		{X: 1400, Y: 200},
		{X: 200, Y: 1000},
		{X: 1400, Y: 1000},
	}

	// barracksOffset places each barracks to the right of its command center.
	barracksOffset = model.Vec2{X: 150}

	mineralPositions = []model.Vec2{
		{X: 300, Y: 100}, {X: 100, Y: 300},
		{X: 1300, Y: 100}, {X: 1500, Y: 300},
		{X: 100, Y: 900}, {X: 300, Y: 1100},
		{X: 1500, Y: 900}, {X: 1300, Y: 1100},
		// centre
		{X: 800, Y: 600},
		{X: 700, Y: 500}, {X: 900, Y: 500},
		{X: 700, Y: 700}, {X: 900, Y: 700},
	}
)

type Options struct {
	World            world.Options
	Teams            int
	Player           model.TeamID
	StartingMinerals int
	Doctrine         rules.Doctrine
	Agent            agent.Options
}

func DefaultOptions() Options {
	return Options{
		World:            world.DefaultOptions(),
		Teams:            config.MaxTeams,
		Player:           0,
		StartingMinerals: 50,
		Doctrine:         rules.DefaultDoctrine(),
		Agent:            agent.DefaultOptions(),
	}
}

// FromConfig maps loaded settings onto scenario options. seed replaces a
// zero sim.seed.
func FromConfig(cfg config.Config, seed int64) Options {
	opts := DefaultOptions()
	opts.World.Field = model.Field{Width: cfg.Sim.Width, Height: cfg.Sim.Height}
	opts.World.Seed = cfg.Sim.Seed
	if opts.World.Seed == 0 {
		opts.World.Seed = seed
	}
	opts.World.Avoidance.Enabled = cfg.Sim.Avoidance
	opts.World.RefundOnSpawnFailure = cfg.Sim.RefundOnSpawnFailure
	opts.Teams = cfg.Teams.Count
	opts.Player = model.TeamID(cfg.Teams.Player)
	opts.StartingMinerals = cfg.Teams.StartingMinerals
	opts.Doctrine = cfg.AI.Doctrine
	opts.Agent = agent.Options{
		ProductionInterval: cfg.AI.ProductionInterval,
		StrategyInterval:   cfg.AI.StrategyInterval,
	}
	return opts
}

// Base is a team's starting pair of buildings.
type Base struct {
	CommandCenter *model.Entity
	Barracks      *model.Entity
}

type Skirmish struct {
	World  *world.World
	Player model.TeamID
	Bases  map[model.TeamID]Base
	Agents []*agent.Agent
}

// Build creates the teams, their bases, the mineral fields and one agent
// per non-player team. Entity ids are assigned in that order, so with four
// teams the command centers are 1, 3, 5, 7, the barracks 2, 4, 6, 8 and
// the mineral fields 9 to 21.
func Build(opts Options) (*Skirmish, error) {
	if opts.Teams < 2 || opts.Teams > len(basePositions) {
		return nil, fmt.Errorf("%w: %d teams, want 2 to %d", config.ErrInvalid, opts.Teams, len(basePositions))
	}
	w := world.New(opts.World)
	field := w.Field()
	def := model.DefaultField()
	scale := func(p model.Vec2) model.Vec2 {
		return model.Vec2{X: p.X * field.Width / def.Width, Y: p.Y * field.Height / def.Height}
	}

	s := &Skirmish{
		World:  w,
		Player: opts.Player,
		Bases:  make(map[model.TeamID]Base, opts.Teams),
	}
	for i := 0; i < opts.Teams; i++ {
		id := model.TeamID(i)
		w.AddTeam(model.Team{ID: id, Human: id == opts.Player}, opts.StartingMinerals)

		pos := scale(basePositions[i])
		cc, err := w.AddBuilding(id, model.CommandCenter, pos)
		if err != nil {
			return nil, err
		}
		barracks, err := w.AddBuilding(id, model.Barracks, scale(basePositions[i].Add(barracksOffset)))
		if err != nil {
			return nil, err
		}
		s.Bases[id] = Base{CommandCenter: cc, Barracks: barracks}
	}
	for _, p := range mineralPositions {
		w.AddResourceNode(scale(p), model.ResourceNodeMinerals)
	}

	for i := 0; i < opts.Teams; i++ {
		id := model.TeamID(i)
		if id == opts.Player {
			continue
		}
		engine, err := rules.NewEngine(rules.CompileDoctrine(opts.Doctrine))
		if err != nil {
			return nil, fmt.Errorf("team %d rules: %w", id, err)
		}
		base := s.Bases[id]
		a := agent.New(engine, base.CommandCenter, base.Barracks, opts.Agent)
		w.AddController(a)
		s.Agents = append(s.Agents, a)
	}

	slog.Info("skirmish ready",
		"teams", opts.Teams,
		"player", opts.Player,
		"minerals", opts.StartingMinerals,
		"doctrine", opts.Doctrine.Name,
		"fields", len(mineralPositions),
	)
	return s, nil
}

// Result summarises a run.
type Result struct {
	Ticks    int
	Elapsed  time.Duration // simulated
	Standing []model.TeamID
}

// Winner returns the last team standing, if exactly one is.
func (r Result) Winner() (model.TeamID, bool) {
	if len(r.Standing) != 1 {
		return model.NoTeam, false
	}
	return r.Standing[0], true
}

// Run advances the skirmish in steps of dt until duration of simulated
// time has passed or at most one team is left standing. Scripted commands
// are issued just before the tick they name; rejected ones are logged and
// skipped. Run stops early with ctx's error when ctx is done.
func (s *Skirmish) Run(ctx context.Context, dt, duration time.Duration, script []command.Envelope) (Result, error) {
	if dt <= 0 {
		return Result{}, fmt.Errorf("%w: tick interval %s", config.ErrInvalid, dt)
	}
	script = append([]command.Envelope(nil), script...)
	sort.SliceStable(script, func(i, j int) bool { return script[i].Tick < script[j].Tick })

	w := s.World
	next := 0
	for w.Now() < duration {
		if err := ctx.Err(); err != nil {
			return s.result(), err
		}
		tick := w.TickCount() + 1
		for ; next < len(script) && script[next].Tick <= tick; next++ {
			s.apply(script[next])
		}
		w.Tick(dt)
		if len(w.Standing()) <= 1 {
			slog.Info("skirmish decided", "tick", w.TickCount(), "standing", w.Standing())
			break
		}
	}
	return s.result(), nil
}

func (s *Skirmish) apply(env command.Envelope) {
	cmd, err := env.Decode()
	if err == nil {
		err = s.World.Issue(env.Team, cmd)
	}
	if err != nil {
		slog.Warn("scripted command rejected", "tick", env.Tick, "team", env.Team, "type", env.Type, "error", err)
		return
	}
	slog.Debug("scripted command", "tick", env.Tick, "team", env.Team, "type", env.Type)
}

func (s *Skirmish) result() Result {
	return Result{
		Ticks:    s.World.TickCount(),
		Elapsed:  s.World.Now(),
		Standing: s.World.Standing(),
	}
}
