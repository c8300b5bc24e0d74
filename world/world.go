// Package world owns every entity and advances the simulation one tick at a
// time. It is single-threaded: callers must not use a World from more than
// one goroutine at once.
package world

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/nstehr/skirmish/economy"
	"github.com/nstehr/skirmish/event"
	"github.com/nstehr/skirmish/model"
	"github.com/nstehr/skirmish/production"
)

// Controller decides for one team after each tick's updates.
type Controller interface {
	Think(w *World)
}

// Avoidance parameterizes the separation force between units.
type Avoidance struct {
	Enabled     bool
	Radius      float64
	MaxForce    float64
	MinDistance float64
}

func DefaultAvoidance() Avoidance {
	return Avoidance{Enabled: true, Radius: 40, MaxForce: 3, MinDistance: 20}
}

// OccupancyMargin is the clearance kept around entities when testing spawn
// points.
const OccupancyMargin = 20

type Options struct {
	Field                model.Field
	Seed                 int64
	Avoidance            Avoidance
	RefundOnSpawnFailure bool
	QueueCapacity        int
	Events               *event.Dispatcher
}

func DefaultOptions() Options {
	return Options{
		Field:                model.DefaultField(),
		Seed:                 1,
		Avoidance:            DefaultAvoidance(),
		RefundOnSpawnFailure: true,
		QueueCapacity:        production.DefaultCapacity,
	}
}

type World struct {
	opts Options

	nextID   model.EntityID
	entities map[model.EntityID]*model.Entity

	// Iteration order per kind is insertion order.
	units       []*model.Entity
	buildings   []*model.Entity
	projectiles []*model.Entity
	resources   []*model.Entity

	queues map[model.EntityID]*production.Queue
	ledger *economy.Ledger
	teams  []model.Team

	placer      *production.Placer
	rand        *rand.Rand
	events      *event.Dispatcher
	controllers []Controller

	now  time.Duration
	tick int
}

func New(opts Options) *World {
	if opts.Field.Width <= 0 || opts.Field.Height <= 0 {
		opts.Field = model.DefaultField()
	}
	if opts.QueueCapacity <= 0 {
		opts.QueueCapacity = production.DefaultCapacity
	}
	if opts.Events == nil {
		opts.Events = event.NewDispatcher()
	}
	r := rand.New(rand.NewSource(opts.Seed))
	return &World{
		opts:     opts,
		entities: make(map[model.EntityID]*model.Entity),
		queues:   make(map[model.EntityID]*production.Queue),
		ledger:   economy.NewLedger(),
		placer:   production.NewPlacer(r),
		rand:     r,
		events:   opts.Events,
	}
}

func (w *World) Now() time.Duration          { return w.now }
func (w *World) TickCount() int              { return w.tick }
func (w *World) Field() model.Field          { return w.opts.Field }
func (w *World) Rand() *rand.Rand            { return w.rand }
func (w *World) Events() *event.Dispatcher   { return w.events }
func (w *World) Teams() []model.Team         { return slices.Clone(w.teams) }
func (w *World) Minerals(t model.TeamID) int { return w.ledger.Balance(t) }

// AddTeam registers a team with its starting balance.
func (w *World) AddTeam(t model.Team, minerals int) {
	if t.Color == "" {
		t.Color = model.ColorFor(t.ID)
	}
	w.teams = append(w.teams, t)
	w.ledger.Open(t.ID, minerals)
}

// AddController registers c to run at the end of every tick.
func (w *World) AddController(c Controller) {
	w.controllers = append(w.controllers, c)
}

func (w *World) allocID() model.EntityID {
	w.nextID++
	return w.nextID
}

// AddUnit places a unit directly, bypassing production.
func (w *World) AddUnit(team model.TeamID, t model.UnitType, pos model.Vec2) (*model.Entity, error) {
	u, err := model.NewUnit(w.allocID(), team, t, pos)
	if err != nil {
		return nil, fmt.Errorf("add unit: %w", err)
	}
	w.insert(u)
	return u, nil
}

// AddBuilding places a building. Buildings that produce get a queue.
func (w *World) AddBuilding(team model.TeamID, t model.BuildingType, pos model.Vec2) (*model.Entity, error) {
	b, err := model.NewBuilding(w.allocID(), team, t, pos)
	if err != nil {
		return nil, fmt.Errorf("add building: %w", err)
	}
	w.insert(b)
	if len(b.Building.Stats.Produces) > 0 {
		w.queues[b.ID()] = production.NewQueue(w.opts.QueueCapacity)
	}
	return b, nil
}

func (w *World) AddResourceNode(pos model.Vec2, amount int) *model.Entity {
	n := model.NewResourceNode(w.allocID(), pos, amount)
	w.insert(n)
	return n
}

func (w *World) insert(e *model.Entity) {
	w.entities[e.ID()] = e
	switch e.Kind() {
	case model.KindUnit:
		w.units = append(w.units, e)
	case model.KindBuilding:
		w.buildings = append(w.buildings, e)
	case model.KindProjectile:
		w.projectiles = append(w.projectiles, e)
	case model.KindResource:
		w.resources = append(w.resources, e)
	}
}

// Entity resolves a handle. Pruned entities are not found.
func (w *World) Entity(id model.EntityID) (*model.Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

func (w *World) Units() []*model.Entity       { return slices.Clone(w.units) }
func (w *World) Buildings() []*model.Entity   { return slices.Clone(w.buildings) }
func (w *World) Projectiles() []*model.Entity { return slices.Clone(w.projectiles) }
func (w *World) Resources() []*model.Entity   { return slices.Clone(w.resources) }

// Queue returns the production queue owned by a building.
func (w *World) Queue(building model.EntityID) (*production.Queue, bool) {
	q, ok := w.queues[building]
	return q, ok
}

// SpendMinerals debits a team if it can afford amount.
func (w *World) SpendMinerals(team model.TeamID, amount int) bool {
	return w.ledger.Spend(team, amount)
}

func (w *World) AddMinerals(team model.TeamID, amount int) {
	w.ledger.Add(team, amount)
}

func (w *World) emit(t event.Type, data any) {
	w.events.Dispatch(event.Event{Type: t, Tick: w.tick, Data: data})
}
