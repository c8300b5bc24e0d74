// Package event carries simulation events from the world to listeners
// such as metrics and AI controllers.
package event

import (
	"reflect"
	"time"

	"github.com/nstehr/skirmish/model"
)

type Type string

const (
	UnitSpawned       Type = "unit_spawned"
	SpawnFailed       Type = "spawn_failed"
	ProductionQueued  Type = "production_queued"
	ProjectileFired   Type = "projectile_fired"
	ProjectileHit     Type = "projectile_hit"
	ProjectileExpired Type = "projectile_expired"
	EntityDestroyed   Type = "entity_destroyed"
	MineralsMined     Type = "minerals_mined"
	NodeDepleted      Type = "node_depleted"
	TickCompleted     Type = "tick_completed"
)

// Event is a typed notification. Data holds one of the payload structs
// below, matching Type.
type Event struct {
	Type Type
	Tick int
	Data any
}

type Spawn struct {
	Team     model.TeamID
	Unit     model.UnitType
	ID       model.EntityID
	Building model.EntityID
	Pos      model.Vec2
}

type SpawnFailure struct {
	Team     model.TeamID
	Unit     model.UnitType
	Building model.EntityID
	Refunded int
}

type Queued struct {
	Team     model.TeamID
	Unit     model.UnitType
	Building model.EntityID
	Cost     int
}

type Shot struct {
	Team       model.TeamID
	Projectile model.EntityID
	Kind       model.ProjectileKind
	Source     model.EntityID
	Target     model.EntityID
	Damage     float64
}

type Destroyed struct {
	Team model.TeamID
	ID   model.EntityID
	Kind model.Kind
	Type string
}

type Mined struct {
	Team   model.TeamID
	Unit   model.EntityID
	Node   model.EntityID
	Amount int
}

type TickStats struct {
	Now      time.Duration
	Elapsed  time.Duration // wall time spent in the tick
	Entities map[model.Kind]int
	Minerals map[model.TeamID]int
	Units    map[model.TeamID]int
}

// Listener receives dispatched events.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher fans events out to subscribers synchronously, in subscription
// order.
type Dispatcher struct {
	listeners map[Type][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[Type][]Listener)}
}

func (d *Dispatcher) Subscribe(t Type, l Listener) {
	d.listeners[t] = append(d.listeners[t], l)
}

// SubscribeAll registers l for every event type.
func (d *Dispatcher) SubscribeAll(l Listener) {
	for _, t := range AllTypes() {
		d.Subscribe(t, l)
	}
}

// Unsubscribe removes the first registration of l for t. Listeners of a
// non-comparable type, such as ListenerFunc, cannot be matched and the call
// is a no-op for them.
func (d *Dispatcher) Unsubscribe(t Type, l Listener) {
	if lt := reflect.TypeOf(l); lt == nil || !lt.Comparable() {
		return
	}
	ls := d.listeners[t]
	for i, x := range ls {
		if x == l {
			d.listeners[t] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

func (d *Dispatcher) Dispatch(e Event) {
	for _, l := range d.listeners[e.Type] {
		l.OnEvent(e)
	}
}

func AllTypes() []Type {
	return []Type{
		UnitSpawned, SpawnFailed, ProductionQueued, ProjectileFired,
		ProjectileHit, ProjectileExpired, EntityDestroyed, MineralsMined,
		NodeDepleted, TickCompleted,
	}
}
