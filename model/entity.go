package model

import (
	"errors"
	"fmt"
	"time"
)

// EntityID is a stable handle into the world. IDs are never reused, so a
// handle to a removed entity simply fails to resolve.
type EntityID uint64

// NoEntity is the zero handle, used for "no target".
const NoEntity EntityID = 0

var ErrUnknownType = errors.New("unknown entity type")

// Kind tags which variant an Entity carries.
type Kind uint8

const (
	KindUnit Kind = iota + 1
	KindBuilding
	KindProjectile
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBuilding:
		return "building"
	case KindProjectile:
		return "projectile"
	case KindResource:
		return "resource"
	}
	return "unknown"
}

// Caps is a capability bitmask derived from an entity's kind and stats.
type Caps uint8

const (
	CanMove Caps = 1 << iota
	CanAttack
	CanHarvest
	CanProduce
)

func (c Caps) Has(o Caps) bool { return c&o == o }

// Entity is the common record for everything on the playfield. Exactly one
// of the variant pointers is set, matching Kind.
type Entity struct {
	id       EntityID
	kind     Kind
	team     TeamID
	Pos      Vec2
	Size     Size
	Selected bool

	health    float64
	maxHealth float64

	Unit       *UnitState
	Building   *BuildingState
	Projectile *ProjectileState
	Resource   *ResourceState
}

func (e *Entity) ID() EntityID { return e.id }
func (e *Entity) Kind() Kind   { return e.kind }
func (e *Entity) Team() TeamID { return e.team }

// TypeName returns the variant's type string ("infantry", "barracks", ...).
func (e *Entity) TypeName() string {
	switch e.kind {
	case KindUnit:
		return string(e.Unit.Type)
	case KindBuilding:
		return string(e.Building.Type)
	case KindProjectile:
		return string(e.Projectile.Kind)
	case KindResource:
		return "mineral_field"
	}
	return ""
}

// Bounds is the footprint centred on Pos.
func (e *Entity) Bounds() Rect { return RectAround(e.Pos, e.Size) }

// Contains reports whether p falls inside the footprint, edges included.
func (e *Entity) Contains(p Vec2) bool { return e.Bounds().Contains(p) }

func (e *Entity) Health() float64    { return e.health }
func (e *Entity) MaxHealth() float64 { return e.maxHealth }

// HealthFraction is health/max in [0,1]; entities without health report 1.
func (e *Entity) HealthFraction() float64 {
	if e.maxHealth <= 0 {
		return 1
	}
	return e.health / e.maxHealth
}

// TakeDamage is the only way health decreases. Health never drops below
// zero and non-positive amounts are ignored.
func (e *Entity) TakeDamage(amount float64) {
	if amount <= 0 || e.maxHealth <= 0 {
		return
	}
	e.health -= amount
	if e.health < 0 {
		e.health = 0
	}
}

// Alive reports whether the entity should survive the end-of-tick prune.
func (e *Entity) Alive() bool {
	switch e.kind {
	case KindUnit, KindBuilding:
		return e.health > 0
	case KindProjectile:
		return !e.Projectile.Resolved
	}
	return true
}

// Caps derives the capability set from the entity's kind and stat table.
func (e *Entity) Caps() Caps {
	switch e.kind {
	case KindUnit:
		c := CanMove | CanAttack
		if e.Unit.Stats.CanHarvest {
			c |= CanHarvest
		}
		return c
	case KindBuilding:
		if len(e.Building.Stats.Produces) > 0 {
			return CanProduce
		}
	}
	return 0
}

// UnitState is the Unit variant.
type UnitState struct {
	Type  UnitType
	Stats UnitStats

	MoveTarget   *Vec2
	AttackTarget EntityID
	MineTarget   EntityID
	// Chasing marks MoveTarget as derived from an out-of-range attack target
	// rather than an explicit move order.
	Chasing bool

	NextAttackAt time.Duration
	NextMineAt   time.Duration
}

// MoveTo is an explicit move order: it replaces any attack or mine order.
func (u *UnitState) MoveTo(p Vec2) {
	u.MoveTarget = &p
	u.AttackTarget = NoEntity
	u.MineTarget = NoEntity
	u.Chasing = false
}

// Attack binds an attack target and drops any move or mine order.
func (u *UnitState) Attack(id EntityID) {
	u.AttackTarget = id
	u.MoveTarget = nil
	u.MineTarget = NoEntity
	u.Chasing = false
}

// Harvest binds a resource node and walks toward it.
func (u *UnitState) Harvest(id EntityID, at Vec2) {
	u.MineTarget = id
	u.AttackTarget = NoEntity
	u.MoveTarget = &at
	u.Chasing = false
}

// Chase points the unit at its attack target's current position.
func (u *UnitState) Chase(p Vec2) {
	u.MoveTarget = &p
	u.Chasing = true
}

// StopChase clears a chase-derived move target; explicit moves are kept.
func (u *UnitState) StopChase() {
	if u.Chasing {
		u.MoveTarget = nil
		u.Chasing = false
	}
}

// ClearAttack drops the attack target along with any chase it caused.
func (u *UnitState) ClearAttack() {
	u.AttackTarget = NoEntity
	u.StopChase()
}

func (u *UnitState) Idle() bool {
	return u.MoveTarget == nil && u.AttackTarget == NoEntity && u.MineTarget == NoEntity
}

// BuildingState is the Building variant.
type BuildingState struct {
	Type     BuildingType
	Stats    BuildingStats
	Progress time.Duration
}

func (b *BuildingState) Constructed() bool {
	return b.Progress >= b.Stats.ConstructionTime
}

// Advance moves construction forward by dt, stopping at completion.
func (b *BuildingState) Advance(dt time.Duration) {
	if b.Constructed() || dt <= 0 {
		return
	}
	b.Progress += dt
	if b.Progress > b.Stats.ConstructionTime {
		b.Progress = b.Stats.ConstructionTime
	}
}

// ConstructionFraction is construction progress in [0,1].
func (b *BuildingState) ConstructionFraction() float64 {
	if b.Stats.ConstructionTime <= 0 {
		return 1
	}
	return float64(b.Progress) / float64(b.Stats.ConstructionTime)
}

func (b *BuildingState) CanProduce(t UnitType) bool {
	for _, p := range b.Stats.Produces {
		if p == t {
			return true
		}
	}
	return false
}

// ProjectileState is the Projectile variant. A projectile is bound to one
// target for its whole flight.
type ProjectileState struct {
	Kind     ProjectileKind
	Stats    ProjectileStats
	Source   EntityID
	Target   EntityID
	Damage   float64
	Resolved bool
}

// ResourceState is the ResourceNode variant.
type ResourceState struct {
	remaining int
	initial   int
}

// Mine removes up to amount minerals and returns how many were taken.
func (r *ResourceState) Mine(amount int) int {
	if amount <= 0 || r.remaining <= 0 {
		return 0
	}
	taken := min(amount, r.remaining)
	r.remaining -= taken
	return taken
}

func (r *ResourceState) Remaining() int { return r.remaining }
func (r *ResourceState) Initial() int   { return r.initial }
func (r *ResourceState) Depleted() bool { return r.remaining <= 0 }

// NewUnit builds a unit of type t at full health.
func NewUnit(id EntityID, team TeamID, t UnitType, pos Vec2) (*Entity, error) {
	s, ok := UnitStatsFor(t)
	if !ok {
		return nil, fmt.Errorf("unit %q: %w", t, ErrUnknownType)
	}
	return &Entity{
		id:        id,
		kind:      KindUnit,
		team:      team,
		Pos:       pos,
		Size:      s.Size,
		health:    s.MaxHealth,
		maxHealth: s.MaxHealth,
		Unit:      &UnitState{Type: t, Stats: s},
	}, nil
}

// NewBuilding builds a building of type t. Types with no construction time
// start complete; the rest start at zero progress.
func NewBuilding(id EntityID, team TeamID, t BuildingType, pos Vec2) (*Entity, error) {
	s, ok := BuildingStatsFor(t)
	if !ok {
		return nil, fmt.Errorf("building %q: %w", t, ErrUnknownType)
	}
	return &Entity{
		id:        id,
		kind:      KindBuilding,
		team:      team,
		Pos:       pos,
		Size:      s.Size,
		health:    s.MaxHealth,
		maxHealth: s.MaxHealth,
		Building:  &BuildingState{Type: t, Stats: s},
	}, nil
}

// NewProjectile builds a projectile fired by source at target.
func NewProjectile(id EntityID, team TeamID, k ProjectileKind, pos Vec2, source, target EntityID, damage float64) (*Entity, error) {
	s, ok := ProjectileStatsFor(k)
	if !ok {
		return nil, fmt.Errorf("projectile %q: %w", k, ErrUnknownType)
	}
	return &Entity{
		id:   id,
		kind: KindProjectile,
		team: team,
		Pos:  pos,
		Size: Size{W: 4, H: 4},
		Projectile: &ProjectileState{
			Kind:   k,
			Stats:  s,
			Source: source,
			Target: target,
			Damage: damage,
		},
	}, nil
}

// NewResourceNode builds a neutral mineral field holding amount minerals.
func NewResourceNode(id EntityID, pos Vec2, amount int) *Entity {
	return &Entity{
		id:       id,
		kind:     KindResource,
		team:     NoTeam,
		Pos:      pos,
		Size:     ResourceNodeSize,
		Resource: &ResourceState{remaining: amount, initial: amount},
	}
}
