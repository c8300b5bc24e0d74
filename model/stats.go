package model

import "time"

type UnitType string

const (
	Infantry UnitType = "infantry"
	Vehicle  UnitType = "vehicle"
)

type BuildingType string

const (
	CommandCenter BuildingType = "command_center"
	Barracks      BuildingType = "barracks"
)

type ProjectileKind string

const (
	Bullet ProjectileKind = "bullet"
	Cannon ProjectileKind = "cannon"
)

// UnitStats is the static per-type table a unit is created from.
type UnitStats struct {
	MaxHealth  float64
	Speed      float64 // world units per tick
	Size       Size
	Range      float64
	Damage     float64
	Cooldown   time.Duration
	Projectile ProjectileKind

	CanHarvest     bool
	MiningRange    float64
	MiningAmount   int
	MiningCooldown time.Duration

	Cost      int
	BuildTime time.Duration

	// RandomSpawn enables the random annulus fallback when both spawn rings
	// around the producing building are full.
	RandomSpawn bool
}

var unitStats = map[UnitType]UnitStats{
	Infantry: {
		MaxHealth:      40,
		Speed:          3,
		Size:           Size{W: 20, H: 20},
		Range:          150,
		Damage:         5,
		Cooldown:       500 * time.Millisecond,
		Projectile:     Bullet,
		CanHarvest:     true,
		MiningRange:    50,
		MiningAmount:   8,
		MiningCooldown: time.Second,
		Cost:           50,
		BuildTime:      2 * time.Second,
		RandomSpawn:    true,
	},
	Vehicle: {
		MaxHealth:  150,
		Speed:      2,
		Size:       Size{W: 40, H: 40},
		Range:      450,
		Damage:     20,
		Cooldown:   2 * time.Second,
		Projectile: Cannon,
		Cost:       150,
		BuildTime:  4 * time.Second,
	},
}

// UnitStatsFor returns the stat table for t.
func UnitStatsFor(t UnitType) (UnitStats, bool) {
	s, ok := unitStats[t]
	return s, ok
}

// UnitTypes lists every producible unit type in a stable order.
func UnitTypes() []UnitType { return []UnitType{Infantry, Vehicle} }

type BuildingStats struct {
	MaxHealth float64
	Size      Size
	// ConstructionTime of zero means the building is placed already built.
	ConstructionTime time.Duration
	Produces         []UnitType
}

var buildingStats = map[BuildingType]BuildingStats{
	CommandCenter: {
		MaxHealth: 1000,
		Size:      Size{W: 100, H: 100},
	},
	Barracks: {
		MaxHealth:        400,
		Size:             Size{W: 60, H: 60},
		ConstructionTime: 5 * time.Second,
		Produces:         []UnitType{Infantry, Vehicle},
	},
}

func BuildingStatsFor(t BuildingType) (BuildingStats, bool) {
	s, ok := buildingStats[t]
	return s, ok
}

type ProjectileStats struct {
	Speed float64 // world units per tick
	// RadiusHit also resolves the projectile once it is within half the
	// target's width, not only within one step.
	RadiusHit bool
}

var projectileStats = map[ProjectileKind]ProjectileStats{
	Bullet: {Speed: 8},
	Cannon: {Speed: 5, RadiusHit: true},
}

func ProjectileStatsFor(k ProjectileKind) (ProjectileStats, bool) {
	s, ok := projectileStats[k]
	return s, ok
}

// Mineral field defaults.
const (
	ResourceNodeMinerals = 1500
)

var ResourceNodeSize = Size{W: 40, H: 40}
