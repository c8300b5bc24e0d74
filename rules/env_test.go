package rules

import (
	"math/rand"
	"testing"

	"github.com/nstehr/skirmish/model"
)

func TestNearestEnemyTo_FirstSeenWinsTies(t *testing.T) {
	env := RuleEnv{
		State: model.GameState{
			Enemies: []model.Enemy{
				{ID: 10, Kind: "unit", X: 100, Y: 0},
				{ID: 11, Kind: "unit", X: -100, Y: 0},
				{ID: 12, Kind: "building", X: 0, Y: 100},
			},
		},
		Memory: map[string]any{},
	}
	got := env.NearestEnemyTo(0, 0)
	if got == nil || got.ID != 10 {
		t.Fatalf("NearestEnemyTo = %+v, want id 10", got)
	}

	got = env.NearestEnemyTo(0, 90)
	if got == nil || got.ID != 12 {
		t.Errorf("NearestEnemyTo(0,90) = %+v, want building 12", got)
	}
}

func TestNearestEnemyTo_None(t *testing.T) {
	env := RuleEnv{Memory: map[string]any{}}
	if got := env.NearestEnemyTo(0, 0); got != nil {
		t.Errorf("expected nil with no enemies, got %+v", got)
	}
	if env.EnemiesVisible() {
		t.Error("EnemiesVisible should be false")
	}
}

func TestNearestEnemyBuilding(t *testing.T) {
	env := RuleEnv{
		State: model.GameState{
			Enemies: []model.Enemy{
				{ID: 1, Kind: "unit", X: 210, Y: 1000},
				{ID: 2, Kind: "building", Type: Barracks, X: 1550, Y: 1000},
				{ID: 3, Kind: "building", Type: CommandCenter, X: 1400, Y: 200},
			},
		},
		Cycle: Cycle{Home: model.Vec2{X: 200, Y: 1000}},
	}
	got := env.NearestEnemyBuilding()
	if got == nil || got.ID != 2 {
		t.Fatalf("NearestEnemyBuilding = %+v, want 2", got)
	}

	env.State.Enemies = env.State.Enemies[:1]
	if got := env.NearestEnemyBuilding(); got != nil {
		t.Errorf("expected nil with only units visible, got %+v", got)
	}
}

func TestBarracksReady(t *testing.T) {
	tests := []struct {
		name  string
		state func(gs *model.GameState)
		want  bool
	}{
		{"built with room", func(*model.GameState) {}, true},
		{"queue full", func(gs *model.GameState) { gs.ProductionQueues[0].Full = true }, false},
		{"under construction", func(gs *model.GameState) { gs.Buildings[1].Constructed = false }, false},
		{"destroyed", func(gs *model.GameState) { gs.Buildings = gs.Buildings[:1] }, false},
		{"no queue", func(gs *model.GameState) { gs.ProductionQueues = nil }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := readyState(0)
			tt.state(&gs)
			env := RuleEnv{State: gs, Cycle: readyCycle()}
			if got := env.BarracksReady(); got != tt.want {
				t.Errorf("BarracksReady() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnitsWithoutTarget(t *testing.T) {
	env := RuleEnv{
		State: model.GameState{
			Units: []model.Unit{
				{ID: 1, Type: LightUnit},
				{ID: 2, Type: LightUnit, AttackTarget: 9},
				{ID: 3, Type: HeavyUnit, MineTarget: 7},
			},
		},
	}
	got := env.UnitsWithoutTarget()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("UnitsWithoutTarget = %+v, want ids [1 3]", got)
	}
}

func TestCounts(t *testing.T) {
	env := RuleEnv{
		State: model.GameState{
			Units:     append(units(3, LightUnit), units(2, HeavyUnit)...),
			Buildings: readyState(0).Buildings,
		},
	}
	if env.ArmySize() != 5 {
		t.Errorf("ArmySize = %d, want 5", env.ArmySize())
	}
	if env.UnitCount("Infantry") != 3 {
		t.Errorf("UnitCount is case-insensitive: got %d, want 3", env.UnitCount("Infantry"))
	}
	if !env.HasUnit(HeavyUnit) || env.UnitCount(HeavyUnit) != 2 {
		t.Errorf("heavy count = %d", env.UnitCount(HeavyUnit))
	}
	if !env.HasBuilding(Barracks) || env.BuildingCount(CommandCenter) != 1 {
		t.Error("expected one barracks and one command center")
	}
}

func TestCanAfford(t *testing.T) {
	tests := []struct {
		minerals int
		unit     string
		want     bool
	}{
		{50, LightUnit, true},
		{49, LightUnit, false},
		{150, HeavyUnit, true},
		{149, HeavyUnit, false},
		{1000, "mothership", false},
	}
	for _, tt := range tests {
		env := RuleEnv{State: model.GameState{Player: model.Player{Minerals: tt.minerals}}}
		if got := env.CanAfford(tt.unit); got != tt.want {
			t.Errorf("CanAfford(%q) with %d = %v, want %v", tt.unit, tt.minerals, got, tt.want)
		}
	}
}

func TestRandUsesCycleSource(t *testing.T) {
	a := RuleEnv{Cycle: Cycle{Rand: rand.New(rand.NewSource(7))}}
	b := RuleEnv{Cycle: Cycle{Rand: rand.New(rand.NewSource(7))}}
	for i := 0; i < 5; i++ {
		if x, y := a.rand(), b.rand(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}
