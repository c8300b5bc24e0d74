package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nstehr/skirmish/command"
	"github.com/nstehr/skirmish/event"
	"github.com/nstehr/skirmish/model"
	"github.com/nstehr/skirmish/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestCollector(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return c, reg
}

func TestOnEvent_Counters(t *testing.T) {
	c, _ := newTestCollector(t)

	c.OnEvent(event.Event{Type: event.ProductionQueued, Data: event.Queued{Team: 1, Unit: model.Infantry, Cost: 50}})
	c.OnEvent(event.Event{Type: event.UnitSpawned, Data: event.Spawn{Team: 1, Unit: model.Infantry}})
	c.OnEvent(event.Event{Type: event.SpawnFailed, Data: event.SpawnFailure{Team: 2, Unit: model.Vehicle, Refunded: 150}})
	c.OnEvent(event.Event{Type: event.ProjectileFired, Data: event.Shot{Kind: model.Cannon}})
	c.OnEvent(event.Event{Type: event.ProjectileHit, Data: event.Shot{Kind: model.Cannon}})
	c.OnEvent(event.Event{Type: event.ProjectileExpired, Data: event.Shot{Kind: model.Bullet}})
	c.OnEvent(event.Event{Type: event.EntityDestroyed, Data: event.Destroyed{Team: 3, Kind: model.KindBuilding}})
	c.OnEvent(event.Event{Type: event.MineralsMined, Data: event.Mined{Team: 0, Amount: 8}})
	c.OnEvent(event.Event{Type: event.MineralsMined, Data: event.Mined{Team: 0, Amount: 4}})
	c.OnEvent(event.Event{Type: event.NodeDepleted, Data: event.Mined{Team: 0}})

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"queued", testutil.ToFloat64(c.ProductionQueued.WithLabelValues("1", "infantry")), 1},
		{"spawned", testutil.ToFloat64(c.UnitsSpawned.WithLabelValues("1", "infantry")), 1},
		{"spawn failures", testutil.ToFloat64(c.SpawnFailures.WithLabelValues("2", "vehicle")), 1},
		{"cannon fired", testutil.ToFloat64(c.Projectiles.WithLabelValues("cannon", "fired")), 1},
		{"cannon hit", testutil.ToFloat64(c.Projectiles.WithLabelValues("cannon", "hit")), 1},
		{"bullet expired", testutil.ToFloat64(c.Projectiles.WithLabelValues("bullet", "expired")), 1},
		{"destroyed", testutil.ToFloat64(c.EntitiesDestroyed.WithLabelValues("3", "building")), 1},
		{"mined", testutil.ToFloat64(c.MineralsMined.WithLabelValues("0")), 12},
		{"depleted", testutil.ToFloat64(c.NodesDepleted), 1},
	}
	for _, tt := range checks {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestOnEvent_TickStats(t *testing.T) {
	c, reg := newTestCollector(t)

	c.OnEvent(event.Event{Type: event.TickCompleted, Tick: 42, Data: event.TickStats{
		Now:      700 * time.Millisecond,
		Elapsed:  200 * time.Microsecond,
		Entities: map[model.Kind]int{model.KindUnit: 5, model.KindResource: 13},
		Minerals: map[model.TeamID]int{0: 50, 1: 120},
		Units:    map[model.TeamID]int{0: 2, 1: 3},
	}})

	if got := testutil.ToFloat64(c.Tick); got != 42 {
		t.Errorf("tick = %v, want 42", got)
	}
	if got := testutil.ToFloat64(c.SimulatedSeconds); got != 0.7 {
		t.Errorf("simulated seconds = %v, want 0.7", got)
	}
	if got := testutil.ToFloat64(c.Entities.WithLabelValues("resource")); got != 13 {
		t.Errorf("resource gauge = %v, want 13", got)
	}
	if got := testutil.ToFloat64(c.Entities.WithLabelValues("projectile")); got != 0 {
		t.Errorf("projectile gauge = %v, want 0", got)
	}
	if got := testutil.ToFloat64(c.TeamMinerals.WithLabelValues("1")); got != 120 {
		t.Errorf("team 1 minerals = %v, want 120", got)
	}
	if got := testutil.ToFloat64(c.TeamUnits.WithLabelValues("0")); got != 2 {
		t.Errorf("team 0 units = %v, want 2", got)
	}
	if n := testutil.CollectAndCount(c.TickDuration); n != 1 {
		t.Errorf("tick duration series = %d, want 1", n)
	}
	if _, err := reg.Gather(); err != nil {
		t.Fatalf("gather: %v", err)
	}
}

func TestNewCollector_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}
	first.NodesDepleted.Inc()
	if got := testutil.ToFloat64(second.NodesDepleted); got != 1 {
		t.Errorf("second collector should share counters, got %v", got)
	}
}

func TestCollector_WorldEvents(t *testing.T) {
	c, _ := newTestCollector(t)

	opts := world.DefaultOptions()
	opts.Avoidance.Enabled = false
	w := world.New(opts)
	c.Attach(w.Events())
	w.AddTeam(model.Team{ID: 0, Human: true}, 0)
	w.AddTeam(model.Team{ID: 1}, 0)

	shooter, _ := w.AddUnit(0, model.Infantry, model.Vec2{X: 100, Y: 100})
	target, _ := w.AddUnit(1, model.Infantry, model.Vec2{X: 200, Y: 100})
	if err := w.Issue(0, command.AttackCommand{UnitIDs: []model.EntityID{shooter.ID()}, TargetID: target.ID()}); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	w.Tick(100 * time.Millisecond)

	if got := testutil.ToFloat64(c.Projectiles.WithLabelValues("bullet", "fired")); got != 1 {
		t.Errorf("bullets fired = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Tick); got != 1 {
		t.Errorf("tick gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Entities.WithLabelValues("unit")); got != 2 {
		t.Errorf("unit gauge = %v, want 2", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c, _ := newTestCollector(t)
	c.OnEvent(event.Event{Type: event.UnitSpawned, Data: event.Spawn{Team: 2, Unit: model.Vehicle}})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		`skirmish_units_spawned_total{team="2",unit="vehicle"} 1`,
		"skirmish_tick_duration_seconds",
		"skirmish_nodes_depleted_total",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in /metrics output", want)
		}
	}
}
