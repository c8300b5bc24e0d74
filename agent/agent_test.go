package agent

import (
	"strings"
	"testing"
	"time"

	"github.com/nstehr/skirmish/model"
	"github.com/nstehr/skirmish/rules"
	"github.com/nstehr/skirmish/world"
)

const frame = 100 * time.Millisecond

// newAIWorld builds team 1 with a command center at (200, 1000) and an
// agent controlling it. A constructed barracks is added when built is true.
func newAIWorld(t *testing.T, minerals int, built bool) (*world.World, *Agent) {
	t.Helper()
	opts := world.DefaultOptions()
	opts.Avoidance.Enabled = false
	w := world.New(opts)
	w.AddTeam(model.Team{ID: 0, Human: true}, 0)
	w.AddTeam(model.Team{ID: 1}, minerals)

	cc, err := w.AddBuilding(1, model.CommandCenter, model.Vec2{X: 200, Y: 1000})
	if err != nil {
		t.Fatalf("AddBuilding: %v", err)
	}
	var barracks *model.Entity
	if built {
		barracks, err = w.AddBuilding(1, model.Barracks, model.Vec2{X: 350, Y: 1000})
		if err != nil {
			t.Fatalf("AddBuilding: %v", err)
		}
		barracks.Building.Advance(time.Minute)
	}

	engine, err := rules.NewEngine(rules.DefaultRules())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	a := New(engine, cc, barracks, DefaultOptions())
	w.AddController(a)
	return w, a
}

func TestAgent_ProducesOnFirstCycle(t *testing.T) {
	w, a := newAIWorld(t, 100, true)

	w.Tick(frame)
	q, ok := w.Queue(a.Barracks)
	if !ok {
		t.Fatal("barracks has no queue")
	}
	if q.Len() != 1 {
		t.Fatalf("queue length = %d, want 1", q.Len())
	}
	if head, _ := q.Head(); head.Unit != model.Infantry {
		t.Errorf("queued %s, want infantry below the heavy threshold", head.Unit)
	}
	if got := w.Minerals(1); got != 50 {
		t.Errorf("minerals = %d, want 50", got)
	}

	// Next production cycle is five seconds away.
	w.Tick(frame)
	if q.Len() != 1 || w.Minerals(1) != 50 {
		t.Errorf("produced off-cycle: queue %d, minerals %d", q.Len(), w.Minerals(1))
	}
}

func TestAgent_ProductionCadence(t *testing.T) {
	w, a := newAIWorld(t, 1000, true)
	q, _ := w.Queue(a.Barracks)

	orders := 0
	prev := w.Minerals(1)
	for i := 0; i < 120; i++ { // 12s
		w.Tick(frame)
		if m := w.Minerals(1); m < prev {
			orders++
		}
		prev = w.Minerals(1)
	}
	// Fires at 0.1s, then strictly after each 5s interval: 5.2s and 10.3s.
	if orders != 3 {
		t.Errorf("orders = %d, want 3 (queue %d)", orders, q.Len())
	}
}

func TestAgent_GuardsHomeWithoutEnemies(t *testing.T) {
	w, a := newAIWorld(t, 0, false)
	u, err := w.AddUnit(1, model.Infantry, model.Vec2{X: 200, Y: 1100})
	if err != nil {
		t.Fatalf("AddUnit: %v", err)
	}

	w.Tick(frame)
	dest := u.Unit.MoveTarget
	if dest == nil {
		t.Fatal("idle unit was not given a guard point")
	}
	if dest.X < a.Home.X-100 || dest.X > a.Home.X+100 || dest.Y < a.Home.Y-100 || dest.Y > a.Home.Y+100 {
		t.Errorf("guard point %+v is outside ±100 of home %+v", *dest, a.Home)
	}
}

func TestAgent_StrategyAttacksNearestBase(t *testing.T) {
	w, _ := newAIWorld(t, 0, false)
	near, _ := w.AddBuilding(0, model.CommandCenter, model.Vec2{X: 200, Y: 200})
	if _, err := w.AddBuilding(0, model.Barracks, model.Vec2{X: 1400, Y: 1000}); err != nil {
		t.Fatalf("AddBuilding: %v", err)
	}
	var army []*model.Entity
	for i := 0; i < 5; i++ {
		u, err := w.AddUnit(1, model.Infantry, model.Vec2{X: 300 + float64(i)*30, Y: 900})
		if err != nil {
			t.Fatalf("AddUnit: %v", err)
		}
		army = append(army, u)
	}

	w.Tick(frame)
	for _, u := range army {
		if u.Unit.AttackTarget != near.ID() {
			t.Errorf("unit %d targets %d, want base %d", u.ID(), u.Unit.AttackTarget, near.ID())
		}
	}
}

func TestAgent_EventForcesStrategy(t *testing.T) {
	w, a := newAIWorld(t, 0, true)
	w.Tick(frame) // both cycles consumed

	if a.strategy.due(w.Now()) {
		t.Fatal("strategy should not be due right after firing")
	}

	b, _ := w.Entity(a.Barracks)
	b.TakeDamage(b.MaxHealth())
	w.Tick(frame)

	events := a.RecentEvents()
	if !hasKind(events, EventBarracksLost) {
		t.Fatalf("expected barracks_lost, got %+v", events)
	}
	if a.strategy.last != w.Now() {
		t.Errorf("strategy last fired at %s, want forced at %s", a.strategy.last, w.Now())
	}
}

func TestAgent_Report(t *testing.T) {
	w, a := newAIWorld(t, 75, true)
	w.Tick(frame)

	report := a.Report(w)
	for _, want := range []string{"Team 1", "Minerals: 25", "1x barracks", "1x command_center", "Queue"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestCadence(t *testing.T) {
	c := cadence{interval: time.Second}
	steps := []struct {
		now  time.Duration
		want bool
	}{
		{0, true},
		{500 * time.Millisecond, false},
		{time.Second, false},
		{1100 * time.Millisecond, true},
		{2100 * time.Millisecond, false},
		{2200 * time.Millisecond, true},
	}
	for _, s := range steps {
		if got := c.due(s.now); got != s.want {
			t.Errorf("due(%s) = %v, want %v", s.now, got, s.want)
		}
	}
	c.force()
	if !c.due(2300 * time.Millisecond) {
		t.Error("forced cadence should fire")
	}
}
