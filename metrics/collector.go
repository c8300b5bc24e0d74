// Package metrics exports simulation activity as Prometheus metrics by
// listening to world events.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/nstehr/skirmish/event"
	"github.com/nstehr/skirmish/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the simulation metrics. It implements event.Listener;
// subscribe it to every event type with Attach.
type Collector struct {
	gatherer prometheus.Gatherer

	UnitsSpawned      *prometheus.CounterVec
	SpawnFailures     *prometheus.CounterVec
	ProductionQueued  *prometheus.CounterVec
	Projectiles       *prometheus.CounterVec
	EntitiesDestroyed *prometheus.CounterVec
	MineralsMined     *prometheus.CounterVec
	NodesDepleted     prometheus.Counter
	Entities          *prometheus.GaugeVec
	TeamMinerals      *prometheus.GaugeVec
	TeamUnits         *prometheus.GaugeVec
	Tick              prometheus.Gauge
	SimulatedSeconds  prometheus.Gauge
	TickDuration      prometheus.Histogram
}

// NewCollector registers the simulation metrics against reg, defaulting to
// the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}
	c := &Collector{gatherer: gatherer}

	var err error
	if c.UnitsSpawned, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skirmish_units_spawned_total",
		Help: "Units that left a production queue and were placed on the field.",
	}, []string{"team", "unit"}), "skirmish_units_spawned_total"); err != nil {
		return nil, err
	}
	if c.SpawnFailures, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skirmish_spawn_failures_total",
		Help: "Finished production orders that found no free spawn point.",
	}, []string{"team", "unit"}), "skirmish_spawn_failures_total"); err != nil {
		return nil, err
	}
	if c.ProductionQueued, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skirmish_production_queued_total",
		Help: "Production orders accepted by a queue.",
	}, []string{"team", "unit"}), "skirmish_production_queued_total"); err != nil {
		return nil, err
	}
	if c.Projectiles, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skirmish_projectiles_total",
		Help: "Projectile lifecycle events, labeled by projectile kind and outcome (fired, hit, expired).",
	}, []string{"kind", "outcome"}), "skirmish_projectiles_total"); err != nil {
		return nil, err
	}
	if c.EntitiesDestroyed, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skirmish_entities_destroyed_total",
		Help: "Units and buildings removed after reaching zero health.",
	}, []string{"team", "kind"}), "skirmish_entities_destroyed_total"); err != nil {
		return nil, err
	}
	if c.MineralsMined, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skirmish_minerals_mined_total",
		Help: "Minerals moved from mineral fields to team balances.",
	}, []string{"team"}), "skirmish_minerals_mined_total"); err != nil {
		return nil, err
	}
	if c.NodesDepleted, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skirmish_nodes_depleted_total",
		Help: "Mineral fields mined empty.",
	}), "skirmish_nodes_depleted_total"); err != nil {
		return nil, err
	}
	if c.Entities, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "skirmish_entities",
		Help: "Live entities by kind at the end of the last tick.",
	}, []string{"kind"}), "skirmish_entities"); err != nil {
		return nil, err
	}
	if c.TeamMinerals, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "skirmish_team_minerals",
		Help: "Team mineral balance at the end of the last tick.",
	}, []string{"team"}), "skirmish_team_minerals"); err != nil {
		return nil, err
	}
	if c.TeamUnits, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "skirmish_team_units",
		Help: "Live units per team at the end of the last tick.",
	}, []string{"team"}), "skirmish_team_units"); err != nil {
		return nil, err
	}
	if c.Tick, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "skirmish_tick",
		Help: "Number of the last completed tick.",
	}), "skirmish_tick"); err != nil {
		return nil, err
	}
	if c.SimulatedSeconds, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "skirmish_simulated_seconds",
		Help: "Simulation clock at the end of the last tick.",
	}), "skirmish_simulated_seconds"); err != nil {
		return nil, err
	}
	if c.TickDuration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "skirmish_tick_duration_seconds",
		Help:    "Wall time spent computing one tick.",
		Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
	}), "skirmish_tick_duration_seconds"); err != nil {
		return nil, err
	}
	return c, nil
}

// Attach subscribes c to every event type on d.
func (c *Collector) Attach(d *event.Dispatcher) {
	d.SubscribeAll(c)
}

// OnEvent records e.
func (c *Collector) OnEvent(e event.Event) {
	if c == nil {
		return
	}
	switch d := e.Data.(type) {
	case event.Spawn:
		c.UnitsSpawned.WithLabelValues(team(d.Team), string(d.Unit)).Inc()
	case event.SpawnFailure:
		c.SpawnFailures.WithLabelValues(team(d.Team), string(d.Unit)).Inc()
	case event.Queued:
		c.ProductionQueued.WithLabelValues(team(d.Team), string(d.Unit)).Inc()
	case event.Shot:
		c.Projectiles.WithLabelValues(string(d.Kind), outcome(e.Type)).Inc()
	case event.Destroyed:
		c.EntitiesDestroyed.WithLabelValues(team(d.Team), d.Kind.String()).Inc()
	case event.Mined:
		if e.Type == event.NodeDepleted {
			c.NodesDepleted.Inc()
			return
		}
		c.MineralsMined.WithLabelValues(team(d.Team)).Add(float64(d.Amount))
	case event.TickStats:
		c.observeTick(e.Tick, d)
	}
}

func (c *Collector) observeTick(tick int, s event.TickStats) {
	c.Tick.Set(float64(tick))
	c.SimulatedSeconds.Set(s.Now.Seconds())
	c.TickDuration.Observe(s.Elapsed.Seconds())
	for _, k := range []model.Kind{model.KindUnit, model.KindBuilding, model.KindProjectile, model.KindResource} {
		c.Entities.WithLabelValues(k.String()).Set(float64(s.Entities[k]))
	}
	for t, m := range s.Minerals {
		c.TeamMinerals.WithLabelValues(team(t)).Set(float64(m))
		c.TeamUnits.WithLabelValues(team(t)).Set(float64(s.Units[t]))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func team(t model.TeamID) string { return strconv.Itoa(int(t)) }

func outcome(t event.Type) string {
	switch t {
	case event.ProjectileFired:
		return "fired"
	case event.ProjectileHit:
		return "hit"
	case event.ProjectileExpired:
		return "expired"
	}
	return "unknown"
}

// register adds col to reg. A collector already registered under the same
// descriptor is reused when it has the same type.
func register[T prometheus.Collector](reg prometheus.Registerer, col T, name string) (T, error) {
	if err := reg.Register(col); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return col, nil
}
