// Package config loads runtime settings from defaults, an optional config
// file and SKIRMISH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nstehr/skirmish/rules"
	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// EnvPrefix prefixes environment overrides, e.g. SKIRMISH_SIM_TICKRATE.
const EnvPrefix = "SKIRMISH"

type Config struct {
	Log     LogConfig     `json:"log" mapstructure:"log"`
	Sim     SimConfig     `json:"sim" mapstructure:"sim"`
	Teams   TeamsConfig   `json:"teams" mapstructure:"teams"`
	AI      AIConfig      `json:"ai" mapstructure:"ai"`
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
}

type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// SimConfig controls the headless run. A zero seed means time based.
type SimConfig struct {
	TickRate             int           `json:"tickRate" mapstructure:"tickRate"`
	Duration             time.Duration `json:"duration" mapstructure:"duration"`
	Seed                 int64         `json:"seed" mapstructure:"seed"`
	Avoidance            bool          `json:"avoidance" mapstructure:"avoidance"`
	RefundOnSpawnFailure bool          `json:"refundOnSpawnFailure" mapstructure:"refundOnSpawnFailure"`
	Width                float64       `json:"width" mapstructure:"width"`
	Height               float64       `json:"height" mapstructure:"height"`
	Script               string        `json:"script" mapstructure:"script"`
}

// TickInterval is the fixed simulation step.
func (s SimConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}

type TeamsConfig struct {
	Count            int `json:"count" mapstructure:"count"`
	Player           int `json:"player" mapstructure:"player"`
	StartingMinerals int `json:"startingMinerals" mapstructure:"startingMinerals"`
}

type AIConfig struct {
	ProductionInterval time.Duration  `json:"productionInterval" mapstructure:"productionInterval"`
	StrategyInterval   time.Duration  `json:"strategyInterval" mapstructure:"strategyInterval"`
	Doctrine           rules.Doctrine `json:"doctrine" mapstructure:"doctrine"`
}

type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables it.
	Addr string `json:"addr" mapstructure:"addr"`
}

// MaxTeams is the number of starting positions on the skirmish map.
const MaxTeams = 4

func setDefaults() {
	viper.SetDefault("log.level", "info")

	viper.SetDefault("sim.tickRate", 60)
	viper.SetDefault("sim.duration", "2m")
	viper.SetDefault("sim.seed", 0)
	viper.SetDefault("sim.avoidance", true)
	viper.SetDefault("sim.refundOnSpawnFailure", true)
	viper.SetDefault("sim.width", 1600)
	viper.SetDefault("sim.height", 1200)
	viper.SetDefault("sim.script", "")

	viper.SetDefault("teams.count", 4)
	viper.SetDefault("teams.player", 0)
	viper.SetDefault("teams.startingMinerals", 50)

	d := rules.DefaultDoctrine()
	viper.SetDefault("ai.productionInterval", "5s")
	viper.SetDefault("ai.strategyInterval", "10s")
	viper.SetDefault("ai.doctrine.name", d.Name)
	viper.SetDefault("ai.doctrine.rationale", d.Rationale)
	viper.SetDefault("ai.doctrine.economyPriority", d.EconomyPriority)
	viper.SetDefault("ai.doctrine.aggression", d.Aggression)
	viper.SetDefault("ai.doctrine.vehicleWeight", d.VehicleWeight)
	viper.SetDefault("ai.doctrine.defensePriority", d.DefensePriority)

	viper.SetDefault("metrics.addr", "")
}

// Load reads configuration and validates it. path names a JSON, YAML or
// TOML file; when empty only defaults and the environment apply.
func Load(path string) (Config, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Sim.TickRate <= 0 {
		bad("sim.tickRate must be positive, got %d", c.Sim.TickRate)
	}
	if c.Sim.Duration <= 0 {
		bad("sim.duration must be positive, got %s", c.Sim.Duration)
	}
	if c.Sim.Width <= 0 || c.Sim.Height <= 0 {
		bad("sim field must have positive size, got %vx%v", c.Sim.Width, c.Sim.Height)
	}
	if c.Teams.Count < 2 || c.Teams.Count > MaxTeams {
		bad("teams.count must be between 2 and %d, got %d", MaxTeams, c.Teams.Count)
	}
	if c.Teams.Player < 0 || c.Teams.Player >= c.Teams.Count {
		bad("teams.player %d is not one of the %d teams", c.Teams.Player, c.Teams.Count)
	}
	if c.Teams.StartingMinerals < 0 {
		bad("teams.startingMinerals must not be negative, got %d", c.Teams.StartingMinerals)
	}
	if c.AI.ProductionInterval <= 0 || c.AI.StrategyInterval <= 0 {
		bad("ai intervals must be positive, got %s and %s", c.AI.ProductionInterval, c.AI.StrategyInterval)
	}
	return errors.Join(errs...)
}
