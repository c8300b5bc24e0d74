package rules

import "math"

// Doctrine represents a high-level posture for an AI team.
// Weights are 0.0–1.0; the compiler maps them to concrete rule parameters.
type Doctrine struct {
	Name            string  `json:"name" mapstructure:"name"`
	Rationale       string  `json:"rationale" mapstructure:"rationale"`
	EconomyPriority float64 `json:"economy_priority" mapstructure:"economyPriority"`
	Aggression      float64 `json:"aggression" mapstructure:"aggression"`
	VehicleWeight   float64 `json:"vehicle_weight" mapstructure:"vehicleWeight"`
	DefensePriority float64 `json:"defense_priority" mapstructure:"defensePriority"`
}

// DefaultDoctrine returns the baseline skirmish doctrine: vehicles above
// 200 minerals while infantry outnumber them 3:1, attack at 5 units, guard
// within 100 of home.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:            "Skirmish",
		Rationale:       "Default skirmish heuristics",
		EconomyPriority: 0.5,
		Aggression:      0.6,
		VehicleWeight:   0.5,
		DefensePriority: 0.5,
	}
}

// Validate clamps all weights to their valid ranges.
func (d *Doctrine) Validate() {
	d.EconomyPriority = clamp(d.EconomyPriority, 0, 1)
	d.Aggression = clamp(d.Aggression, 0, 1)
	d.VehicleWeight = clamp(d.VehicleWeight, 0, 1)
	d.DefensePriority = clamp(d.DefensePriority, 0, 1)
}

// HeavyMineralThreshold is the balance a team holds back before buying a
// heavy unit. Higher economy priority saves more.
func (d Doctrine) HeavyMineralThreshold() int {
	return lerp(100, 300, d.EconomyPriority)
}

// LightPerHeavy is how many light units must exist per heavy unit before
// another heavy unit is bought.
func (d Doctrine) LightPerHeavy() int {
	return lerp(5, 1, d.VehicleWeight)
}

// MinArmySize is the army size at which the strategy cycle attacks.
func (d Doctrine) MinArmySize() int {
	return lerp(8, 3, d.Aggression)
}

// GuardRadius is the half-width of the box idle units wander in around home.
func (d Doctrine) GuardRadius() float64 {
	return lerpf(50, 150, d.DefensePriority)
}

// lerp linearly interpolates between min and max by t (0–1), returning an int.
func lerp(min, max int, t float64) int {
	return min + int(math.Round(float64(max-min)*t))
}

// lerpf linearly interpolates between min and max by t (0–1), returning a float64.
func lerpf(min, max, t float64) float64 {
	return min + (max-min)*t
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
