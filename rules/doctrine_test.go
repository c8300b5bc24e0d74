package rules

import "testing"

func TestLerp(t *testing.T) {
	tests := []struct {
		min, max int
		t        float64
		want     int
	}{
		{0, 100, 0.0, 0},
		{0, 100, 1.0, 100},
		{0, 100, 0.5, 50},
		{100, 300, 0.5, 200},
		{5, 1, 0.5, 3},
		{8, 3, 0.6, 5},
		{8, 3, 0.0, 8},
	}
	for _, tt := range tests {
		got := lerp(tt.min, tt.max, tt.t)
		if got != tt.want {
			t.Errorf("lerp(%d, %d, %.2f) = %d, want %d", tt.min, tt.max, tt.t, got, tt.want)
		}
	}
}

func TestLerpf(t *testing.T) {
	if got := lerpf(50, 150, 0.25); got != 75 {
		t.Errorf("lerpf(50, 150, 0.25) = %v, want 75", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.1, 0, 1, 0},
		{1.5, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestDefaultDoctrineParameters(t *testing.T) {
	d := DefaultDoctrine()
	if got := d.HeavyMineralThreshold(); got != 200 {
		t.Errorf("HeavyMineralThreshold = %d, want 200", got)
	}
	if got := d.LightPerHeavy(); got != 3 {
		t.Errorf("LightPerHeavy = %d, want 3", got)
	}
	if got := d.MinArmySize(); got != 5 {
		t.Errorf("MinArmySize = %d, want 5", got)
	}
	if got := d.GuardRadius(); got != 100 {
		t.Errorf("GuardRadius = %v, want 100", got)
	}
}

func TestDoctrineValidate(t *testing.T) {
	d := Doctrine{
		EconomyPriority: 1.5,
		Aggression:      -0.5,
		VehicleWeight:   0.3,
		DefensePriority: 2.0,
	}
	d.Validate()

	if d.EconomyPriority != 1.0 {
		t.Errorf("EconomyPriority = %v, want 1.0", d.EconomyPriority)
	}
	if d.Aggression != 0.0 {
		t.Errorf("Aggression = %v, want 0.0", d.Aggression)
	}
	if d.VehicleWeight != 0.3 {
		t.Errorf("VehicleWeight = %v, want 0.3", d.VehicleWeight)
	}
	if d.DefensePriority != 1.0 {
		t.Errorf("DefensePriority = %v, want 1.0", d.DefensePriority)
	}
}
