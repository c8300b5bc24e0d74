package rules

import (
	"strings"
	"testing"
)

func TestCompileDoctrine_AllRulesCompile(t *testing.T) {
	doctrines := []Doctrine{
		DefaultDoctrine(),
		{Name: "zero"},
		{Name: "max", EconomyPriority: 1, Aggression: 1, VehicleWeight: 1, DefensePriority: 1},
		{Name: "out of range", EconomyPriority: 4, Aggression: -3},
	}
	for _, d := range doctrines {
		t.Run(d.Name, func(t *testing.T) {
			if _, err := NewEngine(CompileDoctrine(d)); err != nil {
				t.Fatalf("compile failed: %v", err)
			}
		})
	}
}

func TestCompileDoctrine_RuleSet(t *testing.T) {
	rules := DefaultRules()
	want := map[string]string{
		"produce-heavy":       "production",
		"produce-light":       "production",
		"attack-nearest-base": "orders",
		"acquire-targets":     "orders",
		"guard-base":          "orders",
	}
	if len(rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(rules), len(want))
	}
	for _, r := range rules {
		cat, ok := want[r.Name]
		if !ok {
			t.Errorf("unexpected rule %q", r.Name)
			continue
		}
		if r.Category != cat {
			t.Errorf("%s category = %q, want %q", r.Name, r.Category, cat)
		}
		if r.Action == nil {
			t.Errorf("%s has no action", r.Name)
		}
	}
}

func TestCompileDoctrine_InterpolatesWeights(t *testing.T) {
	d := DefaultDoctrine()
	d.EconomyPriority = 1
	d.Aggression = 0
	rules := CompileDoctrine(d)

	byName := make(map[string]*Rule)
	for _, r := range rules {
		byName[r.Name] = r
	}
	if src := byName["produce-heavy"].ConditionSrc; !strings.Contains(src, "Minerals() >= 300") {
		t.Errorf("produce-heavy condition missing threshold 300: %s", src)
	}
	if src := byName["attack-nearest-base"].ConditionSrc; !strings.Contains(src, "ArmySize() >= 8") {
		t.Errorf("attack-nearest-base condition missing army size 8: %s", src)
	}
}
