package rules

import (
	"strings"

	"github.com/nstehr/skirmish/model"
)

// typed is a generic constraint for any model type with a TypeName accessor.
type typed interface {
	TypeName() string
}

// containsType returns true if any item's TypeName matches t (case-insensitive).
func containsType[T typed](items []T, t string) bool {
	for _, item := range items {
		if strings.EqualFold(item.TypeName(), t) {
			return true
		}
	}
	return false
}

// countType counts items whose TypeName matches t (case-insensitive).
func countType[T typed](items []T, t string) int {
	n := 0
	for _, item := range items {
		if strings.EqualFold(item.TypeName(), t) {
			n++
		}
	}
	return n
}

// Unit roles the heuristics reason about.
const (
	LightUnit = string(model.Infantry)
	HeavyUnit = string(model.Vehicle)
)

// Building roles.
const (
	CommandCenter = string(model.CommandCenter)
	Barracks      = string(model.Barracks)
)
