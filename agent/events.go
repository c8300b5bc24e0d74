package agent

import (
	"fmt"
	"strings"

	"github.com/nstehr/skirmish/model"
	"github.com/nstehr/skirmish/rules"
)

// EventKind identifies a significant change in a team's situation that
// should trigger an early strategy cycle.
type EventKind string

const (
	EventCommandCenterLost EventKind = "command_center_lost"
	EventBarracksLost      EventKind = "barracks_lost"
	EventArmyDevastated    EventKind = "army_devastated"
	EventFirstContact      EventKind = "first_contact"
)

// Event is detected by diffing consecutive team states.
type Event struct {
	Kind   EventKind
	Tick   int
	Detail string
}

// devastationFloor is the smallest army whose collapse is reported.
const devastationFloor = 6

// stateSnapshot captures the diffable fields from a team state.
type stateSnapshot struct {
	buildingIDs map[model.EntityID]string // id → type for owned buildings
	armySize    int
	enemiesSeen bool
}

var lostKinds = map[string]EventKind{
	rules.CommandCenter: EventCommandCenterLost,
	rules.Barracks:      EventBarracksLost,
}

func takeSnapshot(gs model.GameState) stateSnapshot {
	snap := stateSnapshot{
		buildingIDs: make(map[model.EntityID]string, len(gs.Buildings)),
		armySize:    len(gs.Units),
		enemiesSeen: len(gs.Enemies) > 0,
	}
	for _, b := range gs.Buildings {
		snap.buildingIDs[b.ID] = b.Type
	}
	return snap
}

// detectEvents compares gs against the previous snapshot. Returns nil if
// prev is nil (first tick).
func detectEvents(gs model.GameState, prev *stateSnapshot) []Event {
	if prev == nil {
		return nil
	}

	var events []Event
	cur := takeSnapshot(gs)

	for id, typ := range prev.buildingIDs {
		kind, ok := lostKinds[strings.ToLower(typ)]
		if !ok {
			continue
		}
		if _, exists := cur.buildingIDs[id]; !exists {
			events = append(events, Event{
				Kind:   kind,
				Tick:   gs.Tick,
				Detail: fmt.Sprintf("Lost %s (id %d)", typ, id),
			})
		}
	}

	// More than half the army lost since the last tick.
	if prev.armySize >= devastationFloor && cur.armySize > 0 {
		lost := prev.armySize - cur.armySize
		if lost > 0 && float64(lost)/float64(prev.armySize) > 0.5 {
			events = append(events, Event{
				Kind:   EventArmyDevastated,
				Tick:   gs.Tick,
				Detail: fmt.Sprintf("Army devastated: %d→%d units (lost %d%%)", prev.armySize, cur.armySize, 100*lost/prev.armySize),
			})
		}
	}

	if !prev.enemiesSeen && cur.enemiesSeen {
		events = append(events, Event{
			Kind:   EventFirstContact,
			Tick:   gs.Tick,
			Detail: fmt.Sprintf("First contact: %d enemies now visible", len(gs.Enemies)),
		})
	}

	return events
}

// formatEvents renders events as a "Recent Events" section.
func formatEvents(events []Event) string {
	if len(events) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Recent Events:\n")
	for _, e := range events {
		fmt.Fprintf(&b, "- [tick %d] %s: %s\n", e.Tick, e.Kind, e.Detail)
	}
	return b.String()
}
