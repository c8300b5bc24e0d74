package agent

import (
	"testing"

	"github.com/nstehr/skirmish/model"
	"github.com/nstehr/skirmish/rules"
)

// baseGameState returns a team state with a command center, a barracks and
// an army of eight.
func baseGameState(tick int) model.GameState {
	gs := model.GameState{
		Tick:   tick,
		Player: model.Player{Team: 1, Minerals: 300},
		Buildings: []model.Building{
			{ID: 1, Type: rules.CommandCenter, HP: 1000, MaxHP: 1000, Constructed: true},
			{ID: 2, Type: rules.Barracks, HP: 400, MaxHP: 400, Constructed: true},
		},
	}
	for i := 0; i < 8; i++ {
		gs.Units = append(gs.Units, model.Unit{ID: model.EntityID(10 + i), Type: rules.LightUnit, Idle: true})
	}
	return gs
}

func hasKind(events []Event, k EventKind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func TestDetectEvents_NoEvents(t *testing.T) {
	gs := baseGameState(100)
	prev := takeSnapshot(gs)

	gs.Tick = 101
	events := detectEvents(gs, &prev)
	if len(events) != 0 {
		t.Errorf("expected 0 events, got %d: %+v", len(events), events)
	}
}

func TestDetectEvents_NilPrev(t *testing.T) {
	if events := detectEvents(baseGameState(100), nil); events != nil {
		t.Errorf("expected nil events for nil prev, got %+v", events)
	}
}

func TestDetectEvents_BuildingLost(t *testing.T) {
	tests := []struct {
		name   string
		remove int // index into Buildings
		want   EventKind
	}{
		{"command center", 0, EventCommandCenterLost},
		{"barracks", 1, EventBarracksLost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := baseGameState(100)
			prev := takeSnapshot(gs)

			gs.Tick = 101
			gs.Buildings = append(gs.Buildings[:tt.remove:tt.remove], gs.Buildings[tt.remove+1:]...)
			events := detectEvents(gs, &prev)
			if len(events) != 1 || events[0].Kind != tt.want {
				t.Errorf("expected one %s event, got %+v", tt.want, events)
			}
		})
	}
}

func TestDetectEvents_ArmyDevastated(t *testing.T) {
	gs := baseGameState(100)
	prev := takeSnapshot(gs)

	gs.Tick = 101
	gs.Units = gs.Units[:3] // 8 → 3
	if !hasKind(detectEvents(gs, &prev), EventArmyDevastated) {
		t.Error("expected army_devastated event")
	}
}

func TestDetectEvents_ArmyDevastated_HalfIsNotEnough(t *testing.T) {
	gs := baseGameState(100)
	prev := takeSnapshot(gs)

	gs.Tick = 101
	gs.Units = gs.Units[:4] // exactly half lost
	if hasKind(detectEvents(gs, &prev), EventArmyDevastated) {
		t.Error("losing exactly half should not fire")
	}
}

func TestDetectEvents_ArmyDevastated_SmallArmy(t *testing.T) {
	gs := baseGameState(100)
	gs.Units = gs.Units[:5]
	prev := takeSnapshot(gs)

	gs.Tick = 101
	gs.Units = gs.Units[:1]
	if hasKind(detectEvents(gs, &prev), EventArmyDevastated) {
		t.Error("armies below the floor should not fire")
	}
}

func TestDetectEvents_ArmyWipedOut(t *testing.T) {
	gs := baseGameState(100)
	prev := takeSnapshot(gs)

	gs.Tick = 101
	gs.Units = nil
	if hasKind(detectEvents(gs, &prev), EventArmyDevastated) {
		t.Error("a wiped out army has nothing left to re-task")
	}
}

func TestDetectEvents_FirstContact(t *testing.T) {
	gs := baseGameState(100)
	prev := takeSnapshot(gs)

	gs.Tick = 101
	gs.Enemies = []model.Enemy{{ID: 99, Kind: "unit", Type: rules.LightUnit}}
	events := detectEvents(gs, &prev)
	if !hasKind(events, EventFirstContact) {
		t.Fatalf("expected first_contact, got %+v", events)
	}

	prev = takeSnapshot(gs)
	gs.Tick = 102
	if hasKind(detectEvents(gs, &prev), EventFirstContact) {
		t.Error("first_contact should not repeat while enemies stay visible")
	}
}

func TestFormatEvents(t *testing.T) {
	if got := formatEvents(nil); got != "" {
		t.Errorf("formatEvents(nil) = %q, want empty", got)
	}
	got := formatEvents([]Event{{Kind: EventFirstContact, Tick: 7, Detail: "First contact: 1 enemies now visible"}})
	want := "Recent Events:\n- [tick 7] first_contact: First contact: 1 enemies now visible\n"
	if got != want {
		t.Errorf("formatEvents = %q, want %q", got, want)
	}
}
