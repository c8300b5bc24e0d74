package agent

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nstehr/skirmish/model"
	"github.com/nstehr/skirmish/rules"
	"github.com/nstehr/skirmish/world"
)

// Report renders a human-readable summary of the agent's team and the
// events it has reacted to.
func (a *Agent) Report(w *world.World) string {
	return summarize(w.TeamState(a.Team), a.Engine.Memory) + formatEvents(a.events)
}

// summarize produces a text summary of a team state.
func summarize(gs model.GameState, memory map[string]any) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Team %d (%s) | Tick: %d | Time: %s\n", gs.Player.Team, gs.Player.Color, gs.Tick, gs.Now)
	fmt.Fprintf(&b, "Minerals: %d\n", gs.Player.Minerals)

	fmt.Fprintf(&b, "Buildings:%s\n", counts(gs.Buildings))

	idle := 0
	for _, u := range gs.Units {
		if u.Idle {
			idle++
		}
	}
	fmt.Fprintf(&b, "Units:%s (%d idle)\n", counts(gs.Units), idle)

	for _, pq := range gs.ProductionQueues {
		if pq.CurrentItem != "" {
			fmt.Fprintf(&b, "Queue %d: producing %s (%d%%), %d queued\n", pq.Building, pq.CurrentItem, pq.CurrentProgress, len(pq.Items))
		}
	}

	fmt.Fprintf(&b, "Enemies visible: %d\n", len(gs.Enemies))
	if target, ok := memory[rules.MemoryStrategyTarget].(model.EntityID); ok {
		fmt.Fprintf(&b, "Strategy target: %d\n", target)
	}
	return b.String()
}

// counts renders " 2x infantry 1x vehicle" in type order, or " none".
func counts[T interface{ TypeName() string }](items []T) string {
	byType := make(map[string]int)
	for _, it := range items {
		byType[it.TypeName()]++
	}
	if len(byType) == 0 {
		return " none"
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	slices.Sort(types)
	var b strings.Builder
	for _, t := range types {
		fmt.Fprintf(&b, " %dx %s", byType[t], t)
	}
	return b.String()
}
