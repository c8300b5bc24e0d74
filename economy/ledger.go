// Package economy tracks per-team mineral balances.
package economy

import (
	"log/slog"

	"github.com/nstehr/skirmish/model"
)

// Ledger holds every team's mineral balance. It is owned by the world and
// mutated only from the tick goroutine, so each call is a single atomic
// step with respect to the simulation.
type Ledger struct {
	balances map[model.TeamID]int
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[model.TeamID]int)}
}

// Balance returns the team's minerals; unknown teams have zero.
func (l *Ledger) Balance(team model.TeamID) int {
	return l.balances[team]
}

// CanSpend reports whether the team holds at least amount. Negative amounts
// are never affordable.
func (l *Ledger) CanSpend(team model.TeamID, amount int) bool {
	return amount >= 0 && l.balances[team] >= amount
}

// Spend debits amount only if the team can afford it. Zero always succeeds
// and leaves the balance unchanged.
func (l *Ledger) Spend(team model.TeamID, amount int) bool {
	if !l.CanSpend(team, amount) {
		return false
	}
	l.balances[team] -= amount
	return true
}

// Add credits amount. There is no upper bound; non-positive amounts are
// ignored.
func (l *Ledger) Add(team model.TeamID, amount int) {
	if amount <= 0 {
		slog.Debug("ignoring non-positive mineral credit", "team", team, "amount", amount)
		return
	}
	l.balances[team] += amount
}

// Open creates a team's entry with a starting balance, replacing any
// previous balance.
func (l *Ledger) Open(team model.TeamID, starting int) {
	if starting < 0 {
		starting = 0
	}
	l.balances[team] = starting
}
