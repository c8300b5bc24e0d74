// Package production implements building production queues and spawn
// placement.
package production

import (
	"errors"
	"fmt"
	"time"

	"github.com/nstehr/skirmish/model"
)

// DefaultCapacity is the number of orders a barracks can hold.
const DefaultCapacity = 5

var (
	ErrQueueFull            = errors.New("production queue full")
	ErrInsufficientMinerals = errors.New("insufficient minerals")
)

// Spender debits a team's balance, reporting false when it cannot.
type Spender interface {
	Spend(team model.TeamID, amount int) bool
}

// Order is one queued unit. Cost is kept so a failed spawn can be refunded.
type Order struct {
	Unit      model.UnitType `json:"unit"`
	Remaining time.Duration  `json:"remaining"`
	Total     time.Duration  `json:"total"`
	Cost      int            `json:"cost"`
}

// Queue is a bounded FIFO. Only the head order makes progress.
type Queue struct {
	capacity int
	orders   []Order
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{capacity: capacity}
}

// Enqueue pays for and appends an order for unit type t. Nothing is
// mutated on failure: a full queue is rejected before the team is charged.
func (q *Queue) Enqueue(team model.TeamID, t model.UnitType, wallet Spender) (Order, error) {
	stats, ok := model.UnitStatsFor(t)
	if !ok {
		return Order{}, fmt.Errorf("enqueue %q: %w", t, model.ErrUnknownType)
	}
	if q.Full() {
		return Order{}, ErrQueueFull
	}
	if !wallet.Spend(team, stats.Cost) {
		return Order{}, fmt.Errorf("enqueue %s costing %d: %w", t, stats.Cost, ErrInsufficientMinerals)
	}
	o := Order{Unit: t, Remaining: stats.BuildTime, Total: stats.BuildTime, Cost: stats.Cost}
	q.orders = append(q.orders, o)
	return o, nil
}

// Advance counts the head order down by dt and pops it once it reaches
// zero. At most one order completes per call.
func (q *Queue) Advance(dt time.Duration) (Order, bool) {
	if len(q.orders) == 0 {
		return Order{}, false
	}
	q.orders[0].Remaining -= dt
	if q.orders[0].Remaining > 0 {
		return Order{}, false
	}
	done := q.orders[0]
	q.orders = q.orders[1:]
	return done, true
}

func (q *Queue) Len() int      { return len(q.orders) }
func (q *Queue) Capacity() int { return q.capacity }
func (q *Queue) Full() bool    { return len(q.orders) >= q.capacity }

// Head returns the order currently in production.
func (q *Queue) Head() (Order, bool) {
	if len(q.orders) == 0 {
		return Order{}, false
	}
	return q.orders[0], true
}

// Progress is the head order's completion in [0,1], zero when idle.
func (q *Queue) Progress() float64 {
	h, ok := q.Head()
	if !ok || h.Total <= 0 {
		return 0
	}
	return 1 - float64(max(h.Remaining, 0))/float64(h.Total)
}

// Orders returns a copy of the queued orders, head first.
func (q *Queue) Orders() []Order {
	out := make([]Order, len(q.orders))
	copy(out, q.orders)
	return out
}
