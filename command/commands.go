// Package command defines the orders players and AI controllers issue to
// the world. Both go through the same Issuer, so the AI has no back door.
package command

import (
	"errors"

	"github.com/nstehr/skirmish/model"
)

// Command type constants, used as the envelope discriminator.
const (
	TypeSelect  = "select"
	TypeMove    = "move"
	TypeAttack  = "attack"
	TypeMine    = "mine"
	TypeProduce = "produce"
)

var (
	ErrUnknownEntity  = errors.New("unknown entity")
	ErrNotOwned       = errors.New("entity not owned by team")
	ErrInvalidTarget  = errors.New("invalid target")
	ErrCannotHarvest  = errors.New("unit cannot harvest")
	ErrCannotProduce  = errors.New("building cannot produce that unit")
	ErrNotConstructed = errors.New("building not constructed")
	ErrUnknownCommand = errors.New("unknown command type")
)

// Command is any order accepted by an Issuer.
type Command interface {
	Type() string
}

// Issuer applies a command on behalf of a team.
type Issuer interface {
	Issue(team model.TeamID, cmd Command) error
}

// SelectCommand replaces the team's selection. If Rect is nil, Point picks
// the building or unit under it.
type SelectCommand struct {
	Rect  *model.Rect `json:"rect,omitempty"`
	Point *model.Vec2 `json:"point,omitempty"`
}

type MoveCommand struct {
	UnitIDs []model.EntityID `json:"unit_ids"`
	X       float64          `json:"x"`
	Y       float64          `json:"y"`
}

type AttackCommand struct {
	UnitIDs  []model.EntityID `json:"unit_ids"`
	TargetID model.EntityID   `json:"target_id"`
}

type MineCommand struct {
	UnitIDs []model.EntityID `json:"unit_ids"`
	NodeID  model.EntityID   `json:"node_id"`
}

type ProduceCommand struct {
	BuildingID model.EntityID `json:"building_id"`
	Unit       model.UnitType `json:"unit"`
}

func (SelectCommand) Type() string  { return TypeSelect }
func (MoveCommand) Type() string    { return TypeMove }
func (AttackCommand) Type() string  { return TypeAttack }
func (MineCommand) Type() string    { return TypeMine }
func (ProduceCommand) Type() string { return TypeProduce }
