package model

import "time"

// GameState is one team's view of the world at the end of a tick. It is a
// value copy: holding it does not keep entities alive and mutating it does
// not touch the world.
type GameState struct {
	Tick             int               `json:"tick"`
	Now              time.Duration     `json:"now"`
	Player           Player            `json:"player"`
	Buildings        []Building        `json:"buildings"`
	Units            []Unit            `json:"units"`
	ProductionQueues []ProductionQueue `json:"productionQueues"`
	// Enemies lists hostile units first, then hostile buildings.
	Enemies   []Enemy    `json:"enemies"`
	Resources []Resource `json:"resources"`
	MapWidth  float64    `json:"mapWidth"`
	MapHeight float64    `json:"mapHeight"`
}

type Player struct {
	Team     TeamID `json:"team"`
	Color    Color  `json:"color"`
	Minerals int    `json:"minerals"`
}

type Unit struct {
	ID           EntityID `json:"id"`
	Type         string   `json:"type"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	HP           float64  `json:"hp"`
	MaxHP        float64  `json:"maxHp"`
	Idle         bool     `json:"idle"`
	AttackTarget EntityID `json:"attackTarget,omitempty"`
	MineTarget   EntityID `json:"mineTarget,omitempty"`
}

func (u Unit) TypeName() string { return u.Type }
func (u Unit) Pos() Vec2        { return Vec2{X: u.X, Y: u.Y} }

type Building struct {
	ID          EntityID `json:"id"`
	Type        string   `json:"type"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	HP          float64  `json:"hp"`
	MaxHP       float64  `json:"maxHp"`
	Constructed bool     `json:"constructed"`
}

func (b Building) TypeName() string { return b.Type }
func (b Building) Pos() Vec2        { return Vec2{X: b.X, Y: b.Y} }

type ProductionQueue struct {
	Building        EntityID `json:"building"`
	Items           []string `json:"items"`
	Buildable       []string `json:"buildable"`
	CurrentItem     string   `json:"currentItem"`
	CurrentProgress int      `json:"currentProgress"` // percent of the head order
	Full            bool     `json:"full"`
}

type Enemy struct {
	ID    EntityID `json:"id"`
	Team  TeamID   `json:"team"`
	Kind  string   `json:"kind"` // "unit" or "building"
	Type  string   `json:"type"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	HP    float64  `json:"hp"`
	MaxHP float64  `json:"maxHp"`
}

func (e Enemy) TypeName() string { return e.Type }
func (e Enemy) Pos() Vec2        { return Vec2{X: e.X, Y: e.Y} }
func (e Enemy) IsBuilding() bool { return e.Kind == KindBuilding.String() }

type Resource struct {
	ID        EntityID `json:"id"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Remaining int      `json:"remaining"`
}

func (r Resource) Pos() Vec2 { return Vec2{X: r.X, Y: r.Y} }
