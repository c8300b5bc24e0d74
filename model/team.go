package model

// TeamID identifies an owning side. Team identity is fixed when an entity is
// created and never changes.
type TeamID int

// NoTeam owns neutral entities such as mineral fields.
const NoTeam TeamID = -1

// Color is a team's display color, passed through to renderers untouched.
type Color string

const (
	Red    Color = "RED"
	Blue   Color = "BLUE"
	Green  Color = "GREEN"
	Yellow Color = "YELLOW"
	Gray   Color = "GRAY"
)

// TeamColors is the palette assigned to teams by id.
var TeamColors = []Color{Red, Blue, Green, Yellow}

// ColorFor returns the palette color for id, or Gray for neutral or
// out-of-palette ids.
func ColorFor(id TeamID) Color {
	if id < 0 || int(id) >= len(TeamColors) {
		return Gray
	}
	return TeamColors[id]
}

type Team struct {
	ID    TeamID `json:"id"`
	Color Color  `json:"color"`
	Human bool   `json:"human"`
}
