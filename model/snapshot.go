package model

// Snapshot is the read surface handed to renderers after a tick. Fractions
// are in [0,1] so the renderer never needs the stat tables.
type Snapshot struct {
	Tick     int          `json:"tick"`
	Entities []EntityView `json:"entities"`
	Teams    []TeamView   `json:"teams"`
	Field    Field        `json:"field"`
}

type EntityView struct {
	ID       EntityID `json:"id"`
	Kind     string   `json:"kind"`
	Type     string   `json:"type"`
	Pos      Vec2     `json:"pos"`
	Size     Size     `json:"size"`
	Team     TeamID   `json:"team"`
	Color    Color    `json:"color"`
	Health   float64  `json:"health"`
	Progress float64  `json:"progress"`
	Selected bool     `json:"selected"`
	Minerals int      `json:"minerals,omitempty"`
}

type TeamView struct {
	ID       TeamID `json:"id"`
	Color    Color  `json:"color"`
	Minerals int    `json:"minerals"`
	Units    int    `json:"units"`
}

// ViewOf copies the render-facing fields of e. Progress is left for the
// caller, which knows about production queues.
func ViewOf(e *Entity) EntityView {
	v := EntityView{
		ID:       e.ID(),
		Kind:     e.Kind().String(),
		Type:     e.TypeName(),
		Pos:      e.Pos,
		Size:     e.Size,
		Team:     e.Team(),
		Color:    ColorFor(e.Team()),
		Health:   e.HealthFraction(),
		Selected: e.Selected,
	}
	if e.Resource != nil {
		v.Minerals = e.Resource.Remaining()
	}
	if e.Building != nil && !e.Building.Constructed() {
		v.Progress = e.Building.ConstructionFraction()
	}
	return v
}
