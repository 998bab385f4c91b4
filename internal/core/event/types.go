package event

import (
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/gamemap"
)

// EntityMoved is emitted after a successful one-tile step.
type EntityMoved struct {
	Entity ecs.EntityID
	From   gamemap.Point
	To     gamemap.Point
}

// MoveBlocked is emitted when a step ran into a wall.
type MoveBlocked struct {
	Entity ecs.EntityID
	At     gamemap.Point
	Target gamemap.Point
}

// ViewshedUpdated is emitted after a viewshed was recomputed.
type ViewshedUpdated struct {
	Entity  ecs.EntityID
	Visible int
}
