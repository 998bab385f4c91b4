package component

import "github.com/l1jgo/delve/internal/gamemap"

// Position is an entity's grid coordinate. Always in bounds of the active map.
type Position struct {
	X int
	Y int
}

func (p Position) Point() gamemap.Point { return gamemap.Point{X: p.X, Y: p.Y} }
