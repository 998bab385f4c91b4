package component

import (
	"slices"

	"github.com/l1jgo/delve/internal/gamemap"
)

// Viewshed is an entity's perception state. Visible is only meaningful while
// Dirty is false; anything that can change what the entity sees sets Dirty,
// and only the visibility pass clears it.
type Viewshed struct {
	Visible map[gamemap.Point]struct{}
	Range   int
	Dirty   bool
}

// NewViewshed returns an empty, dirty viewshed.
func NewViewshed(rangeTiles int) *Viewshed {
	return &Viewshed{
		Visible: make(map[gamemap.Point]struct{}),
		Range:   rangeTiles,
		Dirty:   true,
	}
}

func (v *Viewshed) CanSee(p gamemap.Point) bool {
	_, ok := v.Visible[p]
	return ok
}

func (v *Viewshed) Len() int { return len(v.Visible) }

// Tiles returns the visible set sorted row-major.
func (v *Viewshed) Tiles() []gamemap.Point {
	out := make([]gamemap.Point, 0, len(v.Visible))
	for p := range v.Visible {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b gamemap.Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}
