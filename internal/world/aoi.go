package world

import (
	"slices"

	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/gamemap"
)

// AOIGrid buckets positioned entities into square cells so range queries
// only touch the cells overlapping the range.
// Accessed only from the game loop goroutine, no locks.
type AOIGrid struct {
	cellSize int
	cells    map[cellKey]map[ecs.EntityID]struct{}
}

type cellKey struct {
	cx int
	cy int
}

func NewAOIGrid(cellSize int) *AOIGrid {
	if cellSize < 1 {
		cellSize = 1
	}
	return &AOIGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey]map[ecs.EntityID]struct{}),
	}
}

func (g *AOIGrid) toCell(v int) int {
	if v < 0 {
		return (v - g.cellSize + 1) / g.cellSize
	}
	return v / g.cellSize
}

func (g *AOIGrid) key(p gamemap.Point) cellKey {
	return cellKey{cx: g.toCell(p.X), cy: g.toCell(p.Y)}
}

// Add places an entity into the grid.
func (g *AOIGrid) Add(id ecs.EntityID, p gamemap.Point) {
	k := g.key(p)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[ecs.EntityID]struct{})
		g.cells[k] = cell
	}
	cell[id] = struct{}{}
}

// Remove takes an entity out of the grid.
func (g *AOIGrid) Remove(id ecs.EntityID, p gamemap.Point) {
	k := g.key(p)
	cell := g.cells[k]
	if cell != nil {
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
}

// Move updates an entity's cell when its position changes.
func (g *AOIGrid) Move(id ecs.EntityID, from, to gamemap.Point) {
	if g.key(from) == g.key(to) {
		return
	}
	g.Remove(id, from)
	g.Add(id, to)
}

// Nearby returns the entities in every cell overlapping the square of the
// given radius around p, sorted by id. Callers do the fine distance check.
func (g *AOIGrid) Nearby(p gamemap.Point, radius int) []ecs.EntityID {
	if radius < 0 {
		radius = 0
	}
	lo := g.key(p.Add(-radius, -radius))
	hi := g.key(p.Add(radius, radius))

	var result []ecs.EntityID
	for cy := lo.cy; cy <= hi.cy; cy++ {
		for cx := lo.cx; cx <= hi.cx; cx++ {
			for id := range g.cells[cellKey{cx: cx, cy: cy}] {
				result = append(result, id)
			}
		}
	}
	slices.Sort(result)
	return result
}

// Len returns the number of tracked entities.
func (g *AOIGrid) Len() int {
	n := 0
	for _, cell := range g.cells {
		n += len(cell)
	}
	return n
}
