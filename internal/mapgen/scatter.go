package mapgen

import (
	"github.com/l1jgo/delve/internal/gamemap"
	"go.uber.org/zap"
)

// Scatter builds an open arena: floor inside a wall border with ScatterWalls
// randomly placed interior walls. The centre tile is never walled, and the
// whole grid is recorded as a single room so the spawn lands on it.
func (g *Generator) Scatter() *gamemap.Map {
	m := gamemap.New(g.cfg.Width, g.cfg.Height, gamemap.Floor)
	m.WallBorder()

	room := gamemap.NewRect(0, 0, g.cfg.Width, g.cfg.Height)
	spawn := room.Center()

	placed := 0
	if g.cfg.Width > 2 && g.cfg.Height > 2 {
		for i := 0; i < g.cfg.ScatterWalls; i++ {
			x := randRange(g.rng, 1, g.cfg.Width-1)
			y := randRange(g.rng, 1, g.cfg.Height-1)
			if x == spawn.X && y == spawn.Y {
				continue
			}
			if m.Set(x, y, gamemap.Wall) {
				placed++
			}
		}
	}
	m.Rooms = append(m.Rooms, room)

	g.log.Debug("scatter map generated",
		zap.Int("walls", placed),
		zap.Int("floor", m.Count(gamemap.Floor)),
	)
	return m
}
