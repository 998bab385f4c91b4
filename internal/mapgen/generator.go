package mapgen

import (
	"fmt"

	"github.com/l1jgo/delve/internal/gamemap"
	"go.uber.org/zap"
)

// Layout selects the generation algorithm.
type Layout string

const (
	LayoutRooms   Layout = "rooms"
	LayoutScatter Layout = "scatter"
)

// Base selects the initial fill for the rooms layout.
type Base string

const (
	BaseRock Base = "rock" // solid wall, rooms and corridors are carved out
	BaseOpen Base = "open" // open floor inside a wall border
)

type Config struct {
	Width        int
	Height       int
	Layout       Layout
	Base         Base
	MaxRooms     int // placement attempts
	MinSize      int
	MaxSize      int
	Margin       int // minimum distance between a room and the grid edge
	ScatterWalls int
}

func DefaultConfig() Config {
	return Config{
		Width:        80,
		Height:       50,
		Layout:       LayoutRooms,
		Base:         BaseRock,
		MaxRooms:     30,
		MinSize:      6,
		MaxSize:      10,
		Margin:       1,
		ScatterWalls: 400,
	}
}

// Generator builds maps. Output is fully determined by the config and the
// sequence of values drawn from rng.
type Generator struct {
	cfg Config
	rng RNG
	log *zap.Logger
}

func New(cfg Config, rng RNG, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{cfg: cfg, rng: rng, log: log}
}

// Generate dispatches on the configured layout.
func (g *Generator) Generate() (*gamemap.Map, error) {
	switch g.cfg.Layout {
	case LayoutRooms, "":
		return g.RoomsAndCorridors(), nil
	case LayoutScatter:
		return g.Scatter(), nil
	default:
		return nil, fmt.Errorf("unknown map layout %q", g.cfg.Layout)
	}
}

// RoomsAndCorridors places up to MaxRooms non-intersecting rooms and joins each
// new room to the previous one with a horizontal-then-vertical corridor.
// Running out of attempts is not an error; the room list is just shorter.
func (g *Generator) RoomsAndCorridors() *gamemap.Map {
	fill := gamemap.Wall
	if g.cfg.Base == BaseOpen {
		fill = gamemap.Floor
	}
	m := gamemap.New(g.cfg.Width, g.cfg.Height, fill)
	m.WallBorder()

	for attempt := 0; attempt < g.cfg.MaxRooms; attempt++ {
		room, ok := g.sampleRoom()
		if !ok {
			continue
		}
		if intersectsAny(room, m.Rooms) {
			continue
		}

		m.CarveRoom(room)
		if n := len(m.Rooms); n > 0 {
			prev := m.Rooms[n-1].Center()
			cur := room.Center()
			m.CarveHorizontal(prev.X, cur.X, prev.Y)
			m.CarveVertical(prev.Y, cur.Y, cur.X)
		}
		m.Rooms = append(m.Rooms, room)
	}

	fields := []zap.Field{
		zap.Int("rooms", len(m.Rooms)),
		zap.Int("attempts", g.cfg.MaxRooms),
		zap.Int("floor", m.Count(gamemap.Floor)),
	}
	if len(m.Rooms) == 0 {
		g.log.Warn("map generation placed no rooms", fields...)
	} else {
		g.log.Debug("map generated", fields...)
	}
	return m
}

// sampleRoom draws a room size and top-left corner. It fails when the room
// cannot fit inside the margin.
func (g *Generator) sampleRoom() (gamemap.Rect, bool) {
	w := randRange(g.rng, g.cfg.MinSize, g.cfg.MaxSize)
	h := randRange(g.rng, g.cfg.MinSize, g.cfg.MaxSize)

	maxX := g.cfg.Width - w - 1 - g.cfg.Margin
	maxY := g.cfg.Height - h - 1 - g.cfg.Margin
	if maxX < g.cfg.Margin || maxY < g.cfg.Margin {
		return gamemap.Rect{}, false
	}
	x := randRange(g.rng, g.cfg.Margin, maxX)
	y := randRange(g.rng, g.cfg.Margin, maxY)
	return gamemap.NewRect(x, y, w, h), true
}

func intersectsAny(r gamemap.Rect, rooms []gamemap.Rect) bool {
	for _, other := range rooms {
		if r.Intersects(other) {
			return true
		}
	}
	return false
}
