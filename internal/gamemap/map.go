package gamemap

import "errors"

// ErrNoRooms is returned by Map.Start when generation placed no rooms.
var ErrNoRooms = errors.New("map has no rooms")

// Map is a tile grid plus its rooms in generation order. It is written by the
// generator and treated as read-only once gameplay starts.
type Map struct {
	*Grid
	Rooms []Rect
}

func New(width, height int, fill Tile) *Map {
	return &Map{Grid: NewGrid(width, height, fill)}
}

// Start returns the spawn point: the centre of the first room.
func (m *Map) Start() (Point, error) {
	if len(m.Rooms) == 0 {
		return Point{}, ErrNoRooms
	}
	return m.Rooms[0].Center(), nil
}

// CarveRoom opens the interior of r, leaving its outer ring untouched.
func (m *Map) CarveRoom(r Rect) {
	for y := r.Y1 + 1; y < r.Y2; y++ {
		for x := r.X1 + 1; x < r.X2; x++ {
			m.carve(x, y)
		}
	}
}

// CarveHorizontal opens row y between x1 and x2 inclusive.
func (m *Map) CarveHorizontal(x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		m.carve(x, y)
	}
}

// CarveVertical opens column x between y1 and y2 inclusive.
func (m *Map) CarveVertical(y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		m.carve(x, y)
	}
}

// carve opens a tile unless it sits on or outside the outer border.
func (m *Map) carve(x, y int) {
	if !m.InBounds(x, y) || m.OnBorder(x, y) {
		return
	}
	m.Tiles[m.Index(x, y)] = Floor
}
