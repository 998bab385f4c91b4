package gamemap

// Tile is the state of one grid cell.
type Tile uint8

const (
	Wall Tile = iota
	Floor
)

func (t Tile) String() string {
	switch t {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	default:
		return "unknown"
	}
}

// Walkable reports whether an entity may stand on the tile.
func (t Tile) Walkable() bool { return t == Floor }

// Opaque reports whether the tile blocks line of sight.
func (t Tile) Opaque() bool { return t == Wall }

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

func (p Point) Add(dx, dy int) Point { return Point{X: p.X + dx, Y: p.Y + dy} }
