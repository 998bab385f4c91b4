package gamemap

// Grid is a flat row-major array of tiles: index = y*Width + x.
// len(Tiles) == Width*Height at all times.
type Grid struct {
	Width  int
	Height int
	Tiles  []Tile
}

// NewGrid returns a width x height grid with every tile set to fill.
func NewGrid(width, height int, fill Tile) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
	if fill != Wall {
		g.Fill(fill)
	}
	return g
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Index returns y*Width + x without checking bounds. Use IndexOf for
// coordinates that have not been validated.
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// IndexOf returns the tile index of (x, y), or -1 and false when out of bounds.
func (g *Grid) IndexOf(x, y int) (int, bool) {
	if !g.InBounds(x, y) {
		return -1, false
	}
	return g.Index(x, y), true
}

// XY is the inverse of Index.
func (g *Grid) XY(idx int) (int, int) {
	return idx % g.Width, idx / g.Width
}

// At returns the tile at (x, y). Out-of-bounds reads see Wall.
func (g *Grid) At(x, y int) Tile {
	idx, ok := g.IndexOf(x, y)
	if !ok {
		return Wall
	}
	return g.Tiles[idx]
}

// Set writes a tile. Out-of-bounds writes are dropped and report false.
func (g *Grid) Set(x, y int, t Tile) bool {
	idx, ok := g.IndexOf(x, y)
	if !ok {
		return false
	}
	g.Tiles[idx] = t
	return true
}

func (g *Grid) Fill(t Tile) {
	for i := range g.Tiles {
		g.Tiles[i] = t
	}
}

// WallBorder sets every edge tile to Wall.
func (g *Grid) WallBorder() {
	for x := 0; x < g.Width; x++ {
		g.Set(x, 0, Wall)
		g.Set(x, g.Height-1, Wall)
	}
	for y := 0; y < g.Height; y++ {
		g.Set(0, y, Wall)
		g.Set(g.Width-1, y, Wall)
	}
}

// OnBorder reports whether (x, y) lies on the outer edge.
func (g *Grid) OnBorder(x, y int) bool {
	return x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1
}

func (g *Grid) IsWalkable(x, y int) bool { return g.At(x, y).Walkable() }

// IsOpaque reports whether (x, y) blocks sight. Out of bounds is opaque.
func (g *Grid) IsOpaque(x, y int) bool { return g.At(x, y).Opaque() }

// Clamp limits (x, y) to the grid.
func (g *Grid) Clamp(x, y int) (int, int) {
	return clamp(x, 0, g.Width-1), clamp(y, 0, g.Height-1)
}

// Count returns how many tiles equal t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, v := range g.Tiles {
		if v == t {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
