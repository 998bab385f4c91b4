package gamemap

// Rect is an axis-aligned room rectangle with X1 < X2 and Y1 < Y2.
// The outermost ring of a room is its wall; the interior is carved.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// NewRect builds a rect from a top-left corner and a size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Intersects is true when the closed intervals overlap on both axes, so rooms
// that merely share an edge also intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 <= o.X2 && r.X2 >= o.X1 && r.Y1 <= o.Y2 && r.Y2 >= o.Y1
}

// Contains reports whether p lies inside the closed rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Interior reports whether p lies strictly inside the wall ring.
func (r Rect) Interior(p Point) bool {
	return p.X > r.X1 && p.X < r.X2 && p.Y > r.Y1 && p.Y < r.Y2
}
