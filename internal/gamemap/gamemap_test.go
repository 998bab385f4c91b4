package gamemap

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestGridIndexRoundTrip(t *testing.T) {
	g := NewGrid(80, 50, Floor)
	testutil.AssertEqual(t, "tile count", len(g.Tiles), 80*50)

	seen := make(map[int]bool, len(g.Tiles))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := g.Index(x, y)
			if idx < 0 || idx >= len(g.Tiles) {
				t.Fatalf("index(%d,%d)=%d out of range", x, y, idx)
			}
			if seen[idx] {
				t.Fatalf("index(%d,%d)=%d not unique", x, y, idx)
			}
			seen[idx] = true

			rx, ry := g.XY(idx)
			if rx != x || ry != y {
				t.Fatalf("XY(%d) = (%d,%d), want (%d,%d)", idx, rx, ry, x, y)
			}
		}
	}
	testutil.AssertEqual(t, "every index covered", len(seen), len(g.Tiles))
}

func TestGridBounds(t *testing.T) {
	tests := map[string]struct {
		x, y   int
		expIn  bool
		expIdx int
	}{
		"origin":      {x: 0, y: 0, expIn: true, expIdx: 0},
		"last":        {x: 9, y: 4, expIn: true, expIdx: 49},
		"negative x":  {x: -1, y: 0, expIn: false, expIdx: -1},
		"negative y":  {x: 0, y: -1, expIn: false, expIdx: -1},
		"x past edge": {x: 10, y: 0, expIn: false, expIdx: -1},
		"y past edge": {x: 0, y: 5, expIn: false, expIdx: -1},
	}

	g := NewGrid(10, 5, Floor)
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			idx, ok := g.IndexOf(tt.x, tt.y)
			testutil.AssertEqual(t, "in bounds", ok, tt.expIn)
			testutil.AssertEqual(t, "index", idx, tt.expIdx)
			if !tt.expIn {
				testutil.AssertEqual(t, "oob reads as wall", g.At(tt.x, tt.y), Wall)
				testutil.AssertEqual(t, "oob write dropped", g.Set(tt.x, tt.y, Floor), false)
			}
		})
	}
}

func TestGridClampAndBorder(t *testing.T) {
	g := NewGrid(6, 4, Floor)
	g.WallBorder()

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			exp := Floor
			if g.OnBorder(x, y) {
				exp = Wall
			}
			testutil.AssertEqual(t, "tile", g.At(x, y), exp)
		}
	}

	x, y := g.Clamp(-3, 10)
	testutil.AssertEqual(t, "clamp x", x, 0)
	testutil.AssertEqual(t, "clamp y", y, 3)
	testutil.AssertEqual(t, "floor count", g.Count(Floor), 4*2)
}

func TestRect(t *testing.T) {
	r := NewRect(10, 10, 10, 5)
	testutil.AssertEqual(t, "rect", r, Rect{X1: 10, Y1: 10, X2: 20, Y2: 15})
	testutil.AssertEqual(t, "center", r.Center(), Point{X: 15, Y: 12})

	tests := map[string]struct {
		other Rect
		exp   bool
	}{
		"overlapping":     {other: NewRect(15, 12, 10, 10), exp: true},
		"sharing edge":    {other: NewRect(20, 10, 4, 4), exp: true},
		"touching corner": {other: NewRect(20, 15, 3, 3), exp: true},
		"disjoint x":      {other: NewRect(21, 10, 4, 4), exp: false},
		"disjoint y":      {other: NewRect(10, 16, 4, 4), exp: false},
		"far away":        {other: NewRect(40, 30, 5, 5), exp: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "r intersects o", r.Intersects(tt.other), tt.exp)
			testutil.AssertEqual(t, "o intersects r", tt.other.Intersects(r), tt.exp)
		})
	}

	testutil.AssertEqual(t, "wall ring in rect", r.Contains(Point{X: 10, Y: 12}), true)
	testutil.AssertEqual(t, "wall ring not interior", r.Interior(Point{X: 10, Y: 12}), false)
	testutil.AssertEqual(t, "interior", r.Interior(Point{X: 11, Y: 11}), true)
}

func TestMapCarving(t *testing.T) {
	m := New(30, 20, Wall)
	room := NewRect(2, 2, 6, 4)
	m.CarveRoom(room)

	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			exp := Wall
			if room.Interior(Point{X: x, Y: y}) {
				exp = Floor
			}
			testutil.AssertEqual(t, "room tile", m.At(x, y), exp)
		}
	}

	// corridors are clipped at the border
	m.CarveHorizontal(-5, 40, 10)
	testutil.AssertEqual(t, "left border kept", m.At(0, 10), Wall)
	testutil.AssertEqual(t, "right border kept", m.At(29, 10), Wall)
	testutil.AssertEqual(t, "row opened", m.At(1, 10), Floor)
	testutil.AssertEqual(t, "row opened far", m.At(28, 10), Floor)

	m.CarveVertical(15, 0, 5)
	testutil.AssertEqual(t, "top border kept", m.At(5, 0), Wall)
	testutil.AssertEqual(t, "column opened", m.At(5, 1), Floor)
	testutil.AssertEqual(t, "column end", m.At(5, 15), Floor)
	testutil.AssertEqual(t, "column past end", m.At(5, 16), Wall)
}

func TestMapStart(t *testing.T) {
	m := New(10, 10, Wall)
	_, err := m.Start()
	testutil.AssertEqual(t, "no rooms", errors.Is(err, ErrNoRooms), true)

	m.Rooms = append(m.Rooms, NewRect(1, 1, 4, 4), NewRect(5, 5, 3, 3))
	p, err := m.Start()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "first room centre", p, Point{X: 3, Y: 3})
}
