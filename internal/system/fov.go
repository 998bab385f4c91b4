package system

import "github.com/l1jgo/delve/internal/gamemap"

// octants maps (depth, col) inside one octant to world offsets:
// x = cx + depth*m[0] + col*m[1], y = cy + depth*m[2] + col*m[3].
// col runs from 0 to depth, so each octant covers slopes col/depth in [0, 1].
var octants = [8][4]int{
	{1, 0, 0, 1},
	{1, 0, 0, -1},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{0, 1, -1, 0},
	{0, -1, -1, 0},
}

// ComputeFOV returns the tiles visible from origin within radius using
// shadowcasting. Range is Euclidean: dx*dx+dy*dy <= radius*radius.
//
// Every opaque tile shadows the full slope interval of its square, so two
// walls touching at a corner leave no gap. A tile is visible when some ray
// from the origin centre reaches it without crossing an opaque square first.
// Opaque tiles are visible themselves but hide what lies behind them. The
// origin is always visible; an out-of-bounds origin sees nothing.
func ComputeFOV(g *gamemap.Grid, origin gamemap.Point, radius int) map[gamemap.Point]struct{} {
	visible := make(map[gamemap.Point]struct{})
	if !g.InBounds(origin.X, origin.Y) {
		return visible
	}
	visible[origin] = struct{}{}
	if radius <= 0 {
		return visible
	}

	for _, m := range octants {
		scanOctant(g, origin, radius, m, visible)
	}
	return visible
}

// scanOctant walks rows outward. Shadows cast in a row apply to later rows
// and to higher columns of the same row, which rays reach after the caster.
func scanOctant(g *gamemap.Grid, origin gamemap.Point, radius int, m [4]int, visible map[gamemap.Point]struct{}) {
	var shade shadows
	radiusSq := radius * radius

	for depth := 1; depth <= radius; depth++ {
		for col := 0; col <= depth; col++ {
			x := origin.X + depth*m[0] + col*m[1]
			y := origin.Y + depth*m[2] + col*m[3]
			lo, hi := tileSlopes(depth, col)

			if !shade.covers(lo, hi) && depth*depth+col*col <= radiusSq && g.InBounds(x, y) {
				visible[gamemap.Point{X: x, Y: y}] = struct{}{}
			}
			if g.IsOpaque(x, y) {
				shade.add(lo, hi)
			}
		}
		if shade.covers(0, 1) {
			return
		}
	}
}

// tileSlopes is the slope interval a tile's square subtends, clipped to the
// octant: from its far low corner to its near high corner.
func tileSlopes(depth, col int) (float64, float64) {
	d, c := float64(depth), float64(col)
	lo := (c - 0.5) / (d + 0.5)
	hi := (c + 0.5) / (d - 0.5)
	return max(lo, 0), min(hi, 1)
}

type span struct{ lo, hi float64 }

// shadows is a sorted list of disjoint closed slope intervals.
type shadows []span

func (s shadows) covers(lo, hi float64) bool {
	for _, sp := range s {
		if sp.lo <= lo && hi <= sp.hi {
			return true
		}
	}
	return false
}

// add merges [lo, hi] in, joining any span it overlaps or touches.
func (s *shadows) add(lo, hi float64) {
	merged := span{lo, hi}
	out := (*s)[:0:0]
	placed := false
	for _, sp := range *s {
		switch {
		case sp.hi < merged.lo:
			out = append(out, sp)
		case merged.hi < sp.lo:
			if !placed {
				out = append(out, merged)
				placed = true
			}
			out = append(out, sp)
		default:
			merged.lo = min(merged.lo, sp.lo)
			merged.hi = max(merged.hi, sp.hi)
		}
	}
	if !placed {
		out = append(out, merged)
	}
	*s = out
}
