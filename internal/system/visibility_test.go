package system

import (
	"maps"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/core/event"
	"github.com/l1jgo/delve/internal/gamemap"
	"github.com/l1jgo/delve/internal/mapgen"
	"github.com/l1jgo/delve/internal/world"
	"github.com/pixil98/go-testutil"
)

func assertInRange(t *testing.T, vs *component.Viewshed, origin gamemap.Point) {
	t.Helper()
	r2 := vs.Range * vs.Range
	for p := range vs.Visible {
		dx, dy := p.X-origin.X, p.Y-origin.Y
		if dx*dx+dy*dy > r2 {
			t.Fatalf("%v is outside range %d of %v", p, vs.Range, origin)
		}
	}
}

func TestVisibilitySingleRoom(t *testing.T) {
	room := gamemap.Rect{X1: 10, Y1: 10, X2: 20, Y2: 15}

	tests := map[string]struct {
		build func() *gamemap.Map
	}{
		"wall ring on open floor": {
			build: func() *gamemap.Map {
				m := openMap(80, 50)
				wallRing(m, room)
				return m
			},
		},
		"room carved from rock": {
			build: func() *gamemap.Map {
				m := gamemap.New(80, 50, gamemap.Wall)
				m.CarveRoom(room)
				return m
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ws := world.NewState(tt.build(), 8)
			origin := gamemap.Point{X: 15, Y: 12}
			id := spawn(t, ws, origin, 8, true)

			NewVisibilitySystem(ws, nil, 1, nop()).Update(0)

			vs, _ := ws.Viewsheds.Get(id)
			testutil.AssertEqual(t, "dirty cleared", vs.Dirty, false)
			for x := 10; x <= 20; x++ {
				if !vs.CanSee(gamemap.Point{X: x, Y: 12}) {
					t.Errorf("(%d,12) should be visible", x)
				}
			}
			for p := range vs.Visible {
				if !room.Contains(p) {
					t.Errorf("%v is outside the room", p)
				}
			}
			assertInRange(t, vs, origin)
		})
	}
}

func TestVisibilityWallBlocksSight(t *testing.T) {
	m := openMap(20, 20)
	m.Set(7, 5, gamemap.Wall)
	ws := world.NewState(m, 8)
	origin := gamemap.Point{X: 5, Y: 5}
	id := spawn(t, ws, origin, 8, true)

	NewVisibilitySystem(ws, nil, 1, nop()).Update(0)
	vs, _ := ws.Viewsheds.Get(id)

	tests := map[string]struct {
		p   gamemap.Point
		exp bool
	}{
		"origin":         {p: origin, exp: true},
		"before pillar":  {p: gamemap.Point{X: 6, Y: 5}, exp: true},
		"pillar itself":  {p: gamemap.Point{X: 7, Y: 5}, exp: true},
		"behind pillar":  {p: gamemap.Point{X: 8, Y: 5}, exp: false},
		"further behind": {p: gamemap.Point{X: 9, Y: 5}, exp: false},
		"around pillar":  {p: gamemap.Point{X: 8, Y: 7}, exp: true},
		"border wall":    {p: gamemap.Point{X: 0, Y: 5}, exp: true},
		"out of range":   {p: gamemap.Point{X: 13, Y: 13}, exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "visible", vs.CanSee(tt.p), tt.exp)
		})
	}
	assertInRange(t, vs, origin)

	t.Run("diagonal wall", func(t *testing.T) {
		// walls on x+y == 12 touch only at their corners
		m := openMap(20, 20)
		for x := 1; x <= 11; x++ {
			m.Set(x, 12-x, gamemap.Wall)
		}
		origin := gamemap.Point{X: 3, Y: 3}
		visible := ComputeFOV(m.Grid, origin, 10)

		for p := range visible {
			if p.X+p.Y > 12 {
				t.Errorf("%v is behind the diagonal", p)
			}
		}
		testutil.AssertEqual(t, "in front", hasPoint(visible, gamemap.Point{X: 5, Y: 5}), true)
		testutil.AssertEqual(t, "diagonal itself", hasPoint(visible, gamemap.Point{X: 6, Y: 6}), true)
		testutil.AssertEqual(t, "far end of diagonal", hasPoint(visible, gamemap.Point{X: 10, Y: 2}), true)
		testutil.AssertEqual(t, "behind", hasPoint(visible, gamemap.Point{X: 11, Y: 5}), false)
	})
}

func hasPoint(set map[gamemap.Point]struct{}, p gamemap.Point) bool {
	_, ok := set[p]
	return ok
}

func TestComputeFOVSideWall(t *testing.T) {
	// corridor running east along a wall; the wall stays visible at a glancing angle
	m := openMap(20, 5)
	for x := 1; x < 19; x++ {
		m.Set(x, 1, gamemap.Wall)
	}
	visible := ComputeFOV(m.Grid, gamemap.Point{X: 2, Y: 2}, 8)
	for x := 1; x <= 9; x++ {
		if !hasPoint(visible, gamemap.Point{X: x, Y: 1}) {
			t.Errorf("wall (%d,1) should be visible", x)
		}
	}
	testutil.AssertEqual(t, "border behind the wall", hasPoint(visible, gamemap.Point{X: 5, Y: 0}), false)
}

func TestVisibilityEdgeCases(t *testing.T) {
	m := openMap(20, 20)
	ws := world.NewState(m, 8)

	blind := spawn(t, ws, gamemap.Point{X: 5, Y: 5}, 0, false)

	lost := spawn(t, ws, gamemap.Point{X: 3, Y: 3}, 8, false)
	pos, _ := ws.Positions.Get(lost)
	pos.X, pos.Y = -4, 30

	clean := spawn(t, ws, gamemap.Point{X: 10, Y: 10}, 8, false)
	cleanVS, _ := ws.Viewsheds.Get(clean)
	sentinel := map[gamemap.Point]struct{}{{X: 1, Y: 1}: {}}
	cleanVS.Visible = sentinel
	cleanVS.Dirty = false

	bus := event.NewBus()
	updates := collect[event.ViewshedUpdated](bus)
	NewVisibilitySystem(ws, bus, 1, nop()).Update(0)
	bus.SwapBuffers()
	bus.DispatchAll()

	blindVS, _ := ws.Viewsheds.Get(blind)
	if diff := cmp.Diff([]gamemap.Point{{X: 5, Y: 5}}, blindVS.Tiles()); diff != "" {
		t.Errorf("range zero sees only its tile mismatch (-want +got):\n%s", diff)
	}

	lostVS, _ := ws.Viewsheds.Get(lost)
	testutil.AssertEqual(t, "out of bounds sees nothing", lostVS.Len(), 0)
	testutil.AssertEqual(t, "out of bounds still cleaned", lostVS.Dirty, false)

	if diff := cmp.Diff(sentinel, cleanVS.Visible); diff != "" {
		t.Errorf("clean viewshed untouched mismatch (-want +got):\n%s", diff)
	}

	want := []event.ViewshedUpdated{
		{Entity: blind, Visible: 1},
		{Entity: lost, Visible: 0},
	}
	if diff := cmp.Diff(want, *updates); diff != "" {
		t.Errorf("one event per recompute (-want +got):\n%s", diff)
	}
}

func TestVisibilityParallelMatchesSerial(t *testing.T) {
	cfg := mapgen.DefaultConfig()
	rng, _ := mapgen.NewRNG(2024)
	m, err := mapgen.New(cfg, rng, nop()).Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	ws := world.NewState(m, 8)

	var ids []ecs.EntityID
	for i, r := range m.Rooms {
		ids = append(ids, spawn(t, ws, r.Center(), 4+i%6, i == 0))
	}

	NewVisibilitySystem(ws, nil, 1, nop()).Update(0)
	serial := make(map[ecs.EntityID]map[gamemap.Point]struct{}, len(ids))
	for _, id := range ids {
		vs, _ := ws.Viewsheds.Get(id)
		serial[id] = maps.Clone(vs.Visible)
	}

	ws.DirtyAll()
	NewVisibilitySystem(ws, nil, 4, nop()).Update(0)
	for _, id := range ids {
		vs, _ := ws.Viewsheds.Get(id)
		testutil.AssertEqual(t, "dirty cleared", vs.Dirty, false)
		if !maps.Equal(vs.Visible, serial[id]) {
			t.Fatalf("entity %v: parallel result differs from serial", id)
		}
	}
}

func TestCanSee(t *testing.T) {
	m := openMap(20, 20)
	wallRing(m, gamemap.Rect{X1: 10, Y1: 2, X2: 16, Y2: 8})
	ws := world.NewState(m, 8)

	watcher := spawn(t, ws, gamemap.Point{X: 4, Y: 5}, 8, true)
	near := spawn(t, ws, gamemap.Point{X: 7, Y: 5}, 8, false)
	hidden := spawn(t, ws, gamemap.Point{X: 13, Y: 5}, 8, false)
	far := spawn(t, ws, gamemap.Point{X: 4, Y: 17}, 8, false)

	testutil.AssertEqual(t, "dirty viewshed sees nothing", CanSee(ws, watcher, near), false)

	NewVisibilitySystem(ws, nil, 1, nop()).Update(0)
	testutil.AssertEqual(t, "near", CanSee(ws, watcher, near), true)
	testutil.AssertEqual(t, "inside walls", CanSee(ws, watcher, hidden), false)
	testutil.AssertEqual(t, "beyond range", CanSee(ws, watcher, far), false)
	if diff := cmp.Diff([]ecs.EntityID{near}, SeenBy(ws, watcher)); diff != "" {
		t.Errorf("seen list mismatch (-want +got):\n%s", diff)
	}
	testutil.AssertEqual(t, "no viewshed", CanSee(ws, ecs.NilEntity, near), false)

	TryMove(ws, m, watcher, 1, 0)
	testutil.AssertEqual(t, "stale after move", CanSee(ws, watcher, near), false)
	testutil.AssertEqual(t, "stale seen list", len(SeenBy(ws, watcher)), 0)
}
