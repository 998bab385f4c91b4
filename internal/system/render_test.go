package system

import (
	"testing"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/gamemap"
	"github.com/l1jgo/delve/internal/world"
	"github.com/pixil98/go-testutil"
)

func TestBuildFrame(t *testing.T) {
	m := openMap(12, 8)
	ws := world.NewState(m, 8)
	id := spawn(t, ws, gamemap.Point{X: 3, Y: 3}, 8, true)
	terrain := DefaultTerrain()

	f := BuildFrame(ws, terrain, false)
	testutil.AssertEqual(t, "size", len(f.Cells), 12*8)
	testutil.AssertEqual(t, "wall", f.At(0, 0), Cell{Glyph: '#', Foreground: component.WallGreen, Background: component.Black})
	testutil.AssertEqual(t, "floor", f.At(5, 5), Cell{Glyph: '.', Foreground: component.FloorGrey, Background: component.Black})
	testutil.AssertEqual(t, "player over floor", f.At(3, 3).Glyph, int('@'))
	testutil.AssertEqual(t, "player colour", f.At(3, 3).Foreground, component.Yellow)
	testutil.AssertEqual(t, "out of frame", f.At(12, 0), Cell{})

	// viewshed still dirty and empty: fov filtering hides everything
	f = BuildFrame(ws, terrain, true)
	testutil.AssertEqual(t, "hidden before first pass", f.At(3, 3), Cell{})

	vs, _ := ws.Viewsheds.Get(id)
	vs.Visible = map[gamemap.Point]struct{}{
		{X: 3, Y: 3}: {},
		{X: 4, Y: 3}: {},
	}
	vs.Dirty = false
	f = BuildFrame(ws, terrain, true)
	testutil.AssertEqual(t, "visible entity", f.At(3, 3).Glyph, int('@'))
	testutil.AssertEqual(t, "visible floor", f.At(4, 3).Glyph, int('.'))
	testutil.AssertEqual(t, "unseen floor", f.At(5, 3), Cell{})
	testutil.AssertEqual(t, "unseen wall", f.At(0, 0), Cell{})
}

func TestBuildFrameHidesUnseenEntities(t *testing.T) {
	m := openMap(20, 10)
	m.Set(6, 3, gamemap.Wall)
	ws := world.NewState(m, 8)
	spawn(t, ws, gamemap.Point{X: 3, Y: 3}, 8, true)
	spawn(t, ws, gamemap.Point{X: 9, Y: 3}, 8, false)

	NewVisibilitySystem(ws, nil, 1, nop()).Update(0)
	f := BuildFrame(ws, DefaultTerrain(), true)
	testutil.AssertEqual(t, "behind the pillar", f.At(9, 3), Cell{})
	testutil.AssertEqual(t, "pillar drawn", f.At(6, 3).Glyph, int('#'))

	f = BuildFrame(ws, DefaultTerrain(), false)
	testutil.AssertEqual(t, "everything without fov", f.At(9, 3).Glyph, int('@'))
}

func TestRenderSystem(t *testing.T) {
	m := openMap(6, 6)
	ws := world.NewState(m, 8)
	spawn(t, ws, gamemap.Point{X: 2, Y: 2}, 8, true)

	r := &captureRenderer{}
	sys := NewRenderSystem(ws, r, DefaultTerrain(), false, nop())
	sys.Update(0)
	testutil.AssertEqual(t, "frames", len(r.frames), 1)
	testutil.AssertEqual(t, "width", r.frames[0].Width, 6)

	// draw errors are logged, not fatal
	r.err = errDraw
	sys.Update(0)
	testutil.AssertEqual(t, "still drawing", len(r.frames), 2)
}
