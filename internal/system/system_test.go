package system

import (
	"errors"
	"testing"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/core/event"
	"github.com/l1jgo/delve/internal/data"
	"github.com/l1jgo/delve/internal/gamemap"
	"github.com/l1jgo/delve/internal/world"
	"go.uber.org/zap"
)

func viewer(rangeTiles int) *data.Prefab {
	return &data.Prefab{
		Name:       "viewer",
		Renderable: component.Renderable{Glyph: '@', Foreground: component.Yellow},
		ViewRange:  rangeTiles,
	}
}

// openMap is floor inside a wall border.
func openMap(w, h int) *gamemap.Map {
	m := gamemap.New(w, h, gamemap.Floor)
	m.WallBorder()
	return m
}

// wallRing draws the outline of r as walls.
func wallRing(m *gamemap.Map, r gamemap.Rect) {
	for x := r.X1; x <= r.X2; x++ {
		m.Set(x, r.Y1, gamemap.Wall)
		m.Set(x, r.Y2, gamemap.Wall)
	}
	for y := r.Y1; y <= r.Y2; y++ {
		m.Set(r.X1, y, gamemap.Wall)
		m.Set(r.X2, y, gamemap.Wall)
	}
}

func spawn(t *testing.T, ws *world.State, at gamemap.Point, rangeTiles int, player bool) ecs.EntityID {
	t.Helper()
	id, err := ws.Spawn(viewer(rangeTiles), at, player)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	return id
}

type captureRenderer struct {
	frames []*Frame
	err    error
}

func (r *captureRenderer) Draw(f *Frame) error {
	r.frames = append(r.frames, f)
	return r.err
}

var errDraw = errors.New("screen gone")

// collect subscribes to T and returns the slice events are appended to.
func collect[T any](bus *event.Bus) *[]T {
	var got []T
	event.Subscribe(bus, func(ev T) { got = append(got, ev) })
	return &got
}

func nop() *zap.Logger { return zap.NewNop() }
