package system

import (
	"time"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/gamemap"
	"github.com/l1jgo/delve/internal/world"
	"go.uber.org/zap"
)

// Cell is one drawn grid position. The zero Cell is blank.
type Cell struct {
	Glyph      int // code page 437
	Foreground component.Color
	Background component.Color
}

// Frame is a read-only snapshot of what to draw this tick, row-major.
type Frame struct {
	Width  int
	Height int
	Cells  []Cell
}

func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Cells: make([]Cell, width*height)}
}

// At returns the cell at (x, y); out of bounds is blank.
func (f *Frame) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return Cell{}
	}
	return f.Cells[y*f.Width+x]
}

func (f *Frame) set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	f.Cells[y*f.Width+x] = c
}

// Renderer draws frames. Implementations live outside the core.
type Renderer interface {
	Draw(f *Frame) error
}

// Terrain is the look of each tile kind.
type Terrain struct {
	Floor component.Renderable
	Wall  component.Renderable
}

// DefaultTerrain is '.' grey on black for floor and '#' green on black for wall.
func DefaultTerrain() Terrain {
	return Terrain{
		Floor: component.Renderable{Glyph: '.', Foreground: component.FloorGrey, Background: component.Black},
		Wall:  component.Renderable{Glyph: '#', Foreground: component.WallGreen, Background: component.Black},
	}
}

func (t Terrain) look(tile gamemap.Tile) component.Renderable {
	if tile == gamemap.Floor {
		return t.Floor
	}
	return t.Wall
}

// BuildFrame draws the terrain and then every Position+Renderable entity.
// With fovOnly set and a player viewshed present, anything outside that
// viewshed stays blank.
func BuildFrame(ws *world.State, terrain Terrain, fovOnly bool) *Frame {
	m := ws.Map
	f := NewFrame(m.Width, m.Height)

	var visible *component.Viewshed
	if fovOnly {
		if vs, ok := ws.Viewsheds.Get(ws.Player()); ok {
			visible = vs
		}
	}
	shown := func(p gamemap.Point) bool {
		return visible == nil || visible.CanSee(p)
	}

	for i, tile := range m.Tiles {
		x, y := m.XY(i)
		if !shown(gamemap.Point{X: x, Y: y}) {
			continue
		}
		r := terrain.look(tile)
		f.Cells[i] = Cell{Glyph: r.Glyph, Foreground: r.Foreground, Background: r.Background}
	}

	ecs.Each2(ws.Positions, ws.Renderables, func(_ ecs.EntityID, pos *component.Position, r *component.Renderable) {
		if !shown(pos.Point()) {
			return
		}
		f.set(pos.X, pos.Y, Cell{Glyph: r.Glyph, Foreground: r.Foreground, Background: r.Background})
	})
	return f
}

// RenderSystem hands a fresh frame to the renderer every tick.
// Phase 4 (Output).
type RenderSystem struct {
	world    *world.State
	renderer Renderer
	terrain  Terrain
	fovOnly  bool
	log      *zap.Logger
}

func NewRenderSystem(ws *world.State, r Renderer, terrain Terrain, fovOnly bool, log *zap.Logger) *RenderSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &RenderSystem{world: ws, renderer: r, terrain: terrain, fovOnly: fovOnly, log: log}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *RenderSystem) Update(_ time.Duration) {
	if err := s.renderer.Draw(BuildFrame(s.world, s.terrain, s.fovOnly)); err != nil {
		s.log.Error("draw frame", zap.Error(err))
	}
}
