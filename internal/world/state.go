package world

import (
	"fmt"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/data"
	"github.com/l1jgo/delve/internal/gamemap"
)

// State bundles the ECS world, its component stores and the active map.
// Accessed only from the game loop goroutine, no locks needed. The map is
// written during setup and read-only afterwards.
type State struct {
	ECS         *ecs.World
	Positions   *ecs.Store[component.Position]
	Renderables *ecs.Store[component.Renderable]
	Players     *ecs.Store[component.Player]
	Viewsheds   *ecs.Store[component.Viewshed]

	Map *gamemap.Map
	AOI *AOIGrid
}

// NewState registers every component store against a fresh ECS world.
func NewState(m *gamemap.Map, aoiCell int) *State {
	w := ecs.NewWorld()
	return &State{
		ECS:         w,
		Positions:   ecs.Register[component.Position](w),
		Renderables: ecs.Register[component.Renderable](w),
		Players:     ecs.Register[component.Player](w),
		Viewsheds:   ecs.Register[component.Viewshed](w),
		Map:         m,
		AOI:         NewAOIGrid(aoiCell),
	}
}

// Spawn creates an entity from a prefab at p with a dirty viewshed.
// player tags it as player-controlled.
func (s *State) Spawn(p *data.Prefab, at gamemap.Point, player bool) (ecs.EntityID, error) {
	if p == nil {
		return ecs.NilEntity, fmt.Errorf("spawn: nil prefab")
	}
	if !s.Map.InBounds(at.X, at.Y) {
		return ecs.NilEntity, fmt.Errorf("spawn %s at %v: out of bounds", p.Name, at)
	}

	id := s.ECS.CreateEntity()
	s.Positions.Set(id, &component.Position{X: at.X, Y: at.Y})
	r := p.Renderable
	s.Renderables.Set(id, &r)
	s.Viewsheds.Set(id, component.NewViewshed(p.ViewRange))
	if player {
		s.Players.Set(id, &component.Player{})
	}
	s.AOI.Add(id, at)
	return id, nil
}

// MoveEntity writes a new position and keeps the AOI grid in step.
// It performs no walkability check; see system.TryMove for that.
// Entities queued for destruction stay where they are.
func (s *State) MoveEntity(id ecs.EntityID, to gamemap.Point) bool {
	pos, ok := s.Positions.Get(id)
	if !ok || s.ECS.Queued(id) {
		return false
	}
	s.AOI.Move(id, pos.Point(), to)
	pos.X, pos.Y = to.X, to.Y
	return true
}

// Despawn queues id for destruction at the end of the tick.
func (s *State) Despawn(id ecs.EntityID) {
	if pos, ok := s.Positions.Get(id); ok {
		s.AOI.Remove(id, pos.Point())
	}
	s.ECS.MarkForDestruction(id)
}

// Player returns the first player-controlled entity with a position, or
// ecs.NilEntity.
func (s *State) Player() ecs.EntityID {
	return ecs.First(s.Players, s.Positions)
}

// DirtyAll marks every viewshed for recomputation, e.g. after the map changed.
func (s *State) DirtyAll() {
	s.Viewsheds.Each(func(_ ecs.EntityID, v *component.Viewshed) {
		v.Dirty = true
	})
}
