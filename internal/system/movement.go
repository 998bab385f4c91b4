package system

import (
	"time"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/core/event"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/gamemap"
	"github.com/l1jgo/delve/internal/input"
	"github.com/l1jgo/delve/internal/world"
	"go.uber.org/zap"
)

// MoveResult is the outcome of a single TryMove.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // position updated, viewshed dirtied
	MoveBlocked                   // destination is a wall
	MoveIgnored                   // entity lacks Position or Viewshed
)

func (r MoveResult) String() string {
	switch r {
	case MoveOK:
		return "ok"
	case MoveBlocked:
		return "blocked"
	default:
		return "ignored"
	}
}

// TryMove applies a one-tile delta to id. The destination is clamped to the
// map; a wall rejects the move and leaves position and viewshed untouched.
// Other entities are not obstacles.
func TryMove(ws *world.State, m *gamemap.Map, id ecs.EntityID, dx, dy int) MoveResult {
	pos, ok := ws.Positions.Get(id)
	if !ok {
		return MoveIgnored
	}
	vs, ok := ws.Viewsheds.Get(id)
	if !ok {
		return MoveIgnored
	}

	x, y := m.Clamp(pos.X+dx, pos.Y+dy)
	if !m.IsWalkable(x, y) {
		return MoveBlocked
	}
	if !ws.MoveEntity(id, gamemap.Point{X: x, Y: y}) {
		return MoveIgnored
	}
	vs.Dirty = true
	return MoveOK
}

// MovementSystem takes one queued direction per tick and applies it to every
// player-controlled entity. Phase 0 (Input).
type MovementSystem struct {
	world *world.State
	queue *input.Queue
	bus   *event.Bus
	log   *zap.Logger
}

// NewMovementSystem builds the system; bus may be nil.
func NewMovementSystem(ws *world.State, queue *input.Queue, bus *event.Bus, log *zap.Logger) *MovementSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &MovementSystem{world: ws, queue: queue, bus: bus, log: log}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *MovementSystem) Update(_ time.Duration) {
	dir := s.queue.Pop()
	if dir == input.None {
		return
	}
	dx, dy := dir.Delta()

	// collect first; moving rewrites positions under the join
	var movers []ecs.EntityID
	ecs.Each3(s.world.Players, s.world.Positions, s.world.Viewsheds,
		func(id ecs.EntityID, _ *component.Player, _ *component.Position, _ *component.Viewshed) {
			movers = append(movers, id)
		})

	for _, id := range movers {
		pos, _ := s.world.Positions.Get(id)
		from := pos.Point()

		res := TryMove(s.world, s.world.Map, id, dx, dy)
		switch res {
		case MoveOK:
			if s.bus != nil {
				event.Emit(s.bus, event.EntityMoved{Entity: id, From: from, To: pos.Point()})
			}
		case MoveBlocked:
			tx, ty := s.world.Map.Clamp(from.X+dx, from.Y+dy)
			if s.bus != nil {
				event.Emit(s.bus, event.MoveBlocked{Entity: id, At: from, Target: gamemap.Point{X: tx, Y: ty}})
			}
		}
		s.log.Debug("move",
			zap.Stringer("entity", id),
			zap.Stringer("dir", dir),
			zap.Stringer("result", res),
		)
	}
}
