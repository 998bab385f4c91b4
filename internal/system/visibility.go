package system

import (
	"time"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/core/event"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/gamemap"
	"github.com/l1jgo/delve/internal/world"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// VisibilitySystem recomputes every dirty viewshed, player or not, and
// clears its dirty flag. Clean viewsheds are left alone.
// Phase 3 (PostUpdate), after movement and before render.
type VisibilitySystem struct {
	world   *world.State
	bus     *event.Bus
	workers int
	log     *zap.Logger
}

// NewVisibilitySystem builds the pass. workers > 1 recomputes dirty
// viewsheds concurrently; bus may be nil.
func NewVisibilitySystem(ws *world.State, bus *event.Bus, workers int, log *zap.Logger) *VisibilitySystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &VisibilitySystem{world: ws, bus: bus, workers: workers, log: log}
}

func (s *VisibilitySystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

type fovJob struct {
	id     ecs.EntityID
	origin gamemap.Point
	vs     *component.Viewshed
}

func (s *VisibilitySystem) Update(_ time.Duration) {
	var jobs []fovJob
	ecs.Each2(s.world.Positions, s.world.Viewsheds, func(id ecs.EntityID, pos *component.Position, vs *component.Viewshed) {
		if vs.Dirty {
			jobs = append(jobs, fovJob{id: id, origin: pos.Point(), vs: vs})
		}
	})
	if len(jobs) == 0 {
		return
	}

	grid := s.world.Map.Grid
	if s.workers > 1 && len(jobs) > 1 {
		var g errgroup.Group
		g.SetLimit(s.workers)
		for i := range jobs {
			job := jobs[i]
			g.Go(func() error {
				recompute(grid, job)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			s.log.Error("viewshed recompute failed", zap.Error(err))
		}
	} else {
		for _, job := range jobs {
			recompute(grid, job)
		}
	}

	for _, job := range jobs {
		if !grid.InBounds(job.origin.X, job.origin.Y) {
			s.log.Warn("viewer out of bounds, sees nothing",
				zap.Stringer("entity", job.id),
				zap.Int("x", job.origin.X),
				zap.Int("y", job.origin.Y),
			)
		}
		if s.bus != nil {
			event.Emit(s.bus, event.ViewshedUpdated{Entity: job.id, Visible: job.vs.Len()})
		}
	}
	s.log.Debug("viewsheds recomputed", zap.Int("count", len(jobs)))
}

// recompute replaces the visible set wholesale. Each job owns its viewshed,
// the grid is only read.
func recompute(grid *gamemap.Grid, job fovJob) {
	job.vs.Visible = ComputeFOV(grid, job.origin, job.vs.Range)
	job.vs.Dirty = false
}

// CanSee reports whether target stands on a tile inside viewer's current
// viewshed. A dirty viewshed is stale and sees nothing.
func CanSee(ws *world.State, viewer, target ecs.EntityID) bool {
	vs, ok := ws.Viewsheds.Get(viewer)
	if !ok || vs.Dirty {
		return false
	}
	pos, ok := ws.Positions.Get(target)
	if !ok {
		return false
	}
	return vs.CanSee(pos.Point())
}

// SeenBy lists the other entities viewer can currently see, ordered by id.
func SeenBy(ws *world.State, viewer ecs.EntityID) []ecs.EntityID {
	vs, ok := ws.Viewsheds.Get(viewer)
	if !ok || vs.Dirty {
		return nil
	}
	pos, ok := ws.Positions.Get(viewer)
	if !ok {
		return nil
	}
	var seen []ecs.EntityID
	for _, id := range ws.AOI.Nearby(pos.Point(), vs.Range) {
		if id != viewer && CanSee(ws, viewer, id) {
			seen = append(seen, id)
		}
	}
	return seen
}
