package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/l1jgo/delve/internal/core/event"
	coresys "github.com/l1jgo/delve/internal/core/system"
	"github.com/l1jgo/delve/internal/data"
	"github.com/l1jgo/delve/internal/input"
	"github.com/l1jgo/delve/internal/system"
	"github.com/l1jgo/delve/internal/world"
	"go.uber.org/zap"
)

type Options struct {
	Terrain system.Terrain
	FOVOnly bool
	Workers int
}

// Stats counts what happened since the game started.
type Stats struct {
	Ticks      uint64
	Moves      int
	Bumps      int
	FOVUpdates int
}

// Game owns the tick pipeline for one world: movement, event dispatch,
// visibility, render and cleanup, in that order.
type Game struct {
	world  *world.State
	queue  *input.Queue
	bus    *event.Bus
	runner *coresys.Runner
	stats  Stats
	log    *zap.Logger
}

func New(ws *world.State, r system.Renderer, opts Options, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		world:  ws,
		queue:  input.NewQueue(),
		bus:    event.NewBus(),
		runner: coresys.NewRunner(),
		log:    log,
	}

	event.Subscribe(g.bus, func(event.EntityMoved) { g.stats.Moves++ })
	event.Subscribe(g.bus, func(event.MoveBlocked) { g.stats.Bumps++ })
	event.Subscribe(g.bus, func(event.ViewshedUpdated) { g.stats.FOVUpdates++ })

	g.runner.Register(system.NewMovementSystem(ws, g.queue, g.bus, log))
	g.runner.Register(system.NewEventDispatchSystem(g.bus))
	g.runner.Register(system.NewVisibilitySystem(ws, g.bus, opts.Workers, log))
	g.runner.Register(system.NewRenderSystem(ws, r, opts.Terrain, opts.FOVOnly, log))
	g.runner.Register(system.NewCleanupSystem(ws.ECS, log))
	return g
}

// Tick runs one full pass with dir as this tick's input. input.None still
// recomputes dirty viewsheds and redraws.
func (g *Game) Tick(dir input.Direction) {
	g.queue.Push(dir)
	g.runner.Tick(0)
	g.stats.Ticks = g.runner.Ticks()
}

// Run draws the opening frame, then ticks once per direction read from src
// until it reports input.ErrQuit or ctx is cancelled. A positive interval
// paces the loop; zero ticks as fast as src delivers.
func (g *Game) Run(ctx context.Context, src input.Source, interval time.Duration) error {
	g.Tick(input.None)

	var pace <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		pace = ticker.C
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		dir, err := src.Next()
		if errors.Is(err, input.ErrQuit) {
			g.log.Info("input finished", zap.Uint64("ticks", g.stats.Ticks))
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		g.Tick(dir)

		if pace != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-pace:
			}
		}
	}
}

func (g *Game) Stats() Stats { return g.stats }

func (g *Game) World() *world.State { return g.world }

// TerrainFrom takes the "floor" and "wall" prefabs from table, keeping the
// default look for any that are missing.
func TerrainFrom(table *data.PrefabTable) system.Terrain {
	t := system.DefaultTerrain()
	if table == nil {
		return t
	}
	if p := table.Get("floor"); p != nil {
		t.Floor = p.Renderable
	}
	if p := table.Get("wall"); p != nil {
		t.Wall = p.Renderable
	}
	return t
}
