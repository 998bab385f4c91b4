package world

import (
	"fmt"

	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/data"
	"github.com/l1jgo/delve/internal/gamemap"
	"go.uber.org/zap"
)

// MapSource builds the map for a new world. *mapgen.Generator satisfies it.
type MapSource interface {
	Generate() (*gamemap.Map, error)
}

// Setup generates the map and places the player at the centre of the first
// room. A map without rooms fails with gamemap.ErrNoRooms.
func Setup(src MapSource, player *data.Prefab, aoiCell int, log *zap.Logger) (*State, ecs.EntityID, error) {
	m, err := src.Generate()
	if err != nil {
		return nil, ecs.NilEntity, fmt.Errorf("generate map: %w", err)
	}
	start, err := m.Start()
	if err != nil {
		return nil, ecs.NilEntity, fmt.Errorf("place player: %w", err)
	}

	ws := NewState(m, aoiCell)
	id, err := ws.Spawn(player, start, true)
	if err != nil {
		return nil, ecs.NilEntity, err
	}

	log.Info("world ready",
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("rooms", len(m.Rooms)),
		zap.Stringer("player", id),
		zap.Int("x", start.X),
		zap.Int("y", start.Y),
	)
	return ws, id, nil
}
