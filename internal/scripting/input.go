package scripting

import (
	"fmt"

	"github.com/l1jgo/delve/internal/gamemap"
	"github.com/l1jgo/delve/internal/input"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// MoveHook is the Lua function polled once per tick.
const MoveHook = "next_move"

// MoveScript is an input.Source driven by the Lua next_move(tick, x, y)
// hook. The hook returns "up", "down", "left", "right", "quit" or nil.
type MoveScript struct {
	engine   *Engine
	locate   func() gamemap.Point
	tick     int
	maxTicks int
}

// MoveScript binds the hook to a position lookup. maxTicks > 0 ends the
// script with input.ErrQuit after that many ticks.
func (e *Engine) MoveScript(locate func() gamemap.Point, maxTicks int) (*MoveScript, error) {
	if !e.HasFunc(MoveHook) {
		return nil, fmt.Errorf("lua function %s not found", MoveHook)
	}
	return &MoveScript{engine: e, locate: locate, maxTicks: maxTicks}, nil
}

func (s *MoveScript) Next() (input.Direction, error) {
	if s.maxTicks > 0 && s.tick >= s.maxTicks {
		return input.None, input.ErrQuit
	}
	p := s.locate()
	ret, err := s.engine.call(MoveHook, s.tick, p.X, p.Y)
	s.tick++
	if err != nil {
		return input.None, err
	}

	switch v := ret.(type) {
	case *lua.LNilType:
		return input.None, nil
	case lua.LString:
		if string(v) == "quit" {
			return input.None, input.ErrQuit
		}
		d, err := input.ParseDirection(string(v))
		if err != nil {
			return input.None, fmt.Errorf("%s at tick %d: %w", MoveHook, s.tick-1, err)
		}
		s.engine.log.Debug("scripted move", zap.Int("tick", s.tick-1), zap.Stringer("dir", d))
		return d, nil
	default:
		return input.None, fmt.Errorf("%s at tick %d: returned %s, want string or nil", MoveHook, s.tick-1, ret.Type())
	}
}

// Ticks returns how many times the hook has been polled.
func (s *MoveScript) Ticks() int { return s.tick }
