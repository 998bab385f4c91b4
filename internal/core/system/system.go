package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: consume the tick's input, apply movement
	PhasePreUpdate               // 1: react to last tick's changes
	PhaseUpdate                  // 2: game logic
	PhasePostUpdate              // 3: visibility recomputation
	PhaseOutput                  // 4: build and hand off the render frame
	PhaseCleanup                 // 5: destroy queued entities
)

var phaseNames = [...]string{"input", "pre_update", "update", "post_update", "output", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
