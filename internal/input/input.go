// Package input models the directional commands fed to the game loop.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQuit is returned by a Source when the player asked to leave.
var ErrQuit = errors.New("quit requested")

// Direction is one discrete movement command.
type Direction uint8

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

var directionNames = [...]string{
	None:  "none",
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Delta returns the one-tile step for d. None is (0, 0).
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// ParseDirection maps a name ("up", "Left", ...) to a Direction.
// The empty string is None.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return None, fmt.Errorf("unknown direction %q", s)
}

// Source produces at most one direction per tick.
type Source interface {
	Next() (Direction, error)
}

// Queue buffers directions between the loop and MovementSystem.
// Accessed only from the game loop goroutine.
type Queue struct {
	pending []Direction
}

func NewQueue() *Queue {
	return &Queue{pending: make([]Direction, 0, 4)}
}

// Push enqueues d. None is dropped.
func (q *Queue) Push(d Direction) {
	if d == None {
		return
	}
	q.pending = append(q.pending, d)
}

// Pop removes the oldest direction, or returns None when empty.
func (q *Queue) Pop() Direction {
	if len(q.pending) == 0 {
		return None
	}
	d := q.pending[0]
	q.pending = q.pending[1:]
	return d
}

func (q *Queue) Len() int { return len(q.pending) }
