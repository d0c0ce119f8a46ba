package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot is an immutable copy of everything a renderer needs for one
// frame. It is also used for determinism checks.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Cause     Cause
	Snake     []core.Point // Head first
	Direction core.Direction
	Length    int // Committed length, including pending growth
	Score     int
	FoodEaten int
	Food      core.Point
	Remaining int // Whole seconds left
	Width     int
	Height    int
}

// Head returns the head position.
func (s Snapshot) Head() core.Point {
	return s.Snake[0]
}

// Snapshot captures the session state at now.
func (s *Session) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		Tick:      s.ticks,
		Phase:     s.phase,
		Cause:     s.cause,
		Snake:     s.snake.Positions(),
		Direction: s.snake.Direction(),
		Length:    s.snake.Length(),
		Score:     s.snake.Score(),
		FoodEaten: s.eaten,
		Food:      s.food.Position(),
		Remaining: s.Remaining(now),
		Width:     s.cfg.GridW,
		Height:    s.cfg.GridH,
	}
}
