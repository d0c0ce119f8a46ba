package core

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 10)
	Seed     int64 // RNG seed for deterministic gameplay

	GridW         int // Playfield width in cells
	GridH         int // Playfield height in cells
	RoundSeconds  int // Countdown length
	InitialLength int // Snake length after a reset
	CellWidth     int // Terminal columns per grid cell
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:       80,
		ScreenH:       24,
		TickRate:      10,
		Seed:          0, // 0 means use current time in platform layer
		GridW:         40,
		GridH:         30,
		RoundSeconds:  60,
		InitialLength: 3,
		CellWidth:     2,
	}
}

// Validate rejects configurations the simulation cannot run with.
func (c RuntimeConfig) Validate() error {
	switch {
	case c.GridW <= 0 || c.GridH <= 0:
		return fmt.Errorf("%w: grid must be positive, got %dx%d", ErrInvalidConfig, c.GridW, c.GridH)
	case c.RoundSeconds <= 0:
		return fmt.Errorf("%w: round duration must be positive, got %ds", ErrInvalidConfig, c.RoundSeconds)
	case c.InitialLength < 1:
		return fmt.Errorf("%w: initial length must be at least 1, got %d", ErrInvalidConfig, c.InitialLength)
	case c.GridW*c.GridH <= c.InitialLength:
		return fmt.Errorf("%w: %dx%d grid leaves no room for food next to a snake of length %d",
			ErrInvalidConfig, c.GridW, c.GridH, c.InitialLength)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	return nil
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the round has ended
	Paused   bool // Whether the game is paused
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventFoodEaten EventKind = iota + 1
	EventRoundOver
	EventRestart
)

func (k EventKind) String() string {
	switch k {
	case EventFoodEaten:
		return "food_eaten"
	case EventRoundOver:
		return "round_over"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is reported by Step so the platform can log without peeking into
// game internals.
type Event struct {
	Kind   EventKind
	Detail string
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
