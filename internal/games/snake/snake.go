package snake

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// PointsPerFood is the score awarded for each food eaten.
const PointsPerFood = 10

// Snake is the player-controlled body.
type Snake struct {
	positions   []core.Point // Head at index 0
	direction   core.Direction
	score       int
	growPending int // Future moves that keep the tail
}

// Reset places a single segment at the grid center heading in a random
// direction. The remaining initialLength-1 segments grow out over the next
// moves.
func (s *Snake) Reset(rng *rand.Rand, initialLength, width, height int) {
	s.positions = []core.Point{{X: width / 2, Y: height / 2}}
	s.direction = core.Directions[rng.Intn(len(core.Directions))]
	s.score = 0
	s.growPending = initialLength - 1
}

// SetDirection changes the heading used by the next Advance.
// Reversing straight into the body is ignored, as is DirNone.
func (s *Snake) SetDirection(d core.Direction) bool {
	if d == core.DirNone || d == s.direction.Opposite() {
		return false
	}
	s.direction = d
	return true
}

// Advance moves the head one cell, wrapping at the grid edges.
// It returns false on self-collision and leaves the snake untouched.
func (s *Snake) Advance(width, height int) bool {
	newHead := s.Head().Add(s.direction).Wrap(width, height)

	// The tail has not moved yet, so stepping onto it counts as a hit.
	if slices.Contains(s.positions[1:], newHead) {
		return false
	}

	s.positions = slices.Insert(s.positions, 0, newHead)
	if s.growPending > 0 {
		s.growPending--
	} else {
		s.positions = s.positions[:len(s.positions)-1]
	}
	return true
}

// Grow schedules one extra segment and scores the food.
func (s *Snake) Grow() {
	s.growPending++
	s.score += PointsPerFood
}

// Head returns the head position.
func (s *Snake) Head() core.Point {
	return s.positions[0]
}

// Direction returns the current heading.
func (s *Snake) Direction() core.Direction {
	return s.direction
}

// Score returns the points earned since the last reset.
func (s *Snake) Score() int {
	return s.score
}

// Positions returns a copy of the body, head first.
func (s *Snake) Positions() []core.Point {
	return slices.Clone(s.positions)
}

// Length is the length the snake is committed to: the segments on the board
// plus the growth still pending.
func (s *Snake) Length() int {
	return len(s.positions) + s.growPending
}

// Occupies reports whether any segment sits on p.
func (s *Snake) Occupies(p core.Point) bool {
	return slices.Contains(s.positions, p)
}

// occupied returns the body as a set, for food placement.
func (s *Snake) occupied() map[core.Point]struct{} {
	set := make(map[core.Point]struct{}, len(s.positions))
	for _, p := range s.positions {
		set[p] = struct{}{}
	}
	return set
}
