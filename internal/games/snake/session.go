package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Phase is the top-level session state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Cause explains why a round ended. Only meaningful in PhaseGameOver.
type Cause int

const (
	CauseNone Cause = iota
	CauseSelfCollision
	CauseTimeExpired
)

func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseSelfCollision:
		return "self_collision"
	case CauseTimeExpired:
		return "time_expired"
	default:
		return "unknown"
	}
}

// TickResult reports what a single Tick did.
type TickResult struct {
	Moved bool  // The snake advanced one cell
	Ate   bool  // The head landed on the food
	Ended Cause // Non-zero when this tick ended the round
}

// Session owns the snake, the food and the countdown, and runs the
// Playing/GameOver state machine. It is not safe for concurrent use; the
// platform drives it from a single loop.
type Session struct {
	cfg   core.RuntimeConfig
	rng   *rand.Rand
	snake Snake
	food  Food
	clock Countdown
	phase Phase
	cause Cause
	ticks uint64
	eaten int
	ended time.Time // When the round ended; freezes the countdown
}

// NewSession validates cfg and starts a round at now.
// A nil rng is replaced by one seeded from cfg.Seed.
func NewSession(cfg core.RuntimeConfig, rng *rand.Rand, now time.Time) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	s := &Session{
		cfg:   cfg,
		rng:   rng,
		clock: NewCountdown(cfg.RoundSeconds),
	}
	s.Reset(now)
	return s, nil
}

// Reset reinitializes every owned entity and returns to PhasePlaying.
func (s *Session) Reset(now time.Time) {
	w, h := s.cfg.GridW, s.cfg.GridH

	s.snake.Reset(s.rng, s.cfg.InitialLength, w, h)
	s.food.RelocateAvoiding(s.rng, s.snake.occupied(), w, h)
	s.clock.Start(now)
	s.phase = PhasePlaying
	s.cause = CauseNone
	s.ticks = 0
	s.eaten = 0
}

// Tick advances the simulation by one step. pending is the heading
// requested since the last tick (DirNone for none). Once the round is over
// Tick does nothing.
func (s *Session) Tick(pending core.Direction, now time.Time) TickResult {
	var res TickResult
	if s.phase == PhaseGameOver {
		return res
	}
	s.ticks++

	w, h := s.cfg.GridW, s.cfg.GridH

	s.snake.SetDirection(pending)
	if !s.snake.Advance(w, h) {
		s.end(CauseSelfCollision, now)
		res.Ended = CauseSelfCollision
		return res
	}
	res.Moved = true

	if s.snake.Head() == s.food.Position() {
		s.snake.Grow()
		s.eaten++
		s.food.RelocateAvoiding(s.rng, s.snake.occupied(), w, h)
		res.Ate = true
	}

	if s.clock.Expired(now) {
		s.end(CauseTimeExpired, now)
		res.Ended = CauseTimeExpired
	}
	return res
}

// Restart begins a new round. It only acts in PhaseGameOver and reports
// whether it did.
func (s *Session) Restart(now time.Time) bool {
	if s.phase != PhaseGameOver {
		return false
	}
	s.Reset(now)
	return true
}

func (s *Session) end(cause Cause, now time.Time) {
	s.phase = PhaseGameOver
	s.cause = cause
	s.ended = now
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Cause returns why the round ended, or CauseNone while playing.
func (s *Session) Cause() Cause {
	return s.cause
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.snake.Score()
}

// Remaining returns the whole seconds left in the round at now. After the
// round ends it keeps reporting the value at the moment it ended.
func (s *Session) Remaining(now time.Time) int {
	if s.phase == PhaseGameOver {
		now = s.ended
	}
	return s.clock.Remaining(now)
}

// Config returns the configuration the session was built with.
func (s *Session) Config() core.RuntimeConfig {
	return s.cfg
}
