package snake

import "time"

// Countdown measures the round against wall time, independently of how many
// ticks have run.
type Countdown struct {
	start        time.Time
	totalSeconds int
}

// NewCountdown returns a countdown of totalSeconds. Call Start before use.
func NewCountdown(totalSeconds int) Countdown {
	return Countdown{totalSeconds: totalSeconds}
}

// Start records now as the beginning of the round.
func (c *Countdown) Start(now time.Time) {
	c.start = now
}

// Total returns the round length in seconds.
func (c Countdown) Total() int {
	return c.totalSeconds
}

// Remaining returns the whole seconds left at now, never below zero.
// Elapsed time is floored, so a 60s round shows 60 for its first second.
func (c Countdown) Remaining(now time.Time) int {
	elapsed := max(0, int(now.Sub(c.start)/time.Second))
	return max(0, c.totalSeconds-elapsed)
}

// Expired reports whether no time is left at now.
func (c Countdown) Expired(now time.Time) bool {
	return c.Remaining(now) == 0
}
