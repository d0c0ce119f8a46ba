package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// relocateTriesPerCell bounds the random probing in RelocateAvoiding before
// it switches to picking from the free cells directly.
const relocateTriesPerCell = 4

// Food is the single item the snake chases.
type Food struct {
	position core.Point
}

// Position returns where the food currently is.
func (f *Food) Position() core.Point {
	return f.position
}

// Randomize moves the food to a uniformly random cell. It does not look at
// the snake.
func (f *Food) Randomize(rng *rand.Rand, width, height int) {
	f.position = core.Point{X: rng.Intn(width), Y: rng.Intn(height)}
}

// RelocateAvoiding moves the food to a random cell not in occupied.
// Returns false, leaving the food where it was, only when every cell is
// occupied.
func (f *Food) RelocateAvoiding(rng *rand.Rand, occupied map[core.Point]struct{}, width, height int) bool {
	prev := f.position

	for range width * height * relocateTriesPerCell {
		f.Randomize(rng, width, height)
		if _, taken := occupied[f.position]; !taken {
			return true
		}
	}

	// Nearly full board: choose among what is left.
	free := make([]core.Point, 0, max(0, width*height-len(occupied)))
	for y := range height {
		for x := range width {
			p := core.Point{X: x, Y: y}
			if _, taken := occupied[p]; !taken {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		f.position = prev
		return false
	}
	f.position = free[rng.Intn(len(free))]
	return true
}
