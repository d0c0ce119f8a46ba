// Package snake implements the countdown snake game: a snake on a toroidal
// grid that grows by eating food, dies by running into itself, and races a
// fixed round timer.
//
// Session holds the rules and is driven with explicit directions and
// timestamps. Game adapts a Session to the platform's registry.Game
// interface, reading time from an injected core.Clock.
package snake

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "snake"

const (
	hudHeight = 1
	cellGlyph = '█'
	gridGlyph = '·'
)

// Game implements registry.Game on top of a Session.
type Game struct {
	clock   core.Clock
	session *Session
	paused  bool
	cellW   int
}

// New creates a game reading the wall clock.
func New() *Game {
	return NewWithClock(core.SystemClock{})
}

// NewWithClock creates a game reading time from clock.
func NewWithClock(clock core.Clock) *Game {
	return &Game{clock: clock, cellW: 1}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset builds a fresh session from cfg. Invalid configurations are rejected
// here, before any tick runs.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	session, err := NewSession(cfg, rand.New(rand.NewSource(cfg.Seed)), g.clock.Now())
	if err != nil {
		return fmt.Errorf("snake: %w", err)
	}
	g.session = session
	g.paused = false
	g.cellW = max(1, cfg.CellWidth)
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}
	now := g.clock.Now()
	var events []core.Event

	if g.session.Phase() == PhaseGameOver {
		// Frozen until restart; every other input is ignored.
		if input.Has(core.ActionRestart) && g.session.Restart(now) {
			g.paused = false
			events = append(events, core.Event{Kind: core.EventRestart})
		}
		return core.StepResult{State: g.State(), Events: events}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	res := g.session.Tick(input.Direction(), now)
	if res.Ate {
		events = append(events, core.Event{
			Kind:   core.EventFoodEaten,
			Detail: fmt.Sprintf("score=%d", g.session.Score()),
		})
	}
	if res.Ended != CauseNone {
		events = append(events, core.Event{Kind: core.EventRoundOver, Detail: res.Ended.String()})
	}

	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Phase() == PhaseGameOver,
		Paused:   g.paused,
	}
}

// Snapshot returns the current session snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.session.Snapshot(g.clock.Now())
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	snap := g.Snapshot()

	g.renderHUD(dst, snap)

	boardW := snap.Width*g.cellW + 2
	boardH := snap.Height + 2
	if dst.Width() < boardW || dst.Height() < boardH+hudHeight {
		g.renderOverlay(dst, core.ColorAlert,
			"Window too small",
			fmt.Sprintf("Need %dx%d, have %dx%d", boardW, boardH+hudHeight, dst.Width(), dst.Height()))
		return
	}

	board := core.NewRect((dst.Width()-boardW)/2, hudHeight, boardW, boardH)
	dst.DrawBox(board, core.ColorGrid)
	g.renderGrid(dst, board, snap)
	g.renderCell(dst, board, snap.Food, core.ColorFood)
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		color := core.ColorBody
		if i == 0 {
			color = core.ColorHead
		}
		g.renderCell(dst, board, snap.Snake[i], color)
	}

	switch {
	case snap.Phase == PhaseGameOver:
		g.renderOverlay(dst, core.ColorAlert,
			gameOverMessage(snap.Cause),
			fmt.Sprintf("Final score: %d", snap.Score),
			"Press R to restart")
	case g.paused:
		g.renderOverlay(dst, core.ColorHUD, "Paused", "Press P to continue")
	}
}

func gameOverMessage(c Cause) string {
	switch c {
	case CauseTimeExpired:
		return "Game over! Time's up!"
	case CauseSelfCollision:
		return "Game over! You ran into yourself!"
	default:
		return "Game over!"
	}
}

// renderHUD draws the timer on the left and the score on the right.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Time: %ds", snap.Remaining), core.ColorHUD)

	score := fmt.Sprintf("Score: %d", snap.Score)
	dst.DrawTextColored(dst.Width()-len(score)-1, 0, score, core.ColorHUD)
}

// renderGrid fills the playfield with faint dots, one per cell.
func (g *Game) renderGrid(dst *core.Screen, board core.Rect, snap Snapshot) {
	for y := range snap.Height {
		for x := range snap.Width {
			dst.SetColored(board.X+1+x*g.cellW, board.Y+1+y, gridGlyph, core.ColorGrid)
		}
	}
}

// renderCell paints one grid cell, cellW columns wide.
func (g *Game) renderCell(dst *core.Screen, board core.Rect, p core.Point, color core.Color) {
	sx := board.X + 1 + p.X*g.cellW
	sy := board.Y + 1 + p.Y
	for i := range g.cellW {
		dst.SetColored(sx+i, sy, cellGlyph, color)
	}
}

// renderOverlay draws a centered box with the given lines. The first line
// uses titleColor.
func (g *Game) renderOverlay(dst *core.Screen, titleColor core.Color, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}

	screen := core.NewRect(0, 0, dst.Width(), dst.Height())
	box := screen.Centered(maxLen+4, len(lines)*2+1)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorHUD)

	for i, l := range lines {
		color := core.ColorHUD
		if i == 0 {
			color = titleColor
		}
		pad := (box.W - len([]rune(l))) / 2
		dst.DrawTextColored(box.X+pad, box.Y+1+i*2, l, color)
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	if g.session == nil {
		return "not started\n"
	}
	snap := g.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d, Remaining: %ds\n", snap.Tick, snap.Score, snap.Remaining)
	fmt.Fprintf(&b, "Snake len: %d (committed %d), Direction: %s\n", len(snap.Snake), snap.Length, snap.Direction)
	fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d)\n", snap.Head().X, snap.Head().Y, snap.Food.X, snap.Food.Y)
	fmt.Fprintf(&b, "Phase: %s, Cause: %s, Paused: %v\n", snap.Phase, snap.Cause, g.paused)
	return b.String()
}
