package snake

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func newTestGame(t *testing.T) (*Game, *core.ManualClock) {
	t.Helper()
	clock := core.NewManualClock(t0)
	g := NewWithClock(clock)
	cfg := testConfig()
	cfg.ScreenW, cfg.ScreenH = 100, 40
	if err := g.Reset(cfg); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return g, clock
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("game %q is not registered", ID)
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != ID || g.Title() != "Snake" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestGameResetRejectsBadConfig(t *testing.T) {
	g := NewWithClock(core.NewManualClock(t0))
	cfg := testConfig()
	cfg.GridH = -1

	err := g.Reset(cfg)
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("Reset() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestGameStepBeforeReset(t *testing.T) {
	g := New()
	res := g.Step(core.NewInputFrame())
	if res.State != (core.GameState{}) {
		t.Errorf("Step() before Reset = %+v, expected zero state", res.State)
	}
	g.Render(core.NewScreen(10, 5))
}

func TestGameStepUsesLastDirection(t *testing.T) {
	g, _ := newTestGame(t)
	g.session.snake.direction = core.DirRight
	parkFood(g.session, core.Point{X: 0, Y: 0})

	in := core.NewInputFrame()
	in.Set(core.ActionDown)
	in.Set(core.ActionUp)
	g.Step(in)

	if g.session.snake.Direction() != core.DirUp {
		t.Errorf("Direction() = %v, expected the last key (up) to win", g.session.snake.Direction())
	}
}

func TestGamePause(t *testing.T) {
	g, _ := newTestGame(t)
	parkFood(g.session, core.Point{X: 0, Y: 0})

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	res := g.Step(pause)
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}

	before := g.Snapshot()
	g.Step(core.NewInputFrame())
	if g.Snapshot().Tick != before.Tick {
		t.Error("paused game should not tick")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameRoundOverAndRestart(t *testing.T) {
	g, clock := newTestGame(t)

	clock.Advance(time.Minute)
	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("expected game over after the countdown")
	}
	if len(res.Events) == 0 || res.Events[len(res.Events)-1].Kind != core.EventRoundOver {
		t.Fatalf("Events = %+v, expected a round-over event", res.Events)
	}
	if res.Events[len(res.Events)-1].Detail != CauseTimeExpired.String() {
		t.Errorf("round-over detail = %q", res.Events[len(res.Events)-1].Detail)
	}

	// Movement keys are ignored while frozen.
	move := core.NewInputFrame()
	move.Set(core.ActionLeft)
	frozen := g.Snapshot()
	g.Step(move)
	if g.Snapshot().Tick != frozen.Tick {
		t.Error("game over state should be frozen")
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	res = g.Step(restart)
	if res.State.GameOver {
		t.Error("restart should return to playing")
	}
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventRestart {
		t.Errorf("Events = %+v, expected one restart event", res.Events)
	}
	if g.Snapshot().Remaining != 60 {
		t.Errorf("Remaining = %d after restart, expected 60", g.Snapshot().Remaining)
	}
}

func TestGameFoodEvent(t *testing.T) {
	g, _ := newTestGame(t)
	g.session.snake.direction = core.DirRight
	parkFood(g.session, g.session.snake.Head().Add(core.DirRight))

	res := g.Step(core.NewInputFrame())
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventFoodEaten {
		t.Fatalf("Events = %+v, expected food eaten", res.Events)
	}
	if res.State.Score != 10 {
		t.Errorf("Score = %d, expected 10", res.State.Score)
	}
}

func TestGameRender(t *testing.T) {
	g, _ := newTestGame(t)
	screen := core.NewScreen(100, 40)
	g.Render(screen)

	hud := screen.Row(0)
	if !strings.Contains(hud, "Time: 60s") || !strings.Contains(hud, "Score: 0") {
		t.Errorf("HUD row = %q", hud)
	}

	// 40 cells * 2 columns + border = 82 wide, centered in 100.
	boardX := (100 - 82) / 2
	if screen.Get(boardX, 1) != '┌' {
		t.Errorf("expected board corner at (%d, 1), row = %q", boardX, screen.Row(1))
	}

	snap := g.Snapshot()
	head := snap.Head()
	hx, hy := boardX+1+head.X*2, 2+head.Y
	if cell := screen.GetCell(hx, hy); cell.Color != core.ColorHead || cell.Rune != cellGlyph {
		t.Errorf("head cell at (%d, %d) = %+v", hx, hy, cell)
	}
	fx, fy := boardX+1+snap.Food.X*2, 2+snap.Food.Y
	if cell := screen.GetCell(fx, fy); cell.Color != core.ColorFood {
		t.Errorf("food cell at (%d, %d) = %+v", fx, fy, cell)
	}
}

func TestGameRenderGameOver(t *testing.T) {
	g, clock := newTestGame(t)
	g.session.snake.direction = core.DirRight
	parkFood(g.session, core.Point{X: 0, Y: 0})
	clock.Advance(2 * time.Minute)
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(100, 40)
	g.Render(screen)
	text := screen.String()

	for _, want := range []string{"Time's up!", "Final score: 0", "Press R to restart"} {
		if !strings.Contains(text, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g, _ := newTestGame(t)
	screen := core.NewScreen(60, 20)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected a too-small notice")
	}
}

func TestGameDebugState(t *testing.T) {
	g, _ := newTestGame(t)
	if !strings.Contains(g.DebugState(), "Phase: playing") {
		t.Errorf("DebugState() = %q", g.DebugState())
	}
}
