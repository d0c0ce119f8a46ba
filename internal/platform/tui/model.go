package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snapshotimg"
)

// helpHeight is the number of rows reserved below the game for key help.
const helpHeight = 1

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// Options configures the platform around a game.
type Options struct {
	Logger        *log.Logger               // Defaults to a discarding logger
	Render        config.RenderConfig       // Colors and screenshot cell size
	Reloads       <-chan config.SnakeConfig // Optional config watcher output
	ScreenshotDir string                    // Defaults to ~/.snake/screenshots
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.ScreenshotDir == "" {
		o.ScreenshotDir = defaultScreenshotDir()
	}
	if o.Render == (config.RenderConfig{}) {
		o.Render = config.DefaultSnakeConfig().Render
	}
	return o
}

// ConfigReloadedMsg carries a configuration picked up by the file watcher.
type ConfigReloadedMsg struct {
	Config config.SnakeConfig
}

// snapshotter is implemented by games that can be rendered to an image.
type snapshotter interface {
	Snapshot() snake.Snapshot
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	render    config.RenderConfig
	pending   *config.SnakeConfig // Applied at the next restart
	theme     Theme
	keys      KeyMap
	help      help.Model
	input     core.InputFrame
	gameState core.GameState
	logger    *log.Logger
	reloads   <-chan config.SnakeConfig
	shotDir   string
	status    string
	quitting  bool
}

// NewModel creates a new Bubble Tea model for a game that has already been
// Reset with cfg.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	opts = opts.withDefaults()

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH-helpHeight),
		config:    cfg,
		render:    opts.Render,
		theme:     NewTheme(opts.Render.Colors),
		keys:      DefaultKeyMap(),
		help:      h,
		input:     core.NewInputFrame(),
		gameState: game.State(),
		logger:    opts.Logger,
		reloads:   opts.Reloads,
		shotDir:   opts.ScreenshotDir,
	}
}

// Init starts the tick loop and, if configured, listens for reloads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), waitForReload(m.reloads))
}

// waitForReload blocks on the watcher channel and turns the next config
// into a message.
func waitForReload(ch <-chan config.SnakeConfig) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ConfigReloadedMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey buffers the action for the next tick. Quit and screenshots act
// immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

// handleResize only changes the viewport; the grid size comes from config.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-helpHeight)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.input)
	m.gameState = result.State
	m.input.Clear()

	for _, ev := range result.Events {
		switch ev.Kind {
		case core.EventFoodEaten:
			m.logger.Debug("food eaten", "detail", ev.Detail)
		case core.EventRoundOver:
			m.logger.Info("round over", "cause", ev.Detail, "score", m.gameState.Score)
		case core.EventRestart:
			m.logger.Info("round restarted")
			m.applyPending()
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// handleReload switches colors right away and queues everything else for
// the next restart so a running round keeps its rules.
func (m Model) handleReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	cfg := msg.Config
	m.render = cfg.Render
	m.theme = NewTheme(cfg.Render.Colors)
	m.pending = &cfg
	m.logger.Info("config reload queued for next round")
	return m, waitForReload(m.reloads)
}

func (m *Model) applyPending() {
	if m.pending == nil {
		return
	}
	next := WithSeed(m.pending.Runtime(m.config.ScreenW, m.config.ScreenH))
	m.pending = nil

	if err := m.game.Reset(next); err != nil {
		m.logger.Warn("reloaded config rejected", "error", err)
		return
	}
	m.config = next
	m.gameState = m.game.State()
	m.logger.Info("round started", "seed", next.Seed, "grid", fmt.Sprintf("%dx%d", next.GridW, next.GridH))
}

// saveScreenshot writes the current screen as text and, when the game
// supports it, the board as a PNG.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		m.status = "screenshot failed"
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	base := filepath.Join(m.shotDir, fmt.Sprintf("%s_%s", m.game.ID(), timestamp))

	if err := os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		m.status = "screenshot failed"
		return
	}
	if s, ok := m.game.(snapshotter); ok {
		img := snapshotimg.Render(s.Snapshot(), m.render.Colors, m.render.CellSizePx)
		if err := snapshotimg.Save(base+".png", img); err != nil {
			m.logger.Warn("image screenshot failed", "error", err)
		}
	}

	m.logger.Info("screenshot saved", "path", base)
	m.status = "saved " + filepath.Base(base)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer += "  " + statusStyle.Render(m.status)
	}
	return RenderScreen(m.screen, m.theme) + "\n" + footer
}

// WithSeed replaces a zero seed with a time-based one.
func WithSeed(cfg core.RuntimeConfig) core.RuntimeConfig {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// Run resets the game with cfg and runs it until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	opts = opts.withDefaults()
	cfg = WithSeed(cfg)

	if err := game.Reset(cfg); err != nil {
		return err
	}
	opts.Logger.Info("round started", "seed", cfg.Seed, "grid", fmt.Sprintf("%dx%d", cfg.GridW, cfg.GridH))

	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshots"
	}
	return filepath.Join(home, ".snake", "screenshots")
}
