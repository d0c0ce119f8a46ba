// Package config provides YAML-based configuration loading for the snake
// game and converts it into the runtime settings the simulation consumes.
package config

import (
	"fmt"
	"regexp"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = core.ErrInvalidConfig

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Session SessionConfig `yaml:"session"`
	Render  RenderConfig  `yaml:"render"`
}

// GridConfig defines the playfield size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SessionConfig defines round rules and pacing.
type SessionConfig struct {
	DurationSeconds int   `yaml:"duration_seconds"`
	InitialLength   int   `yaml:"initial_length"`
	TickRate        int   `yaml:"tick_rate"`
	Seed            int64 `yaml:"seed"` // 0 = time based
}

// RenderConfig defines how the board is drawn.
type RenderConfig struct {
	CellWidth  int    `yaml:"cell_width"`   // Terminal columns per cell
	CellSizePx int    `yaml:"cell_size_px"` // PNG pixels per cell
	Colors     Colors `yaml:"colors"`
}

// Colors holds one #RRGGBB value per drawn entity.
type Colors struct {
	Background string `yaml:"background"`
	Grid       string `yaml:"grid"`
	Head       string `yaml:"head"`
	Body       string `yaml:"body"`
	Food       string `yaml:"food"`
	HUD        string `yaml:"hud"`
	Over       string `yaml:"over"`
}

// Overrides carries command-line values that replace file settings.
// Nil fields leave the file value untouched.
type Overrides struct {
	Width    *int
	Height   *int
	Duration *int
	TickRate *int
	Seed     *int64
}

const (
	maxCellWidth  = 4
	maxCellSizePx = 256
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Apply copies every set override into cfg.
func (cfg *SnakeConfig) Apply(o Overrides) {
	if o.Width != nil {
		cfg.Grid.Width = *o.Width
	}
	if o.Height != nil {
		cfg.Grid.Height = *o.Height
	}
	if o.Duration != nil {
		cfg.Session.DurationSeconds = *o.Duration
	}
	if o.TickRate != nil {
		cfg.Session.TickRate = *o.TickRate
	}
	if o.Seed != nil {
		cfg.Session.Seed = *o.Seed
	}
}

// Runtime converts the file configuration into game settings for a screen
// of the given size.
func (cfg SnakeConfig) Runtime(screenW, screenH int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:       screenW,
		ScreenH:       screenH,
		TickRate:      cfg.Session.TickRate,
		Seed:          cfg.Session.Seed,
		GridW:         cfg.Grid.Width,
		GridH:         cfg.Grid.Height,
		RoundSeconds:  cfg.Session.DurationSeconds,
		InitialLength: cfg.Session.InitialLength,
		CellWidth:     cfg.Render.CellWidth,
	}
}

// Validate checks simulation and render settings.
func (cfg SnakeConfig) Validate() error {
	if err := cfg.Runtime(0, 0).Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.Render.CellWidth < 1 || cfg.Render.CellWidth > maxCellWidth {
		return fmt.Errorf("config: %w: cell_width must be 1..%d, got %d",
			ErrInvalid, maxCellWidth, cfg.Render.CellWidth)
	}
	if cfg.Render.CellSizePx < 1 || cfg.Render.CellSizePx > maxCellSizePx {
		return fmt.Errorf("config: %w: cell_size_px must be 1..%d, got %d",
			ErrInvalid, maxCellSizePx, cfg.Render.CellSizePx)
	}

	c := cfg.Render.Colors
	for _, entry := range []struct{ name, value string }{
		{"background", c.Background},
		{"grid", c.Grid},
		{"head", c.Head},
		{"body", c.Body},
		{"food", c.Food},
		{"hud", c.HUD},
		{"over", c.Over},
	} {
		if !hexColor.MatchString(entry.value) {
			return fmt.Errorf("config: %w: color %s must look like #RRGGBB, got %q",
				ErrInvalid, entry.name, entry.value)
		}
	}
	return nil
}
