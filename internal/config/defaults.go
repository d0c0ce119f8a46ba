package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:  40,
			Height: 30,
		},
		Session: SessionConfig{
			DurationSeconds: 60,
			InitialLength:   3,
			TickRate:        10,
			Seed:            0,
		},
		Render: RenderConfig{
			CellWidth:  2,
			CellSizePx: 20,
			Colors: Colors{
				Background: "#000000",
				Grid:       "#585858",
				Head:       "#00FF00",
				Body:       "#008000",
				Food:       "#FF0000",
				HUD:        "#FFFFFF",
				Over:       "#FF5F5F",
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
