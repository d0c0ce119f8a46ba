package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	var embedded SnakeConfig
	if err := yaml.Unmarshal(DefaultYAML(), &embedded); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if embedded != DefaultSnakeConfig() {
		t.Errorf("embedded default = %+v\nbuiltin default = %+v", embedded, DefaultSnakeConfig())
	}
	if err := embedded.Validate(); err != nil {
		t.Errorf("embedded default is invalid: %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "home", "config.yaml")
	local := filepath.Join(dir, "configs", "snake.yaml")

	t.Run("embedded when nothing exists", func(t *testing.T) {
		cfg, src, err := loadFrom("", []string{user, local})
		if err != nil {
			t.Fatal(err)
		}
		if src != SourceEmbedded || cfg != DefaultSnakeConfig() {
			t.Errorf("source = %q, cfg = %+v", src, cfg)
		}
	})

	writeFile(t, dir, "configs/snake.yaml", "grid:\n  width: 25\n")
	t.Run("local file", func(t *testing.T) {
		cfg, src, err := loadFrom("", []string{user, local})
		if err != nil {
			t.Fatal(err)
		}
		if src != local || cfg.Grid.Width != 25 {
			t.Errorf("source = %q, width = %d", src, cfg.Grid.Width)
		}
	})

	writeFile(t, dir, "home/config.yaml", "grid:\n  width: 30\n")
	t.Run("user file wins over local", func(t *testing.T) {
		cfg, src, err := loadFrom("", []string{user, local})
		if err != nil {
			t.Fatal(err)
		}
		if src != user || cfg.Grid.Width != 30 {
			t.Errorf("source = %q, width = %d", src, cfg.Grid.Width)
		}
	})

	custom := writeFile(t, dir, "custom.yaml", "grid:\n  width: 35\n")
	t.Run("custom path wins over everything", func(t *testing.T) {
		cfg, src, err := loadFrom(custom, []string{user, local})
		if err != nil {
			t.Fatal(err)
		}
		if src != custom || cfg.Grid.Width != 35 {
			t.Errorf("source = %q, width = %d", src, cfg.Grid.Width)
		}
	})
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, _, err := loadFrom(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, expected not-exist", err)
	}
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "snake.yaml", `
session:
  duration_seconds: 90
render:
  colors:
    head: "#123456"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultSnakeConfig()
	want.Session.DurationSeconds = 90
	want.Render.Colors.Head = "#123456"
	if cfg != want {
		t.Errorf("LoadFile() = %+v\nexpected %+v", cfg, want)
	}
}

func TestLoadFileBadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "snake.yaml", "grid: [1, 2\n")
	if _, err := LoadFile(path); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("LoadFile() error = %v, expected a parse error", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	w, h, d, fps := 12, 8, 30, 20
	seed := int64(77)

	cfg := DefaultSnakeConfig()
	cfg.Apply(Overrides{Width: &w, Height: &h, Duration: &d, TickRate: &fps, Seed: &seed})

	rt := cfg.Runtime(100, 50)
	if rt.GridW != 12 || rt.GridH != 8 || rt.RoundSeconds != 30 || rt.TickRate != 20 || rt.Seed != 77 {
		t.Errorf("Runtime() = %+v", rt)
	}
	if rt.ScreenW != 100 || rt.ScreenH != 50 || rt.CellWidth != 2 || rt.InitialLength != 3 {
		t.Errorf("Runtime() = %+v", rt)
	}

	cfg = DefaultSnakeConfig()
	cfg.Apply(Overrides{})
	if cfg != DefaultSnakeConfig() {
		t.Error("empty overrides changed the config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SnakeConfig)
		valid  bool
	}{
		{"defaults", func(*SnakeConfig) {}, true},
		{"zero width", func(c *SnakeConfig) { c.Grid.Width = 0 }, false},
		{"negative height", func(c *SnakeConfig) { c.Grid.Height = -3 }, false},
		{"zero duration", func(c *SnakeConfig) { c.Session.DurationSeconds = 0 }, false},
		{"zero initial length", func(c *SnakeConfig) { c.Session.InitialLength = 0 }, false},
		{"snake fills grid", func(c *SnakeConfig) {
			c.Grid.Width, c.Grid.Height, c.Session.InitialLength = 2, 2, 4
		}, false},
		{"tiny grid with room", func(c *SnakeConfig) {
			c.Grid.Width, c.Grid.Height, c.Session.InitialLength = 2, 2, 3
		}, true},
		{"zero tick rate", func(c *SnakeConfig) { c.Session.TickRate = 0 }, false},
		{"cell width too wide", func(c *SnakeConfig) { c.Render.CellWidth = 5 }, false},
		{"zero cell size", func(c *SnakeConfig) { c.Render.CellSizePx = 0 }, false},
		{"named color", func(c *SnakeConfig) { c.Render.Colors.Food = "red" }, false},
		{"short hex", func(c *SnakeConfig) { c.Render.Colors.Grid = "#fff" }, false},
		{"lowercase hex", func(c *SnakeConfig) { c.Render.Colors.Body = "#a0b0c0" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestMarshalRoundTripsThroughLoad(t *testing.T) {
	cfg := DefaultSnakeConfig()
	cfg.Grid.Width = 17
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "duration_seconds: 60") {
		t.Errorf("Marshal() output missing snake_case keys:\n%s", data)
	}

	path := writeFile(t, t.TempDir(), "out.yaml", string(data))
	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Errorf("LoadFile(Marshal(cfg)) = %+v, expected %+v", got, cfg)
	}
}
