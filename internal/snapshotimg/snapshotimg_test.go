package snapshotimg

import (
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func testSnapshot() snake.Snapshot {
	return snake.Snapshot{
		Snake:  []core.Point{{X: 1, Y: 1}, {X: 0, Y: 1}},
		Food:   core.Point{X: 3, Y: 2},
		Width:  4,
		Height: 3,
	}
}

func testColors() config.Colors {
	return config.Colors{
		Background: "#000000",
		Grid:       "#202020",
		Head:       "#00FF00",
		Body:       "#008000",
		Food:       "#FF0000",
		HUD:        "#FFFFFF",
		Over:       "#FF0000",
	}
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestRender(t *testing.T) {
	img := Render(testSnapshot(), testColors(), 10)

	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("Bounds() = %v, expected 40x30", b)
	}

	tests := []struct {
		name     string
		cell     core.Point
		expected color.RGBA
	}{
		{"head", core.Point{X: 1, Y: 1}, color.RGBA{0, 255, 0, 255}},
		{"body", core.Point{X: 0, Y: 1}, color.RGBA{0, 128, 0, 255}},
		{"food", core.Point{X: 3, Y: 2}, color.RGBA{255, 0, 0, 255}},
		{"empty", core.Point{X: 2, Y: 0}, color.RGBA{0, 0, 0, 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Sample the cell center, away from grid lines.
			got := rgba(img.At(tc.cell.X*10+5, tc.cell.Y*10+5))
			if got != tc.expected {
				t.Errorf("pixel = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRenderClampsCellSize(t *testing.T) {
	img := Render(testSnapshot(), testColors(), 0)
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("Bounds() = %v, expected one pixel per cell", b)
	}
}

func TestSave(t *testing.T) {
	img := Render(testSnapshot(), testColors(), 8)
	dir := t.TempDir()

	for _, name := range []string{"shot.png", "nested/shot.jpg"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, img); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}
			back, err := imaging.Open(path)
			if err != nil {
				t.Fatalf("Open() failed: %v", err)
			}
			if back.Bounds().Dx() != 32 || back.Bounds().Dy() != 24 {
				t.Errorf("saved image is %v, expected 32x24", back.Bounds())
			}
		})
	}

	err := Save(filepath.Join(dir, "shot.unknown"), img)
	if !errors.Is(err, imaging.ErrUnsupportedFormat) {
		t.Errorf("Save() error = %v, expected ErrUnsupportedFormat", err)
	}
}
