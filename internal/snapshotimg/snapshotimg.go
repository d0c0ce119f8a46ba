// Package snapshotimg renders snake snapshots to raster images for
// screenshots.
package snapshotimg

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Render draws the board in snap at cellPx pixels per grid cell.
func Render(snap snake.Snapshot, colors config.Colors, cellPx int) image.Image {
	cellPx = max(1, cellPx)
	width := snap.Width * cellPx
	height := snap.Height * cellPx

	dc := gg.NewContext(width, height)
	dc.SetHexColor(colors.Background)
	dc.Clear()

	renderGrid(dc, width, height, cellPx, colors.Grid)
	fillCell(dc, snap.Food, cellPx, colors.Food)

	// Tail first so the head ends up on top.
	for i := len(snap.Snake) - 1; i >= 1; i-- {
		fillCell(dc, snap.Snake[i], cellPx, colors.Body)
	}
	if len(snap.Snake) > 0 {
		fillCell(dc, snap.Snake[0], cellPx, colors.Head)
	}
	return dc.Image()
}

func renderGrid(dc *gg.Context, width, height, cellPx int, hex string) {
	dc.SetHexColor(hex)
	dc.SetLineWidth(1)
	for x := 0; x <= width; x += cellPx {
		dc.DrawLine(float64(x), 0, float64(x), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= height; y += cellPx {
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}
}

func fillCell(dc *gg.Context, p core.Point, cellPx int, hex string) {
	dc.SetHexColor(hex)
	dc.DrawRectangle(float64(p.X*cellPx), float64(p.Y*cellPx), float64(cellPx), float64(cellPx))
	dc.Fill()
}

// Save writes img to path, creating parent directories. The format follows
// the file extension (png, jpg, gif, bmp, tiff).
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("snapshotimg: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("snapshotimg: save %s: %w", path, err)
	}
	return nil
}
