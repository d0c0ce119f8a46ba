package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Theme maps core.Color roles to lipgloss styles.
type Theme struct {
	styles map[core.Color]lipgloss.Style
}

// NewTheme builds a theme from configured #RRGGBB colors. The background
// color is left to the terminal; it only applies to image screenshots.
func NewTheme(c config.Colors) Theme {
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return Theme{styles: map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
		core.ColorGrid:    fg(c.Grid),
		core.ColorHead:    fg(c.Head).Bold(true),
		core.ColorBody:    fg(c.Body),
		core.ColorFood:    fg(c.Food),
		core.ColorHUD:     fg(c.HUD).Bold(true),
		core.ColorAlert:   fg(c.Over).Bold(true),
	}}
}

// Style returns the style for a color role, or the default style.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if style, ok := t.styles[c]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(theme.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
