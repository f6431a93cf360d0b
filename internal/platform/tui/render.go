package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/battlefield/internal/core"
	"github.com/vovakirdan/battlefield/internal/surface"
)

// ansiCodes maps core colors to terminal color codes. ColorDefault is
// left unstyled.
var ansiCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var cellStyles = func() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(ansiCodes)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, code := range ansiCodes {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}()

// RenderSurface draws the visible part of a battlefield surface, cropped to
// cols x rows terminal cells. Hidden surfaces render as nothing. A
// non-positive limit leaves that axis uncropped.
func RenderSurface(s *surface.Surface, cols, rows int) string {
	if s == nil || !s.Visible {
		return ""
	}
	screen := s.Screen()
	w, h := screen.Width(), screen.Height()
	if cols > 0 {
		w = min(w, cols)
	}
	if rows > 0 {
		h = min(h, rows)
	}
	return renderCells(screen, w, h)
}

// renderCells styles runs of same-colored cells together so each run costs
// one escape sequence.
func renderCells(screen *core.Screen, w, h int) string {
	var sb strings.Builder
	sb.Grow(w*h*2 + h)

	var run strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; {
			color := screen.GetCell(x, y).Color
			run.Reset()
			for ; x < w; x++ {
				cell := screen.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			style, ok := cellStyles[color]
			if !ok {
				style = cellStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
