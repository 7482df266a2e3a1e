package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tiles/internal/core"
)

// styles caches one lipgloss style per ANSI color code.
var styles [256]*lipgloss.Style

// emphasized colors are also drawn bold.
var emphasized = map[core.Color]bool{
	core.ColorBrightWhite: true,
	core.ColorGold:        true,
}

func styleFor(c core.Color) lipgloss.Style {
	if s := styles[c]; s != nil {
		return *s
	}
	s := lipgloss.NewStyle()
	if c != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(strconv.Itoa(int(c)))).Bold(emphasized[c])
	}
	styles[c] = &s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color share a single styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(styleFor(color).Render(run.String()))
			}
		}
	}
	return sb.String()
}
