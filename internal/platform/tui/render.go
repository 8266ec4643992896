package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cuberunner/internal/core"
)

const maxStyles = 4096

type colorPair struct {
	fg, bg core.RGB
}

// Renderer converts screens to styled strings, caching one style per color
// pair. The cache is dropped once it grows past maxStyles.
type Renderer struct {
	styles map[colorPair]lipgloss.Style
}

// NewRenderer creates a renderer with an empty style cache.
func NewRenderer() *Renderer {
	return &Renderer{styles: make(map[colorPair]lipgloss.Style)}
}

func (r *Renderer) style(p colorPair) lipgloss.Style {
	if st, ok := r.styles[p]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if !p.fg.IsZero() {
		st = st.Foreground(lipgloss.Color(p.fg.Hex()))
	}
	if !p.bg.IsZero() {
		st = st.Background(lipgloss.Color(p.bg.Hex()))
	}
	if len(r.styles) >= maxStyles {
		clear(r.styles)
	}
	r.styles[p] = st
	return st
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
// Cells without a background take the screen background.
func (r *Renderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	bg := s.Background()

	pairAt := func(x, y int) colorPair {
		c := s.GetCell(x, y)
		p := colorPair{fg: c.FG, bg: c.BG}
		if p.bg.IsZero() {
			p.bg = bg
		}
		return p
	}

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := pairAt(x, y)

			var run strings.Builder
			for x < s.Width() && pairAt(x, y) == start {
				run.WriteRune(s.GetCell(x, y).Rune)
				x++
			}

			sb.WriteString(r.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders a screen with a throwaway style cache.
func RenderScreen(s *core.Screen) string {
	return NewRenderer().Render(s)
}
