// internal/tui/drawing.go
package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const tabWidth = 4

// drawText draws s at (x, y) clipped to maxWidth cells and returns the
// number of cells used. Control characters are drawn as spaces.
func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	used := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterRunes := gr.Runes()
		clusterWidth := gr.Width()
		mainRune := clusterRunes[0]

		if mainRune == '\t' {
			spaces := tabWidth - (used % tabWidth)
			for i := 0; i < spaces && used < maxWidth; i++ {
				s.SetContent(x+used, y, ' ', nil, style)
				used++
			}
			continue
		}
		if mainRune < ' ' {
			mainRune, clusterRunes, clusterWidth = ' ', []rune{' '}, 1
		}
		if used+clusterWidth > maxWidth {
			break
		}
		s.SetContent(x+used, y, mainRune, clusterRunes[1:], style)
		// Fill remaining cells for wide characters
		for cw := 1; cw < clusterWidth; cw++ {
			s.SetContent(x+used+cw, y, ' ', nil, style)
		}
		used += clusterWidth
	}
	return used
}

// fill paints a rectangle with spaces.
func fill(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

// wrapText breaks text into lines no wider than width cells, honouring
// embedded newlines.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		var cur strings.Builder
		curWidth := 0
		gr := uniseg.NewGraphemes(para)
		for gr.Next() {
			w := gr.Width()
			if gr.Str() == "\t" {
				w = tabWidth
			}
			if curWidth+w > width && curWidth > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
				curWidth = 0
			}
			cur.WriteString(gr.Str())
			curWidth += w
		}
		lines = append(lines, cur.String())
	}
	return lines
}
