package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Cell is one grapheme cluster placed on a line.
type Cell struct {
	Cluster string
	Width   int
	Kind    Kind
	MarkID  string
	Offset  int
}

// Line is a row of cells after wrapping.
type Line []Cell

// Layout wraps spans into lines no wider than width columns. Newline marks
// end the line after their symbol.
func Layout(spans []Span, width int) []Line {
	if width < 1 {
		width = 1
	}
	var (
		lines []Line
		cur   Line
		col   int
	)
	flush := func() {
		lines = append(lines, cur)
		cur, col = nil, 0
	}

	for _, sp := range spans {
		rest := sp.Text
		off := sp.Range.From
		state := -1
		for rest != "" {
			var cluster string
			var w int
			cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
			pos := off
			off += len(cluster)

			if cluster == "\n" || cluster == "\r\n" {
				flush()
				continue
			}
			if w == 0 {
				w = 1
			}
			if col+w > width && col > 0 {
				flush()
			}
			cur = append(cur, Cell{Cluster: cluster, Width: w, Kind: sp.Kind, MarkID: sp.MarkID, Offset: pos})
			col += w
		}
		if sp.Newline {
			flush()
		}
	}
	return append(lines, cur)
}

// LineOf returns the first line holding a cell of the mark, or -1.
func LineOf(lines []Line, markID string) int {
	for i, l := range lines {
		for _, c := range l {
			if c.MarkID == markID {
				return i
			}
		}
	}
	return -1
}

// Rect is a screen area.
type Rect struct {
	X, Y, Width, Height int
}

// Draw paints lines[top:] into area. Cells of the focused mark are drawn
// with the focus style.
func Draw(s tcell.Screen, area Rect, lines []Line, top int, theme Theme, focus string) {
	for y := 0; y < area.Height; y++ {
		for x := 0; x < area.Width; x++ {
			s.SetContent(area.X+x, area.Y+y, ' ', nil, tcell.StyleDefault)
		}
		i := top + y
		if i < 0 || i >= len(lines) {
			continue
		}
		x := 0
		for _, c := range lines[i] {
			if x+c.Width > area.Width {
				break
			}
			runes := []rune(c.Cluster)
			style := theme.Style(c.Kind, focus != "" && c.MarkID == focus)
			s.SetContent(area.X+x, area.Y+y, runes[0], runes[1:], style)
			x += c.Width
		}
	}
}
