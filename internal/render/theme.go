package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the colors used for marked spans.
type Theme struct {
	Added   colorful.Color
	Removed colorful.Color
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() Theme {
	t, _ := ThemeFromHex("#2e7d32", "#c62828")
	return t
}

// ThemeFromHex parses "#RRGGBB" colors for added and removed text.
func ThemeFromHex(added, removed string) (Theme, error) {
	a, err := colorful.Hex(added)
	if err != nil {
		return Theme{}, fmt.Errorf("added color %q: %w", added, err)
	}
	r, err := colorful.Hex(removed)
	if err != nil {
		return Theme{}, fmt.Errorf("removed color %q: %w", removed, err)
	}
	return Theme{Added: a, Removed: r}, nil
}

// Color returns the foreground color for a kind.
func (t Theme) Color(k Kind) (colorful.Color, bool) {
	switch k {
	case KindAdded:
		return t.Added, true
	case KindRemoved:
		return t.Removed, true
	}
	return colorful.Color{}, false
}

// Tint returns a pale version of the kind's color, blended toward white in
// Lab space, for highlighting the focused mark.
func (t Theme) Tint(k Kind) (colorful.Color, bool) {
	c, ok := t.Color(k)
	if !ok {
		return colorful.Color{}, false
	}
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.8).Clamped(), true
}

// Style returns the tcell style for a span kind. Focused spans get a
// tinted background.
func (t Theme) Style(k Kind, focused bool) tcell.Style {
	style := tcell.StyleDefault
	c, ok := t.Color(k)
	if !ok {
		return style
	}
	style = style.Foreground(tcellColor(c))
	switch k {
	case KindAdded:
		style = style.Underline(true)
	case KindRemoved:
		style = style.StrikeThrough(true)
	}
	if focused {
		bg, _ := t.Tint(k)
		style = style.Background(tcellColor(bg)).Bold(true)
	}
	return style
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
