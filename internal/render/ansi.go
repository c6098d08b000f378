package render

import (
	"io"
	"strings"

	"github.com/fatih/color"
)

// ANSIOptions controls WriteANSI.
type ANSIOptions struct {
	// Color enables escape sequences. Without it, marks are written in
	// word-diff brackets: {+added+} and [-removed-].
	Color bool
	Theme Theme
}

type ansiStyles struct {
	added   *color.Color
	removed *color.Color
}

func newANSIStyles(opts ANSIOptions) ansiStyles {
	mk := func(k Kind, attr color.Attribute) *color.Color {
		fg, _ := opts.Theme.Color(k)
		r, g, b := fg.RGB255()
		c := color.RGB(int(r), int(g), int(b)).Add(attr)
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return ansiStyles{
		added:   mk(KindAdded, color.Underline),
		removed: mk(KindRemoved, color.CrossedOut),
	}
}

// WriteANSI writes spans to w. Newline marks are followed by a real line
// break so the output keeps its line structure.
func WriteANSI(w io.Writer, spans []Span, opts ANSIOptions) error {
	st := newANSIStyles(opts)
	var b strings.Builder
	for _, sp := range spans {
		switch sp.Kind {
		case KindPlain:
			b.WriteString(sp.Text)
			continue
		case KindAdded:
			if opts.Color {
				b.WriteString(st.added.Sprint(sp.Text))
			} else {
				b.WriteString("{+" + sp.Text + "+}")
			}
		case KindRemoved:
			if opts.Color {
				b.WriteString(st.removed.Sprint(sp.Text))
			} else {
				b.WriteString("[-" + sp.Text + "-]")
			}
		}
		if sp.Newline && !strings.HasSuffix(sp.Text, "\n") {
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
