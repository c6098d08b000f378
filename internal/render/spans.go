package render

import (
	"github.com/dshills/redline/internal/suggest"
	"github.com/dshills/redline/internal/textedit"
)

// Kind classifies a span.
type Kind uint8

const (
	KindPlain Kind = iota
	KindAdded
	KindRemoved
)

// Span is a run of text with a single kind.
type Span struct {
	Text  string
	Kind  Kind
	Range textedit.Range

	// MarkID and Newline are set for marked spans only.
	MarkID  string
	Newline bool
}

// Spans splits text at the mark boundaries. Marks must be ordered and
// non-overlapping; parts of a mark beyond the text are clipped.
func Spans(text string, marks []suggest.Mark) []Span {
	var out []Span
	pos := 0
	for _, m := range marks {
		from, to := clamp(m.From, pos, len(text)), clamp(m.To, 0, len(text))
		if to <= from {
			continue
		}
		if from > pos {
			out = append(out, plain(text, pos, from))
		}
		out = append(out, Span{
			Text:    text[from:to],
			Kind:    kindOf(m.Type),
			Range:   textedit.NewRange(from, to),
			MarkID:  m.ID,
			Newline: m.IsNewlineChange,
		})
		pos = to
	}
	if pos < len(text) {
		out = append(out, plain(text, pos, len(text)))
	}
	return out
}

func plain(text string, from, to int) Span {
	return Span{Text: text[from:to], Kind: KindPlain, Range: textedit.NewRange(from, to)}
}

func kindOf(t suggest.MarkType) Kind {
	if t == suggest.MarkRemoved {
		return KindRemoved
	}
	return KindAdded
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
