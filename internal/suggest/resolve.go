package suggest

import (
	"fmt"

	"github.com/dshills/redline/internal/textedit"
)

// Decision is the review outcome for one mark.
type Decision uint8

const (
	// Accept takes the suggestion: added text stays, removed text goes.
	Accept Decision = iota
	// Reject discards the suggestion: added text goes, removed text stays.
	Reject
)

// String returns a human-readable representation of the decision.
func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseDecision parses "accept" or "reject".
func ParseDecision(s string) (Decision, error) {
	switch s {
	case "accept":
		return Accept, nil
	case "reject":
		return Reject, nil
	default:
		return 0, fmt.Errorf("unknown decision %q", s)
	}
}

// Keeps reports whether resolving a mark of type t with d keeps its text.
func (d Decision) Keeps(t MarkType) bool {
	return (t == MarkAdded) == (d == Accept)
}

// Resolve returns the document edit that resolves m with d.
//
// Kept plain text needs no change and yields a no-op edit; a kept newline
// mark turns its symbol back into the line break. Discarded text, symbol
// included, is deleted.
func Resolve(m Mark, d Decision) textedit.Edit {
	if !d.Keeps(m.Type) {
		return textedit.NewDelete(m.From, m.To)
	}
	if m.IsNewlineChange {
		nl := m.NewlineChar
		if nl == "" {
			nl = NewlineChar
		}
		return textedit.NewEdit(m.Range(), nl)
	}
	return textedit.NewInsert(m.From, "")
}

// ResolveText applies d to every mark in text and returns the plain result.
// Marks are document offsets into text and must satisfy the run invariants.
func ResolveText(text string, marks []Mark, d Decision) string {
	for i := len(marks) - 1; i >= 0; i-- {
		e := Resolve(marks[i], d)
		if e.IsNoOp() {
			continue
		}
		text = e.Apply(text)
	}
	return text
}
