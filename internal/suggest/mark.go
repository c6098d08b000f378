package suggest

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/redline/internal/textedit"
)

// Line break symbols substituted for line breaks inside changed text.
const (
	NewlineAddSymbol    = "↵"
	NewlineRemoveSymbol = "¶"

	// NewlineChar is the line break a newline mark stands for. Input line
	// endings are normalized to it.
	NewlineChar = "\n"
)

// MarkType is the polarity of a suggestion mark.
type MarkType uint8

const (
	// MarkAdded denotes text that is new relative to the original.
	MarkAdded MarkType = iota
	// MarkRemoved denotes original text kept visible pending review.
	MarkRemoved
)

// String returns a human-readable representation of the mark type.
func (t MarkType) String() string {
	switch t {
	case MarkAdded:
		return "added"
	case MarkRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// ParseMarkType parses "added" or "removed".
func ParseMarkType(s string) (MarkType, error) {
	switch s {
	case "added":
		return MarkAdded, nil
	case "removed":
		return MarkRemoved, nil
	default:
		return 0, fmt.Errorf("unknown mark type %q", s)
	}
}

// Symbol returns the line break symbol for the polarity.
func (t MarkType) Symbol() string {
	if t == MarkRemoved {
		return NewlineRemoveSymbol
	}
	return NewlineAddSymbol
}

// Mark is one reviewable suggestion span.
// From and To are byte offsets into the document after the suggestion run
// was applied.
type Mark struct {
	ID              string   `json:"id"`
	From            int      `json:"from"`
	To              int      `json:"to"`
	Type            MarkType `json:"type"`
	IsNewlineChange bool     `json:"isNewlineChange,omitempty"`
	NewlineChar     string   `json:"newlineChar,omitempty"`
}

// Range returns the span covered by the mark.
func (m Mark) Range() textedit.Range {
	return textedit.Range{From: m.From, To: m.To}
}

// Len returns the byte length of the span.
func (m Mark) Len() int {
	return m.To - m.From
}

// String returns a short description of the mark.
func (m Mark) String() string {
	if m.IsNewlineChange {
		return fmt.Sprintf("%s newline [%d:%d)", m.Type, m.From, m.To)
	}
	return fmt.Sprintf("%s [%d:%d)", m.Type, m.From, m.To)
}

// NewID returns a new mark id. Ids are time-ordered UUIDs and are never
// reused within a process.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
