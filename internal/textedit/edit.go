package textedit

import (
	"fmt"
	"strings"
)

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range Range  // The range to replace
	Text  string // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(r Range, text string) Edit {
	return Edit{Range: r, Text: text}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset int, text string) Edit {
	return Edit{Range: Range{From: offset, To: offset}, Text: text}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(from, to int) Edit {
	return Edit{Range: Range{From: from, To: to}}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.From, e.Text)
	}
	if e.Text == "" {
		return fmt.Sprintf("Delete%s", e.Range)
	}
	return fmt.Sprintf("Replace%s with %q", e.Range, e.Text)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.Text == ""
}

// Delta returns the change in document length caused by this edit.
func (e Edit) Delta() int {
	return len(e.Text) - e.Range.Len()
}

// End returns the offset just past the inserted text in the post-edit document.
func (e Edit) End() int {
	return e.Range.From + len(e.Text)
}

// Apply returns text with the edit applied. The caller validates the range.
func (e Edit) Apply(text string) string {
	var b strings.Builder
	b.Grow(len(text) + e.Delta())
	b.WriteString(text[:e.Range.From])
	b.WriteString(e.Text)
	b.WriteString(text[e.Range.To:])
	return b.String()
}

// NormalizeLineEndings converts "\r\n" and "\r" to "\n".
func NormalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
