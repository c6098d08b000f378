// Package review is the interactive accept/reject loop over a document's
// pending suggestions.
package review

import (
	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/suggest"
)

// Model tracks the focused mark of a document under review. It holds no
// copy of the marks; every call reads the document's store.
type Model struct {
	doc   *document.Document
	focus string
}

// NewModel focuses the first pending mark of doc.
func NewModel(doc *document.Document) *Model {
	m := &Model{doc: doc}
	if marks := m.Marks(); len(marks) > 0 {
		m.focus = marks[0].ID
	}
	return m
}

// Document returns the document under review.
func (m *Model) Document() *document.Document {
	return m.doc
}

// Marks returns the pending marks in document order.
func (m *Model) Marks() []suggest.Mark {
	st, ok := m.doc.Suggestions().Current()
	if !ok {
		return nil
	}
	return st.Marks
}

// Done reports whether no marks remain.
func (m *Model) Done() bool {
	return !m.doc.Suggestions().IsActive()
}

// Focused returns the focused mark and its index.
func (m *Model) Focused() (suggest.Mark, int, bool) {
	for i, mk := range m.Marks() {
		if mk.ID == m.focus {
			return mk, i, true
		}
	}
	return suggest.Mark{}, -1, false
}

// Focus moves focus to the mark with id.
func (m *Model) Focus(id string) bool {
	if _, ok := m.doc.Suggestions().Lookup(id); !ok {
		return false
	}
	m.focus = id
	return true
}

// Next focuses the following mark, wrapping at the end.
func (m *Model) Next() {
	m.step(1)
}

// Prev focuses the preceding mark, wrapping at the start.
func (m *Model) Prev() {
	m.step(-1)
}

func (m *Model) step(dir int) {
	marks := m.Marks()
	if len(marks) == 0 {
		m.focus = ""
		return
	}
	_, i, ok := m.Focused()
	if !ok {
		m.focus = marks[0].ID
		return
	}
	i = (i + dir + len(marks)) % len(marks)
	m.focus = marks[i].ID
}

// Resolve applies d to the focused mark and focuses the mark that follows
// it in the updated document.
func (m *Model) Resolve(d suggest.Decision) (document.Change, error) {
	mk, _, ok := m.Focused()
	if !ok {
		return document.Change{}, document.ErrNoSuggestions
	}
	ch, err := m.doc.Resolve(mk.ID, d)
	if err != nil {
		return document.Change{}, err
	}
	m.refocus(mk.From)
	return ch, nil
}

// ResolveAll applies d to every pending mark.
func (m *Model) ResolveAll(d suggest.Decision) (int, error) {
	n, _, err := m.doc.ResolveAll(d)
	if err != nil {
		return 0, err
	}
	m.focus = ""
	return n, nil
}

// refocus picks the first mark at or after offset, or the last mark.
func (m *Model) refocus(offset int) {
	marks := m.Marks()
	m.focus = ""
	for _, mk := range marks {
		if mk.From >= offset {
			m.focus = mk.ID
			return
		}
	}
	if len(marks) > 0 {
		m.focus = marks[len(marks)-1].ID
	}
}
