package document

import (
	"fmt"

	"github.com/dshills/redline/internal/suggest"
	"github.com/dshills/redline/internal/textedit"
)

// Resolve accepts or rejects one suggestion mark. The resolving edit and
// the removal of the mark are one transaction; the remaining marks are
// re-synchronized from the edit.
func (d *Document) Resolve(id string, decision suggest.Decision) (Change, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	m, ok := d.suggestions.Lookup(id)
	if !ok {
		return Change{}, fmt.Errorf("%w: %s", suggest.ErrMarkNotFound, id)
	}

	tx := Transaction{Effects: []suggest.Effect{suggest.DropEffect{ID: id}}}
	if e := suggest.Resolve(m, decision); !e.IsNoOp() {
		tx.Edit = &e
	}
	return d.dispatchLocked(tx)
}

// ResolveAll applies decision to every pending mark as one transaction and
// returns the number of marks resolved.
func (d *Document) ResolveAll(decision suggest.Decision) (int, Change, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	st, ok := d.suggestions.Current()
	if !ok {
		return 0, Change{}, ErrNoSuggestions
	}
	if !st.Scope.Within(len(d.text)) {
		return 0, Change{}, fmt.Errorf("%w: suggestion scope %s", ErrRangeInvalid, st.Scope)
	}

	resolved := suggest.ResolveText(d.text, st.Marks, decision)
	delta := len(resolved) - len(d.text)
	e := textedit.NewEdit(st.Scope, resolved[st.Scope.From:st.Scope.To+delta])

	ch, err := d.dispatchLocked(Transaction{
		Edit:    &e,
		Effects: []suggest.Effect{suggest.ClearEffect{}},
	})
	if err != nil {
		return 0, Change{}, err
	}
	return len(st.Marks), ch, nil
}
