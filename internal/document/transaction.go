package document

import (
	"fmt"

	"github.com/dshills/redline/internal/suggest"
	"github.com/dshills/redline/internal/textedit"
)

// Transaction is one atomic document change.
//
// Edit is applied first; the suggestion store is then mapped through the
// edit and Effects are applied in post-edit offsets. Cursor, when set,
// collapses the selections to that post-edit offset; otherwise selections
// are mapped through the edit.
type Transaction struct {
	Edit    *textedit.Edit
	Effects []suggest.Effect
	Cursor  *int
}

// Change is the record of a dispatched transaction.
type Change struct {
	// Edit is the applied edit with normalized text, nil if the transaction
	// only touched the store or the cursor.
	Edit *textedit.Edit

	// Revision is the document revision after the change.
	Revision uint64

	// Dropped lists suggestion marks removed while mapping through Edit.
	Dropped []suggest.Mark
}

// Dispatch applies tx atomically. Every part of the transaction is
// validated before the document or its store is mutated; on error nothing
// changes.
func (d *Document) Dispatch(tx Transaction) (Change, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dispatchLocked(tx)
}

// Replace replaces r with text as a plain user edit.
func (d *Document) Replace(r textedit.Range, text string) (Change, error) {
	e := textedit.NewEdit(r, text)
	return d.Dispatch(Transaction{Edit: &e})
}

// Insert inserts text at offset as a plain user edit.
func (d *Document) Insert(offset int, text string) (Change, error) {
	return d.Replace(textedit.NewRange(offset, offset), text)
}

func (d *Document) dispatchLocked(tx Transaction) (Change, error) {
	newLen := len(d.text)

	var edit *textedit.Edit
	if tx.Edit != nil {
		if d.readOnly {
			return Change{}, ErrReadOnly
		}
		if !tx.Edit.Range.Within(len(d.text)) {
			return Change{}, fmt.Errorf("%w: %s", ErrRangeInvalid, tx.Edit.Range)
		}
		e := textedit.NewEdit(tx.Edit.Range, textedit.NormalizeLineEndings(tx.Edit.Text))
		edit = &e
		newLen += e.Delta()
	}

	if tx.Cursor != nil && (*tx.Cursor < 0 || *tx.Cursor > newLen) {
		return Change{}, fmt.Errorf("%w: cursor %d", ErrOffsetOutOfRange, *tx.Cursor)
	}

	update, err := d.suggestions.Stage(edit, tx.Effects...)
	if err != nil {
		return Change{}, err
	}
	if err := update.Commit(); err != nil {
		return Change{}, err
	}

	if edit != nil && !edit.IsNoOp() {
		d.text = edit.Apply(d.text)
		d.revision++
		d.modified = true
	}

	switch {
	case tx.Cursor != nil:
		d.selections = []Selection{Cursor(*tx.Cursor)}
	case edit != nil:
		for i, s := range d.selections {
			d.selections[i] = Selection{
				Anchor: textedit.MapOffset(s.Anchor, *edit, textedit.AssocAfter),
				Head:   textedit.MapOffset(s.Head, *edit, textedit.AssocAfter),
			}
		}
	}

	return Change{Edit: edit, Revision: d.revision, Dropped: update.Dropped}, nil
}
