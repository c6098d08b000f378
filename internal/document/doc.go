// Package document provides the editor surface a suggestion run is applied
// to: a text buffer with selections, a cursor and the suggestion store of
// the document.
//
// Text is held with line endings normalized to "\n"; the detected line
// ending is restored by Content when the document is written back.
//
// All mutation goes through Dispatch, which applies a Transaction (one text
// edit, store effects and an optional cursor move) atomically: the whole
// transaction is validated before anything changes, and the suggestion
// store is re-synchronized from the same change record.
package document
