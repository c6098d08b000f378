// Package suggest turns a word diff into reviewable suggestion marks and
// holds the marks that are pending review in a document.
//
// # Translation
//
// [Translate] walks the ordered diff parts and builds the text that is
// spliced into the document. Unchanged parts are copied with their line
// endings normalized. Added and removed parts are split into segments by
// [SegmentPart]: plain runs are copied verbatim, and every line break is
// replaced by a visible one-rune symbol ([NewlineAddSymbol] or
// [NewlineRemoveSymbol]) so that it can be addressed and reviewed on its
// own. Every segment becomes one [Mark].
//
// Removed text is not deleted: it stays visible in the document inside a
// removed mark until the mark is accepted (delete) or rejected (keep).
//
// # State
//
// A [Store] holds the active suggestion run of one document: its marks
// ordered by offset and the scope range they live in. The store is either
// empty or active. Changes are expressed as [Effect] values applied
// together with the document edit that caused them, so marks are always
// re-synchronized from the document's change record and never drift.
//
//	res := suggest.Translate(parts, scope.From)
//	err := store.Apply(&edit, suggest.ClearEffect{}, suggest.SetEffect{
//	    Marks: res.Marks,
//	    Scope: textedit.NewRange(scope.From, scope.From+len(res.InsertText)),
//	})
//
// # Resolution
//
// [Resolve] computes the document edit that accepts or rejects one mark.
// Accepting an added mark or rejecting a removed mark keeps its text;
// the opposite decisions delete it. A newline symbol is always turned back
// into a line break or deleted, never left behind.
package suggest
