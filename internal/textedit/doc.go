// Package textedit provides the offset arithmetic shared by the document and
// the suggestion store.
//
// All positions are byte offsets into a document whose line endings have
// been normalized to "\n". A [Range] is half open: [From, To).
//
// An [Edit] replaces a range with new text. Offsets recorded before the edit
// are carried into the post-edit coordinate space with [MapOffset] and
// [MapRange]; the association bias decides on which side of inserted text a
// boundary offset lands.
package textedit
