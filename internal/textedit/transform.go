package textedit

// Assoc selects where an offset lands when text is inserted at it, or when
// the text around it is replaced.
type Assoc int8

const (
	// AssocBefore keeps the offset before inserted text.
	AssocBefore Assoc = iota - 1
	// AssocAfter moves the offset past inserted text.
	AssocAfter Assoc = 1
)

// MapOffset carries an offset through an edit.
//
// Transformation rules:
//   - offset before the edit: unchanged
//   - offset after the edit: shifted by the edit's delta
//   - offset on or inside the replaced range: start of the new text for
//     AssocBefore, end of the new text for AssocAfter
func MapOffset(offset int, e Edit, assoc Assoc) int {
	switch {
	case offset < e.Range.From:
		return offset
	case offset > e.Range.To:
		return offset + e.Delta()
	case assoc == AssocBefore:
		return e.Range.From
	default:
		return e.End()
	}
}

// MapRange carries a range through an edit. The start maps with AssocAfter
// and the end with AssocBefore, so text inserted at either boundary stays
// outside the range. The second result is false when the edit removed the
// whole range.
//
// Mapping is monotonic: ordered, non-overlapping ranges stay ordered and
// non-overlapping after mapping.
func MapRange(r Range, e Edit) (Range, bool) {
	from := MapOffset(r.From, e, AssocAfter)
	to := MapOffset(r.To, e, AssocBefore)
	if to <= from {
		return Range{From: from, To: from}, false
	}
	return Range{From: from, To: to}, true
}

// Touches reports whether the edit modifies any byte of r or inserts text
// strictly inside it.
func Touches(r Range, e Edit) bool {
	if e.Range.IsEmpty() {
		return e.Range.From > r.From && e.Range.From < r.To
	}
	return r.Overlaps(e.Range)
}
