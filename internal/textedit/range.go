package textedit

import "fmt"

// Range represents a byte range in a document.
// From is inclusive, To is exclusive: [From, To).
type Range struct {
	From int // Inclusive start position
	To   int // Exclusive end position
}

// NewRange creates a new Range from start and end offsets.
func NewRange(from, to int) Range {
	return Range{From: from, To: to}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.From, r.To)
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.To - r.From
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.From == r.To
}

// IsValid returns true if the range is valid (0 <= From <= To).
func (r Range) IsValid() bool {
	return r.From >= 0 && r.From <= r.To
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.From && offset < r.To
}

// ContainsRange returns true if the given range is entirely within this range.
func (r Range) ContainsRange(other Range) bool {
	return other.From >= r.From && other.To <= r.To
}

// Overlaps returns true if this range overlaps with another range.
// Adjacent ranges do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.From < other.To && other.From < r.To
}

// Shift returns a new range shifted by the given delta.
func (r Range) Shift(delta int) Range {
	return Range{From: r.From + delta, To: r.To + delta}
}

// Within reports whether the range lies inside a document of length n.
func (r Range) Within(n int) bool {
	return r.IsValid() && r.To <= n
}
