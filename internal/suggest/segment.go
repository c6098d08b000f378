package suggest

import "strings"

// Segment is one unit of changed text: a run of plain text or a single
// substituted line break.
type Segment struct {
	// Text is what goes into the document: the plain run verbatim, or the
	// polarity symbol for a line break.
	Text string

	// Source is the raw text the segment was taken from.
	Source string

	// IsNewline is true when the segment replaces a line break.
	IsNewline bool
}

// SegmentPart splits the value of an added or removed diff part into
// segments. A line break ("\r\n", "\n" or "\r") is consumed whole and
// replaced by the symbol for t; any other run up to the next line break or
// the end of the value is one plain segment. Empty values yield no
// segments, and no segment is ever empty.
func SegmentPart(value string, t MarkType) []Segment {
	var segs []Segment
	for i := 0; i < len(value); {
		if n := lineBreakLen(value[i:]); n > 0 {
			segs = append(segs, Segment{
				Text:      t.Symbol(),
				Source:    value[i : i+n],
				IsNewline: true,
			})
			i += n
			continue
		}

		end := len(value)
		if j := strings.IndexAny(value[i:], "\r\n"); j >= 0 {
			end = i + j
		}
		segs = append(segs, Segment{Text: value[i:end], Source: value[i:end]})
		i = end
	}
	return segs
}

// lineBreakLen returns the length of the line break starting s, or 0.
func lineBreakLen(s string) int {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		return 2
	case strings.HasPrefix(s, "\n"), strings.HasPrefix(s, "\r"):
		return 1
	default:
		return 0
	}
}
