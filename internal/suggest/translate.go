package suggest

import (
	"strings"

	"github.com/dshills/redline/internal/textedit"
	"github.com/dshills/redline/internal/worddiff"
)

// Result is the output of a translation.
type Result struct {
	// InsertText is the merged view of both texts, spliced into the
	// document at the insertion base.
	InsertText string

	// Marks are the suggestion spans, ordered by From, in document offsets.
	Marks []Mark
}

// HasChanges returns true if the translation produced any mark.
func (r Result) HasChanges() bool {
	return len(r.Marks) > 0
}

// Scope returns the document range InsertText occupies once spliced at base.
func (r Result) Scope(base int) textedit.Range {
	return textedit.NewRange(base, base+len(r.InsertText))
}

// Translate converts ordered diff parts into the text to splice at base and
// the marks describing it.
//
// Unchanged parts are appended with their line endings normalized and are
// never marked. Added and removed parts are segmented by SegmentPart, and
// each segment is appended and marked at base plus the running offset.
func Translate(parts []worddiff.Part, base int) Result {
	var b strings.Builder
	var marks []Mark

	for _, part := range parts {
		if part.Unchanged() {
			b.WriteString(textedit.NormalizeLineEndings(part.Value))
			continue
		}

		t := MarkAdded
		if part.Removed {
			t = MarkRemoved
		}
		for _, seg := range SegmentPart(part.Value, t) {
			from := base + b.Len()
			b.WriteString(seg.Text)
			m := Mark{
				ID:   NewID(),
				From: from,
				To:   from + len(seg.Text),
				Type: t,
			}
			if seg.IsNewline {
				m.IsNewlineChange = true
				m.NewlineChar = NewlineChar
			}
			marks = append(marks, m)
		}
	}

	return Result{InsertText: b.String(), Marks: marks}
}
