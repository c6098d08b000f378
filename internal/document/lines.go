package document

import (
	"fmt"
	"strings"

	"github.com/dshills/redline/internal/textedit"
)

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return strings.Count(d.text, "\n") + 1
}

// LineAt returns the zero-based line containing offset.
func (d *Document) LineAt(offset int) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if offset < 0 || offset > len(d.text) {
		return 0, fmt.Errorf("%w: %d", ErrOffsetOutOfRange, offset)
	}
	return strings.Count(d.text[:offset], "\n"), nil
}

// LineRange returns the range of line, excluding its line break.
func (d *Document) LineRange(line int) (textedit.Range, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return lineRange(d.text, line)
}

// LinesRange returns the range from the start of line first to the end of
// line last, both clamped to the document.
func (d *Document) LinesRange(first, last int) textedit.Range {
	d.mu.RLock()
	defer d.mu.RUnlock()

	count := strings.Count(d.text, "\n") + 1
	first = max(0, min(first, count-1))
	last = max(first, min(last, count-1))

	a, _ := lineRange(d.text, first)
	b, _ := lineRange(d.text, last)
	return textedit.NewRange(a.From, b.To)
}

// ParagraphAt returns the range of the paragraph containing offset: the
// run of contiguous non-blank lines around it. On a blank line the range of
// that line is returned.
func (d *Document) ParagraphAt(offset int) (textedit.Range, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if offset < 0 || offset > len(d.text) {
		return textedit.Range{}, fmt.Errorf("%w: %d", ErrOffsetOutOfRange, offset)
	}

	lines := strings.Split(d.text, "\n")
	line := strings.Count(d.text[:offset], "\n")
	blank := func(i int) bool { return strings.TrimSpace(lines[i]) == "" }

	if blank(line) {
		return lineRange(d.text, line)
	}
	first, last := line, line
	for first > 0 && !blank(first-1) {
		first--
	}
	for last < len(lines)-1 && !blank(last+1) {
		last++
	}

	a, _ := lineRange(d.text, first)
	b, _ := lineRange(d.text, last)
	return textedit.NewRange(a.From, b.To), nil
}

func lineRange(text string, line int) (textedit.Range, error) {
	if line < 0 {
		return textedit.Range{}, fmt.Errorf("%w: line %d", ErrOffsetOutOfRange, line)
	}
	start := 0
	for i := 0; i < line; i++ {
		j := strings.IndexByte(text[start:], '\n')
		if j < 0 {
			return textedit.Range{}, fmt.Errorf("%w: line %d", ErrOffsetOutOfRange, line)
		}
		start += j + 1
	}
	end := len(text)
	if j := strings.IndexByte(text[start:], '\n'); j >= 0 {
		end = start + j
	}
	return textedit.NewRange(start, end), nil
}
