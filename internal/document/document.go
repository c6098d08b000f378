package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/redline/internal/suggest"
	"github.com/dshills/redline/internal/textedit"
)

// Selection is a selected range with a direction. Anchor is where the
// selection started and Head where the cursor is; a collapsed selection is
// a plain cursor.
type Selection struct {
	Anchor int
	Head   int
}

// Cursor returns a collapsed selection at offset.
func Cursor(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// Range returns the selection as an ordered range.
func (s Selection) Range() textedit.Range {
	if s.Anchor <= s.Head {
		return textedit.NewRange(s.Anchor, s.Head)
	}
	return textedit.NewRange(s.Head, s.Anchor)
}

// IsEmpty returns true if the selection is collapsed.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Document is an open text with its editor state.
// All methods are thread-safe.
type Document struct {
	mu sync.RWMutex

	id            string
	path          string
	name          string
	text          string
	lineEnding    LineEnding
	lineEndingSet bool
	selections    []Selection
	revision      uint64
	readOnly      bool
	modified      bool

	suggestions *suggest.Store
}

// New creates a document with the given content.
func New(content string, opts ...Option) *Document {
	d := &Document{
		id:          uuid.NewString(),
		selections:  []Selection{Cursor(0)},
		suggestions: suggest.NewStore(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if !d.lineEndingSet {
		d.lineEnding = DetectLineEnding(content)
	}
	d.text = textedit.NormalizeLineEndings(content)

	if d.name == "" {
		d.name = "Untitled"
		if d.path != "" {
			d.name = filepath.Base(d.path)
		}
	}
	return d
}

// Load reads a document from a file.
func Load(path string, opts ...Option) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	return New(string(data), append([]Option{WithPath(abs)}, opts...)...), nil
}

// ID returns the document identity. It never changes while the document is
// open and is what a suggestion run checks before committing.
func (d *Document) ID() string {
	return d.id
}

// Path returns the file path (empty for scratch documents).
func (d *Document) Path() string {
	return d.path
}

// Name returns the display name.
func (d *Document) Name() string {
	return d.name
}

// LineEnding returns the line ending restored by Content.
func (d *Document) LineEnding() LineEnding {
	return d.lineEnding
}

// Text returns the normalized document text.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// Content returns the document text with its original line endings.
func (d *Document) Content() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lineEnding.restore(d.text)
}

// Len returns the length of the normalized text in bytes.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.text)
}

// Slice returns the text in r.
func (d *Document) Slice(r textedit.Range) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !r.Within(len(d.text)) {
		return "", fmt.Errorf("%w: %s", ErrRangeInvalid, r)
	}
	return d.text[r.From:r.To], nil
}

// Revision returns a counter incremented by every text change.
func (d *Document) Revision() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}

// IsReadOnly returns true if edits are refused.
func (d *Document) IsReadOnly() bool {
	return d.readOnly
}

// IsModified returns true if the text changed since load or last save.
func (d *Document) IsModified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modified
}

// Suggestions returns the suggestion store of the document.
func (d *Document) Suggestions() *suggest.Store {
	return d.suggestions
}

// Cursor returns the head of the primary selection.
func (d *Document) Cursor() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selections[0].Head
}

// Selections returns a copy of the selections. The first one is primary;
// there is always at least one.
func (d *Document) Selections() []Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Selection, len(d.selections))
	copy(out, d.selections)
	return out
}

// SetCursor collapses the selections to a single cursor.
func (d *Document) SetCursor(offset int) error {
	return d.SetSelections(Cursor(offset))
}

// SetSelections replaces the selections. At least one is required.
func (d *Document) SetSelections(sels ...Selection) error {
	if len(sels) == 0 {
		return fmt.Errorf("%w: no selections", ErrRangeInvalid)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range sels {
		if !s.Range().Within(len(d.text)) {
			return fmt.Errorf("%w: selection %s", ErrOffsetOutOfRange, s.Range())
		}
	}
	d.selections = append(d.selections[:0:0], sels...)
	return nil
}

// Save writes the content back to the document path.
func (d *Document) Save() error {
	if d.path == "" {
		return fmt.Errorf("save %s: no path", d.name)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := os.WriteFile(d.path, []byte(d.lineEnding.restore(d.text)), 0o644); err != nil {
		return err
	}
	d.modified = false
	return nil
}
