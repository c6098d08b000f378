package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/redline/internal/suggest"
	"github.com/dshills/redline/internal/textedit"
)

func intPtr(v int) *int { return &v }

func TestNewDocumentNormalizesLineEndings(t *testing.T) {
	d := New("one\r\ntwo\r\nthree")

	if d.Text() != "one\ntwo\nthree" {
		t.Errorf("expected normalized text, got %q", d.Text())
	}
	if d.LineEnding() != LineEndingCRLF {
		t.Errorf("expected CRLF, got %s", d.LineEnding())
	}
	if d.Content() != "one\r\ntwo\r\nthree" {
		t.Errorf("expected original line endings, got %q", d.Content())
	}
	if d.Name() != "Untitled" {
		t.Errorf("expected Untitled, got %q", d.Name())
	}
	if d.ID() == "" {
		t.Error("expected an identity")
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb", LineEndingLF},
		{"a\r\nb\r\nc\n", LineEndingCRLF},
		{"a\rb\rc", LineEndingCR},
		{"a\nb\nc\r\n", LineEndingLF},
	}

	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestDocumentSlice(t *testing.T) {
	d := New("hello world")

	s, err := d.Slice(textedit.NewRange(6, 11))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "world" {
		t.Errorf("expected world, got %q", s)
	}

	if _, err := d.Slice(textedit.NewRange(6, 12)); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestDocumentSelections(t *testing.T) {
	d := New("hello world")

	if err := d.SetSelections(Selection{Anchor: 5, Head: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sels := d.Selections()
	if len(sels) != 1 || sels[0].Range() != textedit.NewRange(0, 5) {
		t.Errorf("unexpected selections %v", sels)
	}
	if d.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", d.Cursor())
	}

	if err := d.SetSelections(); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if err := d.SetCursor(20); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestDispatchEditMapsSelections(t *testing.T) {
	d := New("hello world")
	if err := d.SetSelections(Selection{Anchor: 6, Head: 11}); err != nil {
		t.Fatal(err)
	}

	ch, err := d.Insert(0, ">> ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Text() != ">> hello world" {
		t.Errorf("unexpected text %q", d.Text())
	}
	if ch.Revision != 1 || d.Revision() != 1 {
		t.Errorf("expected revision 1, got %d", ch.Revision)
	}
	if got := d.Selections()[0]; got != (Selection{Anchor: 9, Head: 14}) {
		t.Errorf("unexpected selection %+v", got)
	}
	if !d.IsModified() {
		t.Error("expected modified")
	}
}

func TestDispatchNormalizesInsertedText(t *testing.T) {
	d := New("ab")

	if _, err := d.Insert(1, "\r\n"); err != nil {
		t.Fatal(err)
	}
	if d.Text() != "a\nb" {
		t.Errorf("unexpected text %q", d.Text())
	}
}

func TestDispatchAtomicCommit(t *testing.T) {
	d := New("The quick fox")
	base := 0
	insert := "The quick brown fox"
	marks := []suggest.Mark{{ID: "m1", From: 10, To: 16, Type: suggest.MarkAdded}}
	e := textedit.NewEdit(textedit.NewRange(0, d.Len()), insert)

	_, err := d.Dispatch(Transaction{
		Edit: &e,
		Effects: []suggest.Effect{
			suggest.ClearEffect{},
			suggest.SetEffect{Marks: marks, Scope: textedit.NewRange(base, base+len(insert))},
		},
		Cursor: intPtr(len(insert)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Text() != insert {
		t.Errorf("unexpected text %q", d.Text())
	}
	if d.Cursor() != len(insert) {
		t.Errorf("expected cursor at %d, got %d", len(insert), d.Cursor())
	}
	st, ok := d.Suggestions().Current()
	if !ok || len(st.Marks) != 1 || st.Marks[0].ID != "m1" {
		t.Errorf("unexpected store state %+v", st)
	}
}

func TestDispatchRejectsWithoutMutation(t *testing.T) {
	tests := []struct {
		name string
		tx   func(d *Document) Transaction
		want error
	}{
		{
			name: "edit out of range",
			tx: func(d *Document) Transaction {
				e := textedit.NewDelete(0, d.Len()+1)
				return Transaction{Edit: &e, Effects: []suggest.Effect{suggest.ClearEffect{}}}
			},
			want: ErrRangeInvalid,
		},
		{
			name: "cursor out of range",
			tx: func(d *Document) Transaction {
				e := textedit.NewDelete(0, 3)
				return Transaction{Edit: &e, Cursor: intPtr(d.Len())}
			},
			want: ErrOffsetOutOfRange,
		},
		{
			name: "invalid marks",
			tx: func(d *Document) Transaction {
				e := textedit.NewInsert(0, "x")
				return Transaction{Edit: &e, Effects: []suggest.Effect{
					suggest.ClearEffect{},
					suggest.SetEffect{
						Marks: []suggest.Mark{{ID: "bad", From: 2, To: 1}},
						Scope: textedit.NewRange(0, 5),
					},
				}}
			},
			want: suggest.ErrInvalidMarks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New("hello world")
			if err := d.Suggestions().Set([]suggest.Mark{{ID: "keep", From: 0, To: 5, Type: suggest.MarkRemoved}}, textedit.NewRange(0, 11)); err != nil {
				t.Fatal(err)
			}

			_, err := d.Dispatch(tt.tx(d))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if d.Text() != "hello world" || d.Revision() != 0 {
				t.Errorf("document changed: %q rev %d", d.Text(), d.Revision())
			}
			if _, ok := d.Suggestions().Lookup("keep"); !ok || d.Suggestions().Len() != 1 {
				t.Error("store changed")
			}
		})
	}
}

func TestDispatchReadOnly(t *testing.T) {
	d := New("locked", WithReadOnly())

	if _, err := d.Insert(0, "x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if d.Text() != "locked" {
		t.Errorf("unexpected text %q", d.Text())
	}
}

func TestUserEditResyncsStore(t *testing.T) {
	d := New("aaa bbb ccc")
	marks := []suggest.Mark{
		{ID: "b", From: 4, To: 7, Type: suggest.MarkAdded},
		{ID: "c", From: 8, To: 11, Type: suggest.MarkRemoved},
	}
	if err := d.Suggestions().Set(marks, textedit.NewRange(0, 11)); err != nil {
		t.Fatal(err)
	}

	ch, err := d.Replace(textedit.NewRange(4, 7), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(ch.Dropped) != 1 || ch.Dropped[0].ID != "b" {
		t.Errorf("expected b dropped, got %v", ch.Dropped)
	}

	m, ok := d.Suggestions().Lookup("c")
	if !ok {
		t.Fatal("expected c to survive")
	}
	got, _ := d.Slice(m.Range())
	if got != "ccc" {
		t.Errorf("mark c now covers %q", got)
	}
}

func newSuggestedDocument(t *testing.T) *Document {
	t.Helper()

	// "The quick brown fox↵jumps" over "The quick fox jumps".
	text := "The quick brown fox" + suggest.NewlineAddSymbol + "jumps"
	d := New(text)
	marks := []suggest.Mark{
		{ID: "brown", From: 10, To: 16, Type: suggest.MarkAdded},
		{ID: "nl", From: 19, To: 22, Type: suggest.MarkAdded, IsNewlineChange: true, NewlineChar: "\n"},
	}
	if err := d.Suggestions().Set(marks, textedit.NewRange(0, len(text))); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestResolveOneAtATime(t *testing.T) {
	d := newSuggestedDocument(t)

	if _, err := d.Resolve("brown", suggest.Reject); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Text() != "The quick fox"+suggest.NewlineAddSymbol+"jumps" {
		t.Errorf("unexpected text %q", d.Text())
	}

	m, ok := d.Suggestions().Lookup("nl")
	if !ok {
		t.Fatal("newline mark should survive")
	}
	if got, _ := d.Slice(m.Range()); got != suggest.NewlineAddSymbol {
		t.Errorf("newline mark now covers %q", got)
	}

	if _, err := d.Resolve("nl", suggest.Accept); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Text() != "The quick fox\njumps" {
		t.Errorf("unexpected text %q", d.Text())
	}
	if d.Suggestions().IsActive() {
		t.Error("store should be empty after the last mark")
	}

	if _, err := d.Resolve("nl", suggest.Accept); !errors.Is(err, suggest.ErrMarkNotFound) {
		t.Errorf("expected ErrMarkNotFound, got %v", err)
	}
}

func TestResolveKeepsPlainText(t *testing.T) {
	d := newSuggestedDocument(t)
	rev := d.Revision()

	if _, err := d.Resolve("brown", suggest.Accept); err != nil {
		t.Fatal(err)
	}
	if d.Revision() != rev {
		t.Error("accepting added text should not edit the document")
	}
	if d.Suggestions().Len() != 1 {
		t.Errorf("expected one mark left, got %d", d.Suggestions().Len())
	}
}

func TestResolveAll(t *testing.T) {
	tests := []struct {
		decision suggest.Decision
		want     string
	}{
		{suggest.Accept, "The quick brown fox\njumps"},
		{suggest.Reject, "The quick foxjumps"},
	}

	for _, tt := range tests {
		t.Run(tt.decision.String(), func(t *testing.T) {
			d := newSuggestedDocument(t)

			n, _, err := d.ResolveAll(tt.decision)
			if err != nil {
				t.Fatal(err)
			}
			if n != 2 {
				t.Errorf("expected 2 resolved, got %d", n)
			}
			if d.Text() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, d.Text())
			}
			if d.Suggestions().IsActive() {
				t.Error("store should be empty")
			}
		})
	}

	d := New("plain")
	if _, _, err := d.ResolveAll(suggest.Accept); !errors.Is(err, ErrNoSuggestions) {
		t.Errorf("expected ErrNoSuggestions, got %v", err)
	}
}

func TestLines(t *testing.T) {
	d := New("first line\nsecond line\n\nthird para\nstill third")

	if d.LineCount() != 5 {
		t.Errorf("expected 5 lines, got %d", d.LineCount())
	}

	r, err := d.LineRange(1)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := d.Slice(r); got != "second line" {
		t.Errorf("unexpected line %q", got)
	}
	if _, err := d.LineRange(9); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}

	line, err := d.LineAt(12)
	if err != nil || line != 1 {
		t.Errorf("expected line 1, got %d (%v)", line, err)
	}

	if got, _ := d.Slice(d.LinesRange(-3, 1)); got != "first line\nsecond line" {
		t.Errorf("unexpected lines %q", got)
	}
}

func TestParagraphAt(t *testing.T) {
	d := New("first line\nsecond line\n\nthird para\nstill third")

	tests := []struct {
		offset int
		want   string
	}{
		{0, "first line\nsecond line"},
		{15, "first line\nsecond line"},
		{23, ""},
		{30, "third para\nstill third"},
		{d.Len(), "third para\nstill third"},
	}

	for _, tt := range tests {
		r, err := d.ParagraphAt(tt.offset)
		if err != nil {
			t.Fatal(err)
		}
		if got, _ := d.Slice(r); got != tt.want {
			t.Errorf("ParagraphAt(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestLoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(path, []byte("a\r\nb"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if d.Name() != "note.md" {
		t.Errorf("unexpected name %q", d.Name())
	}
	if _, err := d.Insert(d.Len(), "\nc"); err != nil {
		t.Fatal(err)
	}
	if err := d.Save(); err != nil {
		t.Fatal(err)
	}
	if d.IsModified() {
		t.Error("expected clean after save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a\r\nb\r\nc" {
		t.Errorf("unexpected file content %q", data)
	}
}
