package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/redline/internal/document"
)

func TestOpenReturnsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("alpha"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := New()
	first, err := w.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	w.Add(document.New("scratch"))
	if w.ActiveID() == first.ID() {
		t.Fatal("scratch document should be active")
	}

	again, err := w.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if again != first {
		t.Error("expected the already open document")
	}
	if w.ActiveID() != first.ID() {
		t.Error("reopening should activate the document")
	}
	if w.Count() != 2 {
		t.Errorf("expected 2 documents, got %d", w.Count())
	}
}

func TestOpenMissingFile(t *testing.T) {
	w := New()
	if _, err := w.Open(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected an error")
	}
	if w.Active() != nil {
		t.Error("no document should be active")
	}
}

func TestSetActiveAndClose(t *testing.T) {
	w := New()
	a := document.New("a")
	b := document.New("b")
	c := document.New("c")
	w.Add(a)
	w.Add(b)
	w.Add(c)

	if err := w.SetActive(a.ID()); err != nil {
		t.Fatal(err)
	}
	if w.Active() != a {
		t.Error("expected a active")
	}
	if err := w.SetActive("nope"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}

	if err := w.Close(a.ID()); err != nil {
		t.Fatal(err)
	}
	if w.Active() != c {
		t.Error("most recently opened document should become active")
	}
	if err := w.Close(a.ID()); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}

	all := w.All()
	if len(all) != 2 || all[0] != b || all[1] != c {
		t.Errorf("unexpected order %v", all)
	}

	_ = w.Close(b.ID())
	_ = w.Close(c.ID())
	if w.ActiveID() != "" {
		t.Error("expected no active document")
	}
}
