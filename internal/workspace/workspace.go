// Package workspace tracks the open documents and which one is active.
package workspace

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/dshills/redline/internal/document"
)

// ErrDocumentNotFound indicates a document was not found.
var ErrDocumentNotFound = errors.New("document not found")

// Workspace manages all open documents.
type Workspace struct {
	mu        sync.RWMutex
	documents map[string]*document.Document // id -> document
	byPath    map[string]string             // path -> id
	active    *document.Document
	order     []string // open order
}

// New creates an empty workspace.
func New() *Workspace {
	return &Workspace{
		documents: make(map[string]*document.Document),
		byPath:    make(map[string]string),
	}
}

// Open loads a document from a file and makes it active.
// Returns the existing document if the path is already open.
func (w *Workspace) Open(path string, opts ...document.Option) (*document.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if id, ok := w.byPath[abs]; ok {
		w.active = w.documents[id]
		return w.active, nil
	}

	doc, err := document.Load(abs, opts...)
	if err != nil {
		return nil, err
	}
	w.addLocked(doc)
	return doc, nil
}

// Add registers an already constructed document and makes it active.
func (w *Workspace) Add(doc *document.Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.documents[doc.ID()]; ok {
		w.active = doc
		return
	}
	w.addLocked(doc)
}

func (w *Workspace) addLocked(doc *document.Document) {
	w.documents[doc.ID()] = doc
	if doc.Path() != "" {
		w.byPath[doc.Path()] = doc.ID()
	}
	w.order = append(w.order, doc.ID())
	w.active = doc
}

// Close closes a document by id. The most recently opened remaining
// document becomes active.
func (w *Workspace) Close(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc, ok := w.documents[id]
	if !ok {
		return ErrDocumentNotFound
	}

	delete(w.documents, id)
	if doc.Path() != "" {
		delete(w.byPath, doc.Path())
	}
	for i, v := range w.order {
		if v == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}

	if w.active == doc {
		w.active = nil
		if len(w.order) > 0 {
			w.active = w.documents[w.order[len(w.order)-1]]
		}
	}
	return nil
}

// Active returns the active document, or nil.
func (w *Workspace) Active() *document.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// ActiveID returns the identity of the active document, or "".
func (w *Workspace) ActiveID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.active == nil {
		return ""
	}
	return w.active.ID()
}

// SetActive makes the document with id active.
func (w *Workspace) SetActive(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc, ok := w.documents[id]
	if !ok {
		return ErrDocumentNotFound
	}
	w.active = doc
	return nil
}

// Get returns a document by id.
func (w *Workspace) Get(id string) (*document.Document, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	doc, ok := w.documents[id]
	return doc, ok
}

// All returns the open documents in open order.
func (w *Workspace) All() []*document.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()

	docs := make([]*document.Document, 0, len(w.order))
	for _, id := range w.order {
		docs = append(docs, w.documents[id])
	}
	return docs
}

// Count returns the number of open documents.
func (w *Workspace) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.documents)
}
