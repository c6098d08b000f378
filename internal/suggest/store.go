package suggest

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/redline/internal/textedit"
)

// Errors returned by store operations.
var (
	// ErrInvalidMarks indicates a mark set that breaks the run invariants.
	ErrInvalidMarks = errors.New("invalid suggestion marks")

	// ErrMarkNotFound indicates no active mark has the given id.
	ErrMarkNotFound = errors.New("suggestion mark not found")

	// ErrConcurrentUpdate indicates the store changed between staging and
	// committing an update.
	ErrConcurrentUpdate = errors.New("suggestion store changed concurrently")
)

// State is a snapshot of an active suggestion run.
type State struct {
	Marks []Mark         `json:"marks"`
	Scope textedit.Range `json:"scope"`
}

// IsEmpty returns true if the state holds no marks.
func (s State) IsEmpty() bool {
	return len(s.Marks) == 0
}

// Validate checks the run invariants: every span is non-empty and inside
// the scope, ids are unique and non-empty, marks are ordered by offset and
// do not overlap.
func (s State) Validate() error {
	if !s.Scope.IsValid() {
		return fmt.Errorf("%w: scope %s", ErrInvalidMarks, s.Scope)
	}
	seen := make(map[string]struct{}, len(s.Marks))
	for i, m := range s.Marks {
		if m.ID == "" {
			return fmt.Errorf("%w: mark %d has no id", ErrInvalidMarks, i)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidMarks, m.ID)
		}
		seen[m.ID] = struct{}{}

		if m.From < 0 || m.To <= m.From {
			return fmt.Errorf("%w: empty or inverted span %s", ErrInvalidMarks, m.Range())
		}
		if !s.Scope.ContainsRange(m.Range()) {
			return fmt.Errorf("%w: %s outside scope %s", ErrInvalidMarks, m.Range(), s.Scope)
		}
		if i > 0 && m.From < s.Marks[i-1].To {
			return fmt.Errorf("%w: %s overlaps or precedes %s", ErrInvalidMarks, m.Range(), s.Marks[i-1].Range())
		}
	}
	return nil
}

// clone returns a deep copy of the state.
func (s State) clone() State {
	out := State{Scope: s.Scope}
	if len(s.Marks) > 0 {
		out.Marks = make([]Mark, len(s.Marks))
		copy(out.Marks, s.Marks)
	}
	return out
}

// Store holds the active suggestion run of one document.
// All methods are thread-safe.
type Store struct {
	mu         sync.RWMutex
	state      State
	generation uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Current returns a copy of the active state. The second result is false
// when the store is empty.
func (s *Store) Current() (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.IsEmpty() {
		return State{}, false
	}
	return s.state.clone(), true
}

// IsActive returns true if the store holds at least one mark.
func (s *Store) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.state.IsEmpty()
}

// Len returns the number of active marks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Marks)
}

// Lookup returns the mark with the given id.
func (s *Store) Lookup(id string) (Mark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.state.Marks {
		if m.ID == id {
			return m, true
		}
	}
	return Mark{}, false
}

// MarkAt returns the mark covering offset.
func (s *Store) MarkAt(offset int) (Mark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	marks := s.state.Marks
	i := sort.Search(len(marks), func(i int) bool { return marks[i].To > offset })
	if i < len(marks) && marks[i].From <= offset {
		return marks[i], true
	}
	return Mark{}, false
}

// Set replaces any prior content with marks confined to scope. An empty
// mark list empties the store. Marks violating the run invariants are
// rejected with ErrInvalidMarks and the store is left unchanged.
func (s *Store) Set(marks []Mark, scope textedit.Range) error {
	return s.Apply(nil, SetEffect{Marks: marks, Scope: scope})
}

// Clear empties the store without resolving marks.
func (s *Store) Clear() {
	// ClearEffect cannot fail.
	_ = s.Apply(nil, ClearEffect{})
}

// ResolveOne removes exactly one mark by id and returns it. Other marks are
// not moved; offset shifts caused by the resolving document edit are
// applied with MapEdit or Apply.
func (s *Store) ResolveOne(id string) (Mark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.state.Marks {
		if m.ID != id {
			continue
		}
		next := s.state.clone()
		next.Marks = append(next.Marks[:i], next.Marks[i+1:]...)
		s.commitLocked(next)
		return m, nil
	}
	return Mark{}, fmt.Errorf("%w: %s", ErrMarkNotFound, id)
}

// MapEdit re-synchronizes the store with a document edit and returns the
// marks the edit removed.
func (s *Store) MapEdit(e textedit.Edit) []Mark {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, dropped := mapState(s.state, e)
	s.commitLocked(next)
	return dropped
}

// Apply maps the state through edit (if non-nil) and then applies effects
// in order. Nothing is changed unless every step succeeds.
func (s *Store) Apply(edit *textedit.Edit, effects ...Effect) error {
	u, err := s.Stage(edit, effects...)
	if err != nil {
		return err
	}
	return u.Commit()
}

// Stage computes the result of Apply without changing the store. The
// returned update commits only if the store has not changed in between,
// which lets a document validate a whole transaction before mutating
// anything.
func (s *Store) Stage(edit *textedit.Edit, effects ...Effect) (*Update, error) {
	s.mu.RLock()
	next := s.state.clone()
	gen := s.generation
	s.mu.RUnlock()

	var dropped []Mark
	if edit != nil {
		next, dropped = mapState(next, *edit)
	}
	for _, eff := range effects {
		var err error
		if next, err = eff.apply(next); err != nil {
			return nil, err
		}
	}
	if next.IsEmpty() {
		next = State{}
	}

	return &Update{store: s, generation: gen, next: next, Dropped: dropped}, nil
}

func (s *Store) commitLocked(next State) {
	if next.IsEmpty() {
		next = State{}
	}
	s.state = next
	s.generation++
}

// Update is a staged store change.
type Update struct {
	store      *Store
	generation uint64
	next       State

	// Dropped lists marks removed by mapping through the edit.
	Dropped []Mark
}

// State returns the state the update will install.
func (u *Update) State() State {
	return u.next.clone()
}

// Commit installs the staged state. It fails with ErrConcurrentUpdate if
// the store changed after staging.
func (u *Update) Commit() error {
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != u.generation {
		return ErrConcurrentUpdate
	}
	s.commitLocked(u.next)
	return nil
}

// mapState carries every mark and the scope through e. Marks whose span the
// edit removes are dropped, and so are newline marks whose symbol the edit
// touches, since a partial symbol no longer stands for a line break.
func mapState(st State, e textedit.Edit) (State, []Mark) {
	if st.IsEmpty() {
		return st, nil
	}

	var dropped []Mark
	kept := st.Marks[:0:0]
	for _, m := range st.Marks {
		if m.IsNewlineChange && textedit.Touches(m.Range(), e) {
			dropped = append(dropped, m)
			continue
		}
		r, ok := textedit.MapRange(m.Range(), e)
		if !ok {
			dropped = append(dropped, m)
			continue
		}
		m.From, m.To = r.From, r.To
		kept = append(kept, m)
	}

	scope := textedit.Range{
		From: textedit.MapOffset(st.Scope.From, e, textedit.AssocAfter),
		To:   textedit.MapOffset(st.Scope.To, e, textedit.AssocBefore),
	}
	if scope.To < scope.From {
		scope.To = scope.From
	}
	return State{Marks: kept, Scope: scope}, dropped
}
