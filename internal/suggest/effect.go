package suggest

import "github.com/dshills/redline/internal/textedit"

// Effect is a state transition applied to a Store together with a document
// change. Effects are expressed in post-change offsets.
type Effect interface {
	apply(State) (State, error)
}

// ClearEffect empties the store.
type ClearEffect struct{}

func (ClearEffect) apply(State) (State, error) {
	return State{}, nil
}

// SetEffect replaces the store content with a validated run.
type SetEffect struct {
	Marks []Mark
	Scope textedit.Range
}

func (e SetEffect) apply(State) (State, error) {
	next := State{Scope: e.Scope}
	if len(e.Marks) == 0 {
		return State{}, nil
	}
	next.Marks = make([]Mark, len(e.Marks))
	copy(next.Marks, e.Marks)
	if err := next.Validate(); err != nil {
		return State{}, err
	}
	return next, nil
}

// DropEffect removes a mark by id if it is still present. The edit that
// resolves a mark may already have removed it while mapping, so a missing
// id is not an error here; callers check existence before building the
// transaction.
type DropEffect struct {
	ID string
}

func (e DropEffect) apply(st State) (State, error) {
	for i, m := range st.Marks {
		if m.ID == e.ID {
			st.Marks = append(st.Marks[:i:i], st.Marks[i+1:]...)
			break
		}
	}
	return st, nil
}
