package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/redline/internal/textedit"
)

func testMarks() []Mark {
	return []Mark{
		{ID: "a", From: 2, To: 5, Type: MarkAdded},
		{ID: "b", From: 5, To: 7, Type: MarkRemoved, IsNewlineChange: true, NewlineChar: "\n"},
		{ID: "c", From: 9, To: 12, Type: MarkRemoved},
	}
}

func TestStoreEmpty(t *testing.T) {
	s := NewStore()

	_, ok := s.Current()
	assert.False(t, ok)
	assert.False(t, s.IsActive())
	assert.Equal(t, 0, s.Len())
}

func TestStoreSetAndCurrent(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

	st, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, testMarks(), st.Marks)
	assert.Equal(t, textedit.NewRange(0, 12), st.Scope)
	assert.True(t, s.IsActive())
	assert.Equal(t, 3, s.Len())

	st.Marks[0].From = 99
	again, _ := s.Current()
	assert.Equal(t, 2, again.Marks[0].From, "Current returns a copy")
}

func TestStoreSetReplacesPriorRun(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

	next := []Mark{{ID: "z", From: 20, To: 21, Type: MarkAdded}}
	require.NoError(t, s.Set(next, textedit.NewRange(20, 30)))

	st, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, next, st.Marks)
	_, found := s.Lookup("a")
	assert.False(t, found)
}

func TestStoreSetEmptyClears(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

	require.NoError(t, s.Set(nil, textedit.NewRange(0, 0)))
	assert.False(t, s.IsActive())
}

func TestStoreSetRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		marks []Mark
		scope textedit.Range
	}{
		{
			name:  "overlap",
			marks: []Mark{{ID: "a", From: 0, To: 4}, {ID: "b", From: 3, To: 6}},
			scope: textedit.NewRange(0, 10),
		},
		{
			name:  "unordered",
			marks: []Mark{{ID: "a", From: 5, To: 6}, {ID: "b", From: 0, To: 2}},
			scope: textedit.NewRange(0, 10),
		},
		{
			name:  "outside scope",
			marks: []Mark{{ID: "a", From: 8, To: 12}},
			scope: textedit.NewRange(0, 10),
		},
		{
			name:  "duplicate id",
			marks: []Mark{{ID: "a", From: 0, To: 1}, {ID: "a", From: 2, To: 3}},
			scope: textedit.NewRange(0, 10),
		},
		{
			name:  "empty span",
			marks: []Mark{{ID: "a", From: 3, To: 3}},
			scope: textedit.NewRange(0, 10),
		},
		{
			name:  "missing id",
			marks: []Mark{{From: 0, To: 1}},
			scope: textedit.NewRange(0, 10),
		},
		{
			name:  "inverted scope",
			marks: []Mark{{ID: "a", From: 0, To: 1}},
			scope: textedit.NewRange(5, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

			err := s.Set(tt.marks, tt.scope)
			require.ErrorIs(t, err, ErrInvalidMarks)

			st, ok := s.Current()
			require.True(t, ok)
			assert.Equal(t, testMarks(), st.Marks, "failed Set leaves prior state")
		})
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

	s.Clear()

	assert.False(t, s.IsActive())
	s.Clear()
	assert.False(t, s.IsActive())
}

func TestStoreResolveOne(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

	m, err := s.ResolveOne("b")
	require.NoError(t, err)
	assert.Equal(t, "b", m.ID)

	st, _ := s.Current()
	require.Len(t, st.Marks, 2)
	assert.Equal(t, testMarks()[0], st.Marks[0])
	assert.Equal(t, testMarks()[2], st.Marks[1], "other marks keep their offsets")

	_, err = s.ResolveOne("b")
	assert.ErrorIs(t, err, ErrMarkNotFound)

	_, err = s.ResolveOne("a")
	require.NoError(t, err)
	_, err = s.ResolveOne("c")
	require.NoError(t, err)
	assert.False(t, s.IsActive(), "resolving the last mark empties the store")
}

func TestStoreLookupAndMarkAt(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

	m, ok := s.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, 9, m.From)

	tests := []struct {
		offset int
		want   string
	}{
		{0, ""},
		{2, "a"},
		{4, "a"},
		{5, "b"},
		{7, ""},
		{11, "c"},
		{12, ""},
	}
	for _, tt := range tests {
		m, ok := s.MarkAt(tt.offset)
		if tt.want == "" {
			assert.False(t, ok, "offset %d", tt.offset)
			continue
		}
		require.True(t, ok, "offset %d", tt.offset)
		assert.Equal(t, tt.want, m.ID, "offset %d", tt.offset)
	}
}

func TestStoreMapEdit(t *testing.T) {
	t.Run("insert before shifts everything", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

		dropped := s.MapEdit(textedit.NewInsert(0, "xx"))

		assert.Empty(t, dropped)
		st, _ := s.Current()
		assert.Equal(t, textedit.NewRange(2, 14), st.Scope)
		assert.Equal(t, 4, st.Marks[0].From)
		assert.Equal(t, 11, st.Marks[2].From)
		require.NoError(t, st.Validate())
	})

	t.Run("deleting a mark drops it", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

		dropped := s.MapEdit(textedit.NewDelete(2, 5))

		require.Len(t, dropped, 1)
		assert.Equal(t, "a", dropped[0].ID)
		st, _ := s.Current()
		require.Len(t, st.Marks, 2)
		assert.Equal(t, 2, st.Marks[0].From)
		assert.Equal(t, 6, st.Marks[1].From)
		require.NoError(t, st.Validate())
	})

	t.Run("touching a newline symbol drops it", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

		dropped := s.MapEdit(textedit.NewDelete(6, 7))

		require.Len(t, dropped, 1)
		assert.Equal(t, "b", dropped[0].ID)
	})

	t.Run("typing inside a mark grows it", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

		s.MapEdit(textedit.NewInsert(10, "yy"))

		m, _ := s.Lookup("c")
		assert.Equal(t, textedit.NewRange(9, 14), m.Range())
	})

	t.Run("removing every mark empties the store", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

		dropped := s.MapEdit(textedit.NewDelete(0, 12))

		assert.Len(t, dropped, 3)
		assert.False(t, s.IsActive())
	})
}

func TestStoreApplyIsAtomic(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

	edit := textedit.NewInsert(0, "abc")
	err := s.Apply(&edit, ClearEffect{}, SetEffect{
		Marks: []Mark{{ID: "x", From: 0, To: 50}},
		Scope: textedit.NewRange(0, 10),
	})
	require.ErrorIs(t, err, ErrInvalidMarks)

	st, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, testMarks(), st.Marks, "neither the mapping nor the clear were applied")
}

func TestStoreApplyMapsThenSets(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

	edit := textedit.NewEdit(textedit.NewRange(0, 12), "replacement")
	next := []Mark{{ID: "n", From: 0, To: 11, Type: MarkAdded}}
	require.NoError(t, s.Apply(&edit, ClearEffect{}, SetEffect{Marks: next, Scope: textedit.NewRange(0, 11)}))

	st, _ := s.Current()
	assert.Equal(t, next, st.Marks)
}

func TestStoreDropEffect(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

	require.NoError(t, s.Apply(nil, DropEffect{ID: "c"}, DropEffect{ID: "missing"}))

	assert.Equal(t, 2, s.Len())
	_, ok := s.Lookup("c")
	assert.False(t, ok)
}

func TestStoreStageDetectsConcurrentUpdate(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(testMarks(), textedit.NewRange(0, 12)))

	u, err := s.Stage(nil, ClearEffect{})
	require.NoError(t, err)
	assert.True(t, u.State().IsEmpty())

	_, err = s.ResolveOne("a")
	require.NoError(t, err)

	assert.ErrorIs(t, u.Commit(), ErrConcurrentUpdate)
	assert.Equal(t, 2, s.Len())
}
