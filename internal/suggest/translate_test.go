package suggest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/redline/internal/worddiff"
)

var ignoreID = cmpopts.IgnoreFields(Mark{}, "ID")

func TestTranslateInsertedWord(t *testing.T) {
	parts := []worddiff.Part{
		{Value: "The quick "},
		{Value: "brown ", Added: true},
		{Value: "fox"},
	}

	res := Translate(parts, 0)

	assert.Equal(t, "The quick brown fox", res.InsertText)
	want := []Mark{{From: 10, To: 16, Type: MarkAdded}}
	if diff := cmp.Diff(want, res.Marks, ignoreID); diff != "" {
		t.Errorf("marks mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "brown ", res.InsertText[10:16])
	assert.True(t, res.HasChanges())
}

func TestTranslateOffsetsByBase(t *testing.T) {
	parts := []worddiff.Part{
		{Value: "The quick "},
		{Value: "brown ", Added: true},
		{Value: "fox"},
	}

	res := Translate(parts, 7)

	require.Len(t, res.Marks, 1)
	assert.Equal(t, 17, res.Marks[0].From)
	assert.Equal(t, 23, res.Marks[0].To)
	assert.Equal(t, 7, res.Scope(7).From)
	assert.Equal(t, 7+len("The quick brown fox"), res.Scope(7).To)
}

func TestTranslateRemovedLineBreak(t *testing.T) {
	parts := worddiff.Diff("Line one\nLine two", "Line one Line two")

	res := Translate(parts, 0)

	var removed []Mark
	for _, m := range res.Marks {
		if m.Type == MarkRemoved {
			removed = append(removed, m)
		}
	}
	require.Len(t, removed, 1)
	m := removed[0]
	assert.True(t, m.IsNewlineChange)
	assert.Equal(t, NewlineChar, m.NewlineChar)

	symbol := res.InsertText[m.From:m.To]
	assert.Equal(t, NewlineRemoveSymbol, symbol)
	assert.Equal(t, 1, utf8.RuneCountInString(symbol), "symbol occupies one character position")

	assert.NotContains(t, res.InsertText, "\n")
	assert.True(t, strings.HasPrefix(res.InsertText, "Line one"+NewlineRemoveSymbol))
	assert.True(t, strings.HasSuffix(res.InsertText, "Line two"))
}

func TestTranslateAddedLineBreakRoundTrip(t *testing.T) {
	original := "first part second part"
	revised := "first part\nsecond part"

	res := Translate(worddiff.Diff(original, revised), 0)

	var added []Mark
	for _, m := range res.Marks {
		if m.Type == MarkAdded && m.IsNewlineChange {
			added = append(added, m)
		}
	}
	require.Len(t, added, 1)

	m := added[0]
	assert.Equal(t, NewlineAddSymbol, res.InsertText[m.From:m.To])
	without := res.InsertText[:m.From] + res.InsertText[m.To:]
	assert.NotContains(t, without, "\n")
	assert.NotContains(t, without, NewlineAddSymbol)
}

func TestTranslateNoChanges(t *testing.T) {
	original := "one\r\ntwo\rthree"
	parts := worddiff.Diff(original, original)

	res := Translate(parts, 3)

	assert.Equal(t, "one\ntwo\nthree", res.InsertText)
	assert.Empty(t, res.Marks)
	assert.False(t, res.HasChanges())
}

func TestTranslateNewlineWidthIndependentOfStyle(t *testing.T) {
	for _, nl := range []string{"\n", "\r\n", "\r"} {
		t.Run(strings.ReplaceAll(strings.ReplaceAll(nl, "\r", "CR"), "\n", "LF"), func(t *testing.T) {
			parts := []worddiff.Part{
				{Value: "a"},
				{Value: nl, Added: true},
				{Value: "b"},
			}
			res := Translate(parts, 0)

			require.Len(t, res.Marks, 1)
			assert.Equal(t, len(NewlineAddSymbol), res.Marks[0].Len())
			assert.Equal(t, "a"+NewlineAddSymbol+"b", res.InsertText)
		})
	}
}

func TestTranslateSegmentsMultiLinePart(t *testing.T) {
	parts := []worddiff.Part{
		{Value: "start "},
		{Value: "one\r\ntwo\n\nthree", Removed: true},
	}

	res := Translate(parts, 0)

	want := []Mark{
		{From: 6, To: 9, Type: MarkRemoved},
		{From: 9, To: 11, Type: MarkRemoved, IsNewlineChange: true, NewlineChar: "\n"},
		{From: 11, To: 14, Type: MarkRemoved},
		{From: 14, To: 16, Type: MarkRemoved, IsNewlineChange: true, NewlineChar: "\n"},
		{From: 16, To: 18, Type: MarkRemoved, IsNewlineChange: true, NewlineChar: "\n"},
		{From: 18, To: 23, Type: MarkRemoved},
	}
	if diff := cmp.Diff(want, res.Marks, ignoreID); diff != "" {
		t.Errorf("marks mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "start one¶two¶¶three", res.InsertText)
}

func TestTranslateSkipsEmptyParts(t *testing.T) {
	parts := []worddiff.Part{
		{Value: "a"},
		{Value: "", Added: true},
		{Value: "", Removed: true},
		{Value: "b"},
	}

	res := Translate(parts, 0)

	assert.Equal(t, "ab", res.InsertText)
	assert.Empty(t, res.Marks)
}

func TestTranslateIdempotentExceptIDs(t *testing.T) {
	parts := worddiff.Diff("alpha beta\ngamma", "alpha delta gamma\nepsilon")

	first := Translate(parts, 11)
	second := Translate(parts, 11)

	assert.Equal(t, first.InsertText, second.InsertText)
	if diff := cmp.Diff(first.Marks, second.Marks, ignoreID); diff != "" {
		t.Errorf("marks differ (-first +second):\n%s", diff)
	}
	for i := range first.Marks {
		assert.NotEqual(t, first.Marks[i].ID, second.Marks[i].ID)
	}
}

func TestTranslateInvariants(t *testing.T) {
	pairs := []struct{ a, b string }{
		{"The quick fox", "The quick brown fox"},
		{"Line one\nLine two", "Line one Line two"},
		{"a\r\nb\r\nc", "a b\nc\n\nd"},
		{"", "entirely new\ntext"},
		{"removed\r\nentirely", ""},
		{"We was going to the store , and buyed apples.", "We were going to the store, and bought apples."},
		{"naïve café\n", "naive cafe\n"},
	}

	for _, p := range pairs {
		t.Run(p.a, func(t *testing.T) {
			const base = 5
			parts := worddiff.Diff(p.a, p.b)
			res := Translate(parts, base)

			unchanged := 0
			for _, part := range parts {
				if part.Unchanged() {
					unchanged += len(strings.ReplaceAll(strings.ReplaceAll(part.Value, "\r\n", "\n"), "\r", "\n"))
				}
			}

			marked := 0
			for i, m := range res.Marks {
				require.Greater(t, m.To, m.From, "mark %d is empty", i)
				if i > 0 {
					require.GreaterOrEqual(t, m.From, res.Marks[i-1].To, "mark %d overlaps", i)
				}
				require.True(t, res.Scope(base).ContainsRange(m.Range()))

				text := res.InsertText[m.From-base : m.To-base]
				if m.IsNewlineChange {
					assert.Equal(t, m.Type.Symbol(), text)
				} else {
					assert.NotContains(t, text, "\n")
					assert.NotContains(t, text, "\r")
				}
				marked += m.Len()
			}

			assert.Equal(t, len(res.InsertText), marked+unchanged)
		})
	}
}

func TestTranslateResolvesToEitherSide(t *testing.T) {
	original := "Some text\r\nwith lines and  spaces."
	revised := "Some new text with\nlines and spaces!"

	res := Translate(worddiff.Diff(original, revised), 0)

	assert.Equal(t, revised, ResolveText(res.InsertText, res.Marks, Accept))
	assert.Equal(t, "Some text\nwith lines and  spaces.", ResolveText(res.InsertText, res.Marks, Reject))
}
