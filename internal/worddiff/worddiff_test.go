package worddiff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"hello world", []string{"hello", " ", "world"}},
		{"a  b\n", []string{"a", "  ", "b", "\n"}},
		{"x\r\ny\rz", []string{"x", "\r\n", "y", "\r", "z"}},
		{"don't stop.", []string{"don", "'", "t", " ", "stop", "."}},
		{"\n\n", []string{"\n", "\n"}},
		{"naïve café_2", []string{"naïve", " ", "café_2"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestDiffInsertedWord(t *testing.T) {
	parts := Diff("The quick fox", "The quick brown fox")

	assert.Equal(t, []Part{
		{Value: "The quick "},
		{Value: "brown ", Added: true},
		{Value: "fox"},
	}, parts)
}

func TestDiffRemovedLineBreak(t *testing.T) {
	parts := Diff("Line one\nLine two", "Line one Line two")

	assert.Equal(t, []Part{
		{Value: "Line one"},
		{Value: "\n", Removed: true},
		{Value: " ", Added: true},
		{Value: "Line two"},
	}, parts)
}

func TestDiffIdentical(t *testing.T) {
	assert.Nil(t, Diff("", ""))

	parts := Diff("same text", "same text")
	assert.Equal(t, []Part{{Value: "same text"}}, parts)
	assert.False(t, HasChanges(parts))
}

func TestDiffReconstructsBothSides(t *testing.T) {
	pairs := []struct{ a, b string }{
		{"The quick fox", "The quick brown fox"},
		{"alpha beta gamma", "alpha gamma delta"},
		{"one\ntwo\nthree", "one two\n\nthree!"},
		{"", "brand new text"},
		{"all of it goes", ""},
		{"x  y", "x y"},
		{"repeat repeat repeat", "repeat again repeat"},
	}

	for _, p := range pairs {
		t.Run(p.a+"->"+p.b, func(t *testing.T) {
			parts := Diff(p.a, p.b)

			var before, after strings.Builder
			for _, part := range parts {
				require.NotEmpty(t, part.Value)
				require.False(t, part.Added && part.Removed)
				if !part.Added {
					before.WriteString(part.Value)
				}
				if !part.Removed {
					after.WriteString(part.Value)
				}
			}
			assert.Equal(t, p.a, before.String())
			assert.Equal(t, p.b, after.String())
			assert.True(t, HasChanges(parts))
		})
	}
}

func TestDiffMergesAdjacentParts(t *testing.T) {
	parts := Diff("a b", "c d")
	for i := 1; i < len(parts); i++ {
		prev, cur := parts[i-1], parts[i]
		assert.False(t, prev.Added == cur.Added && prev.Removed == cur.Removed,
			"parts %d and %d have the same polarity", i-1, i)
	}
}

func TestPartString(t *testing.T) {
	assert.Equal(t, "+x", Part{Value: "x", Added: true}.String())
	assert.Equal(t, "-x", Part{Value: "x", Removed: true}.String())
	assert.Equal(t, "=x", Part{Value: "x"}.String())
}
