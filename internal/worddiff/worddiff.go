// Package worddiff computes a word-level diff between two texts.
//
// Both texts are split into word, whitespace, line-break and punctuation
// tokens; whitespace is kept as literal tokens so the concatenation of all
// unchanged and removed parts reproduces the first text and the
// concatenation of all unchanged and added parts reproduces the second.
// The token sequences are diffed with diffmatchpatch by encoding every
// distinct token as a single rune.
package worddiff

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Part is one element of a word diff.
type Part struct {
	Value   string
	Added   bool
	Removed bool
}

// Unchanged returns true if the part is common to both texts.
func (p Part) Unchanged() bool {
	return !p.Added && !p.Removed
}

// String returns the part with a one character polarity prefix.
func (p Part) String() string {
	switch {
	case p.Added:
		return "+" + p.Value
	case p.Removed:
		return "-" + p.Value
	default:
		return "=" + p.Value
	}
}

// HasChanges returns true if any part is added or removed.
func HasChanges(parts []Part) bool {
	for _, p := range parts {
		if !p.Unchanged() {
			return true
		}
	}
	return false
}

// Diff returns the ordered parts transforming a into b. Removed parts come
// before added parts at the same position.
func Diff(a, b string) []Part {
	if a == b {
		if a == "" {
			return nil
		}
		return []Part{{Value: a}}
	}

	table := newTokenTable()
	ra := table.encode(Tokenize(a))
	rb := table.encode(Tokenize(b))

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes(ra, rb, false)

	parts := make([]Part, 0, len(diffs))
	for _, d := range diffs {
		value := table.decode(d.Text)
		if value == "" {
			continue
		}
		part := Part{Value: value}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			part.Added = true
		case diffmatchpatch.DiffDelete:
			part.Removed = true
		}
		parts = appendPart(parts, part)
	}
	return parts
}

// appendPart merges p into the last part when both have the same polarity.
func appendPart(parts []Part, p Part) []Part {
	if n := len(parts); n > 0 {
		last := &parts[n-1]
		if last.Added == p.Added && last.Removed == p.Removed {
			last.Value += p.Value
			return parts
		}
	}
	return append(parts, p)
}

// Tokenize splits s into diff tokens: each line break ("\r\n", "\n" or
// "\r") on its own, runs of other whitespace, runs of word characters, and
// every other rune on its own.
func Tokenize(s string) []string {
	var tokens []string
	for i := 0; i < len(s); {
		n := tokenLen(s[i:])
		tokens = append(tokens, s[i:i+n])
		i += n
	}
	return tokens
}

// tokenLen returns the byte length of the token starting s.
func tokenLen(s string) int {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		return 2
	case s[0] == '\n' || s[0] == '\r':
		return 1
	}

	r, size := utf8.DecodeRuneInString(s)
	var class func(rune) bool
	switch {
	case isSpace(r):
		class = isSpace
	case isWord(r):
		class = isWord
	default:
		return size
	}

	n := size
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !class(r) {
			break
		}
		n += size
	}
	return n
}

func isSpace(r rune) bool {
	return r != '\n' && r != '\r' && unicode.IsSpace(r)
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// tokenBase is the first rune used to encode tokens. Starting in the
// private use area keeps every encoded rune clear of the surrogate range.
const tokenBase = 0xE000

// tokenTable interns tokens as runes.
type tokenTable struct {
	ids    map[string]rune
	tokens []string
}

func newTokenTable() *tokenTable {
	return &tokenTable{ids: make(map[string]rune)}
}

func (t *tokenTable) encode(tokens []string) []rune {
	out := make([]rune, len(tokens))
	for i, tok := range tokens {
		id, ok := t.ids[tok]
		if !ok {
			id = rune(tokenBase + len(t.tokens))
			t.ids[tok] = id
			t.tokens = append(t.tokens, tok)
		}
		out[i] = id
	}
	return out
}

func (t *tokenTable) decode(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(t.tokens[r-tokenBase])
	}
	return b.String()
}
