package prompt

import (
	"strings"

	"github.com/dshills/redline/internal/textedit"
)

// Markers placed around the target text inside a context block.
const (
	MarkerStart = "[[[USER_SELECTED_TEXT_STARTING_HERE>>>"
	MarkerEnd   = "<<<USER_SELECTED_TEXT_ENDING_HERE]]]"
)

// ContextOptions selects the context sent with a run.
type ContextOptions struct {
	// Custom is free text supplied by the user.
	Custom string

	// Dynamic sends DynamicLines lines before and after the target.
	// It takes precedence over WholeNote.
	Dynamic      bool
	DynamicLines int

	// WholeNote sends the whole document.
	WholeNote bool
}

// Source is the document a context is cut from.
type Source struct {
	Text   string
	Target textedit.Range

	// WholeDocument is set when the target is the whole document; the
	// whole-note context then carries no markers.
	WholeDocument bool
}

// BuildContext assembles the context block for a run, or "" if opts select
// none.
func BuildContext(src Source, opts ContextOptions) string {
	var parts []string

	if custom := strings.TrimSpace(opts.Custom); custom != "" {
		parts = append(parts, section("Custom User-Provided Context", custom))
	}

	switch {
	case opts.Dynamic:
		parts = append(parts, section("Dynamic Context", dynamicContext(src, opts.DynamicLines)))
	case opts.WholeNote:
		text := src.Text
		if !src.WholeDocument && src.Target.Within(len(text)) {
			text = markTarget(text, src.Target)
		}
		parts = append(parts, section("Whole Note Context", text))
	}

	return strings.Join(parts, "\n\n")
}

func section(name, body string) string {
	return "--- " + name + " Start ---\n" + body + "\n--- " + name + " End ---"
}

// dynamicContext returns n lines before and after the lines of the target,
// with the target wrapped in markers.
func dynamicContext(src Source, n int) string {
	text := src.Text
	target := src.Target
	if !target.Within(len(text)) {
		return ""
	}
	n = max(n, 0)

	from := target.From
	for i := 0; i <= n; i++ {
		j := strings.LastIndexByte(text[:from], '\n')
		if j < 0 {
			from = 0
			break
		}
		if i == n {
			from = j + 1
			break
		}
		from = j
	}

	to := target.To
	for i := 0; i <= n; i++ {
		j := strings.IndexByte(text[to:], '\n')
		if j < 0 {
			to = len(text)
			break
		}
		if i == n {
			to += j
			break
		}
		to += j + 1
	}

	local := target.Shift(-from)
	return markTarget(text[from:to], local)
}

func markTarget(text string, r textedit.Range) string {
	return text[:r.From] + MarkerStart + text[r.From:r.To] + MarkerEnd + text[r.To:]
}
