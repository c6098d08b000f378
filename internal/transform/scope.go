package transform

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/textedit"
)

// ScopeKind selects the text a run transforms.
type ScopeKind uint8

const (
	// ScopeAuto is the selection when one exists, else the paragraph.
	ScopeAuto ScopeKind = iota
	ScopeSelection
	ScopeParagraph
	ScopeDocument
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeSelection:
		return "selection"
	case ScopeParagraph:
		return "paragraph"
	case ScopeDocument:
		return "document"
	default:
		return "auto"
	}
}

// ParseScope parses a scope name.
func ParseScope(s string) (ScopeKind, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ScopeAuto, nil
	case "selection":
		return ScopeSelection, nil
	case "paragraph":
		return ScopeParagraph, nil
	case "document":
		return ScopeDocument, nil
	default:
		return 0, fmt.Errorf("unknown scope %q", s)
	}
}

// resolveScope returns the concrete scope and range of a run.
func resolveScope(doc *document.Document, kind ScopeKind) (ScopeKind, textedit.Range, error) {
	sels := doc.Selections()
	main := document.Cursor(doc.Cursor())
	if len(sels) > 0 {
		main = sels[0]
	}

	if kind == ScopeAuto {
		kind = ScopeParagraph
		if !main.IsEmpty() {
			kind = ScopeSelection
		}
	}

	switch kind {
	case ScopeSelection:
		return kind, main.Range(), nil
	case ScopeParagraph:
		r, err := doc.ParagraphAt(main.Head)
		return kind, r, err
	default:
		text := doc.Text()
		return ScopeDocument, textedit.NewRange(FrontmatterEnd(text), len(text)), nil
	}
}

// FrontmatterEnd returns the offset where the body of text starts: just
// after a leading YAML frontmatter block delimited by "---" lines, or 0
// when there is none. A block that is not valid YAML is not frontmatter.
func FrontmatterEnd(text string) int {
	const open = "---\n"
	if !strings.HasPrefix(text, open) {
		return 0
	}
	pos := len(open)
	for pos < len(text) {
		line, next := text[pos:], len(text)
		if nl := strings.IndexByte(line, '\n'); nl >= 0 {
			line, next = line[:nl], pos+nl+1
		}
		if line == "---" {
			var node yaml.Node
			if err := yaml.Unmarshal([]byte(text[len(open):pos]), &node); err != nil {
				return 0
			}
			return next
		}
		pos = next
	}
	return 0
}
