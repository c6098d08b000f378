package transform

import (
	"errors"
	"fmt"

	"github.com/dshills/redline/internal/prompt"
)

// Transformation errors.
var (
	// ErrEmptyInput indicates the target text is empty or whitespace.
	ErrEmptyInput = errors.New("empty input")

	// ErrActiveSuggestions indicates the document still has pending marks.
	ErrActiveSuggestions = errors.New("active suggestions")

	// ErrMultipleSelections indicates more than one selection.
	ErrMultipleSelections = errors.New("multiple selections not supported")

	// ErrNoPrompt indicates no prompt is available.
	ErrNoPrompt = prompt.ErrNoPrompt

	// ErrStaleContext indicates the active document changed while the
	// model was generating.
	ErrStaleContext = errors.New("active document changed")

	// ErrNoChanges indicates the model returned text identical to the
	// input. Nothing is applied.
	ErrNoChanges = errors.New("no changes suggested")
)

// PreconditionError is a run refused before any model call.
type PreconditionError struct {
	Scope  ScopeKind
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s %s", e.Scope, e.Reason)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// ProviderError is a failed or empty generation call.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StaleContextError is a result discarded because the document it was
// computed against is no longer the one being edited.
type StaleContextError struct {
	Want string
	Got  string

	// Revisions are set when the document stayed active but was edited.
	WantRevision uint64
	GotRevision  uint64
}

func (e *StaleContextError) Error() string {
	if e.Want != e.Got {
		return fmt.Sprintf("active document changed from %q to %q, aborting", e.Want, e.Got)
	}
	return fmt.Sprintf("document %q edited during generation (revision %d, now %d), aborting",
		e.Want, e.WantRevision, e.GotRevision)
}

func (e *StaleContextError) Unwrap() error {
	return ErrStaleContext
}
