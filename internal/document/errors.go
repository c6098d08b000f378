package document

import "errors"

// Errors returned by document operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the document.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., to < from).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrReadOnly indicates an edit was attempted on a read-only document.
	ErrReadOnly = errors.New("document is read-only")

	// ErrNoSuggestions indicates the document has no pending suggestions.
	ErrNoSuggestions = errors.New("no pending suggestions")
)
