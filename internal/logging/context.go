package logging

import "context"

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	documentKey contextKey = "document"
)

// WithRunID adds a transformation run ID to the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// GetRunID retrieves the run ID from the context.
// Returns empty string if not present.
func GetRunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithDocument adds a document name to the context.
func WithDocument(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, documentKey, name)
}

// GetDocument retrieves the document name from the context.
func GetDocument(ctx context.Context) string {
	if name, ok := ctx.Value(documentKey).(string); ok {
		return name
	}
	return ""
}
