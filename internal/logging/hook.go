package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies the run and document from an event's context into the
// event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if id := GetRunID(ctx); id != "" {
		e.Str("run", id)
	}
	if name := GetDocument(ctx); name != "" {
		e.Str("doc", name)
	}
}
