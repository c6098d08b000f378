// Package transform runs an AI rewrite of part of a document and applies
// the result as reviewable suggestions.
//
// A run checks its preconditions, calls the model, diffs the returned text
// against the original and commits the merged text together with its
// suggestion marks in one document transaction. Every abort path leaves
// the document and its suggestion store untouched.
package transform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/redline/internal/config"
	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/logging"
	"github.com/dshills/redline/internal/prompt"
	"github.com/dshills/redline/internal/provider"
	"github.com/dshills/redline/internal/runlog"
	"github.com/dshills/redline/internal/suggest"
	"github.com/dshills/redline/internal/textedit"
	"github.com/dshills/redline/internal/workspace"
	"github.com/dshills/redline/internal/worddiff"
)

// Recorder stores finished runs.
type Recorder interface {
	Record(ctx context.Context, r runlog.Run) error
}

// Request describes one run.
type Request struct {
	// DocumentID names the document; the active document when empty.
	DocumentID string

	Scope    ScopeKind
	PromptID string

	// Model overrides the configured and per-prompt model.
	Model string

	// Context overrides the configured context selection.
	Context *prompt.ContextOptions
}

// Outcome reports a run.
type Outcome struct {
	RunID      string
	DocumentID string
	Scope      ScopeKind
	Prompt     string
	Model      string

	// Range is the transformed range before the run; Inserted is the range
	// of the merged text after it.
	Range    textedit.Range
	Inserted textedit.Range

	Marks      int
	Overlength bool
	Cost       float64
	Usage      provider.Usage

	// Notices are informational messages for the user.
	Notices []string

	Change document.Change
}

// Transformer runs transformations against the documents of a workspace.
type Transformer struct {
	ws  *workspace.Workspace
	gen provider.Generator

	mu       sync.RWMutex
	settings config.Settings

	recorder Recorder
	notify   func(string)
	log      zerolog.Logger
	now      func() time.Time
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithRecorder records every run.
func WithRecorder(r Recorder) Option {
	return func(t *Transformer) {
		t.recorder = r
	}
}

// WithNotify receives notices as soon as they are known, before the model
// call returns.
func WithNotify(fn func(string)) Option {
	return func(t *Transformer) {
		t.notify = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Transformer) {
		t.log = l
	}
}

// New creates a Transformer.
func New(ws *workspace.Workspace, gen provider.Generator, settings config.Settings, opts ...Option) *Transformer {
	t := &Transformer{
		ws:       ws,
		gen:      gen,
		settings: settings,
		log:      logging.Component("transform"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Settings returns the current settings.
func (t *Transformer) Settings() config.Settings {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.settings
}

// SetSettings replaces the settings used by later runs.
func (t *Transformer) SetSettings(s config.Settings) {
	t.mu.Lock()
	t.settings = s
	t.mu.Unlock()
}

// Run executes one transformation. ErrNoChanges is returned, with a
// populated Outcome, when the model suggested nothing.
func (t *Transformer) Run(ctx context.Context, req Request) (out Outcome, err error) {
	started := t.now()
	out.RunID = uuid.NewString()
	out.Scope = req.Scope

	ctx = logging.WithRunID(ctx, out.RunID)
	defer func() {
		t.record(ctx, out, err, started)
	}()

	doc, err := t.document(req.DocumentID)
	if err != nil {
		return out, err
	}
	out.DocumentID = doc.ID()
	ctx = logging.WithDocument(ctx, doc.Name())

	settings := t.Settings()

	if len(doc.Selections()) > 1 {
		return out, &PreconditionError{
			Scope:  ScopeSelection,
			Reason: "has multiple ranges, which are not supported",
			Err:    ErrMultipleSelections,
		}
	}

	scope, r, err := resolveScope(doc, req.Scope)
	if err != nil {
		return out, err
	}
	out.Scope, out.Range = scope, r

	text, err := doc.Slice(r)
	if err != nil {
		return out, err
	}
	if strings.TrimSpace(text) == "" {
		return out, &PreconditionError{Scope: scope, Reason: "is empty", Err: ErrEmptyInput}
	}
	if doc.IsReadOnly() {
		return out, &PreconditionError{Scope: scope, Reason: "is read-only", Err: document.ErrReadOnly}
	}
	if doc.Suggestions().IsActive() {
		return out, &PreconditionError{
			Scope:  scope,
			Reason: "already has active suggestions, resolve existing suggestions first",
			Err:    ErrActiveSuggestions,
		}
	}

	p, err := prompt.Select(settings.Prompts, req.PromptID, settings.DefaultPromptID)
	if err != nil {
		return out, &PreconditionError{Scope: scope, Reason: "has no prompt: " + err.Error(), Err: err}
	}
	p = p.Prepare(settings.TranslationLanguage)
	params := p.Apply(settings.Params())
	if req.Model != "" {
		params.Model = req.Model
	}
	params.Model = provider.ResolveModel(params.Model)
	out.Prompt, out.Model = p.ID, params.Model

	ctxOpts := settings.ContextOptions()
	if req.Context != nil {
		ctxOpts = *req.Context
	}
	extra := prompt.BuildContext(prompt.Source{
		Text:          doc.Text(),
		Target:        r,
		WholeDocument: scope == ScopeDocument,
	}, ctxOpts)
	system, user := prompt.Compose(p, text, extra)

	t.addNotice(&out, startNotice(scope, len(text), extra != "", settings))

	wantID, wantRev := t.ws.ActiveID(), doc.Revision()
	t.log.Debug().Ctx(ctx).
		Str("model", params.Model).
		Str("prompt", p.ID).
		Stringer("range", r).
		Bool("context", extra != "").
		Msg("requesting suggestions")

	resp, err := t.gen.Generate(ctx, provider.Request{
		Model:            params.Model,
		System:           system,
		User:             user,
		Temperature:      params.Temperature,
		FrequencyPenalty: params.FrequencyPenalty,
		PresencePenalty:  params.PresencePenalty,
		MaxTokens:        params.MaxTokens,
	})
	kind := string(provider.KindOf(params.Model))
	if err != nil {
		return out, &ProviderError{Provider: kind, Err: err}
	}
	out.Cost, out.Usage, out.Overlength = resp.Cost, resp.Usage, resp.IsOverlength
	if resp.NewText == "" {
		return out, &ProviderError{Provider: kind, Err: provider.ErrEmptyResponse}
	}

	if gotID := t.ws.ActiveID(); gotID != wantID {
		return out, &StaleContextError{Want: wantID, Got: gotID}
	}
	if _, open := t.ws.Get(doc.ID()); !open {
		return out, &StaleContextError{Want: doc.ID()}
	}
	if gotRev := doc.Revision(); gotRev != wantRev {
		return out, &StaleContextError{Want: doc.ID(), Got: doc.ID(), WantRevision: wantRev, GotRevision: gotRev}
	}

	parts := worddiff.Diff(textedit.NormalizeLineEndings(text), textedit.NormalizeLineEndings(resp.NewText))
	if !worddiff.HasChanges(parts) {
		return out, ErrNoChanges
	}

	res := suggest.Translate(parts, r.From)
	inserted := res.Scope(r.From)
	edit := textedit.NewEdit(r, res.InsertText)
	cursor := inserted.To

	ch, err := doc.Dispatch(document.Transaction{
		Edit: &edit,
		Effects: []suggest.Effect{
			suggest.ClearEffect{},
			suggest.SetEffect{Marks: res.Marks, Scope: inserted},
		},
		Cursor: &cursor,
	})
	if err != nil {
		return out, fmt.Errorf("apply suggestions: %w", err)
	}
	out.Change, out.Inserted, out.Marks = ch, inserted, len(res.Marks)

	if out.Overlength {
		t.addNotice(&out, "Text exceeds the model's maximum output. Suggestions may be incomplete.")
	}
	t.addNotice(&out, fmt.Sprintf("%d %s applied. Est. cost: $%.4f", out.Marks, plural(out.Marks, "suggestion"), out.Cost))
	return out, nil
}

func (t *Transformer) document(id string) (*document.Document, error) {
	if id == "" {
		if doc := t.ws.Active(); doc != nil {
			return doc, nil
		}
		return nil, workspace.ErrDocumentNotFound
	}
	doc, ok := t.ws.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", workspace.ErrDocumentNotFound, id)
	}
	return doc, nil
}

func (t *Transformer) addNotice(out *Outcome, msg string) {
	out.Notices = append(out.Notices, msg)
	if t.notify != nil {
		t.notify(msg)
	}
}

func (t *Transformer) record(ctx context.Context, out Outcome, err error, started time.Time) {
	run := runlog.Run{
		ID:           out.RunID,
		Document:     out.DocumentID,
		Prompt:       out.Prompt,
		Model:        out.Model,
		Scope:        out.Scope.String(),
		Outcome:      classify(err),
		Marks:        out.Marks,
		Overlength:   out.Overlength,
		Cost:         out.Cost,
		InputTokens:  out.Usage.InputTokens,
		OutputTokens: out.Usage.OutputTokens,
		StartedAt:    started,
		Duration:     t.now().Sub(started),
	}
	if err != nil && !errors.Is(err, ErrNoChanges) {
		run.Error = err.Error()
	}

	ev := t.log.Info()
	if run.Outcome == runlog.OutcomeFailed {
		ev = t.log.Warn().Err(err)
	}
	ev.Ctx(ctx).
		Str("outcome", string(run.Outcome)).
		Int("marks", run.Marks).
		Float64("cost", run.Cost).
		Dur("duration", run.Duration).
		Msg("transformation finished")

	if t.recorder == nil {
		return
	}
	if rerr := t.recorder.Record(ctx, run); rerr != nil {
		t.log.Error().Ctx(ctx).Err(rerr).Msg("failed to record run")
	}
}

func classify(err error) runlog.Outcome {
	var pre *PreconditionError
	switch {
	case err == nil:
		return runlog.OutcomeApplied
	case errors.Is(err, ErrNoChanges):
		return runlog.OutcomeNoChange
	case errors.As(err, &pre), errors.Is(err, ErrStaleContext):
		return runlog.OutcomeAborted
	default:
		return runlog.OutcomeFailed
	}
}

func startNotice(scope ScopeKind, n int, withContext bool, s config.Settings) string {
	var b strings.Builder
	b.WriteString(capitalize(scope.String()))
	b.WriteString(" is being transformed")
	if withContext {
		b.WriteString(" (with context)")
	}
	if s.LongInputThreshold > 0 && n > s.LongInputThreshold {
		b.WriteString(". Large text, this may take a moment")
		if s.VeryLongInputThreshold > 0 && n > s.VeryLongInputThreshold {
			b.WriteString(" (a minute or longer)")
		}
	}
	b.WriteByte('.')
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
