package runlog

import (
	"context"
	"fmt"
	"time"
)

// Outcome classifies how a run ended.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeNoChange Outcome = "no_change"
	OutcomeAborted  Outcome = "aborted"
	OutcomeFailed   Outcome = "failed"
)

// Run is one recorded transformation run.
type Run struct {
	ID           string
	Document     string
	Prompt       string
	Model        string
	Scope        string
	Outcome      Outcome
	Marks        int
	Overlength   bool
	Cost         float64
	InputTokens  int64
	OutputTokens int64
	Error        string
	StartedAt    time.Time
	Duration     time.Duration
}

// Record stores a run.
func (db *DB) Record(ctx context.Context, r Run) error {
	if r.StartedAt.IsZero() {
		r.StartedAt = db.now()
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO runs (id, document, prompt, model, scope, outcome, marks, overlength,
			cost, input_tokens, output_tokens, error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Document, r.Prompt, r.Model, r.Scope, string(r.Outcome), r.Marks, r.Overlength,
		r.Cost, r.InputTokens, r.OutputTokens, r.Error, r.StartedAt.UnixMilli(), r.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", r.ID, err)
	}
	return nil
}

// Runs returns the most recent runs, newest first. A limit of zero or less
// returns all runs.
func (db *DB) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, document, prompt, model, scope, outcome, marks, overlength,
			cost, input_tokens, output_tokens, error, started_at, duration_ms
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var (
			r         Run
			outcome   string
			startedAt int64
			duration  int64
		)
		if err := rows.Scan(&r.ID, &r.Document, &r.Prompt, &r.Model, &r.Scope, &outcome, &r.Marks,
			&r.Overlength, &r.Cost, &r.InputTokens, &r.OutputTokens, &r.Error, &startedAt, &duration); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.StartedAt = time.UnixMilli(startedAt)
		r.Duration = time.Duration(duration) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// TotalCost returns the summed estimated cost of every recorded run.
func (db *DB) TotalCost(ctx context.Context) (float64, error) {
	var total float64
	if err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(SUM(cost), 0) FROM runs`).Scan(&total); err != nil {
		return 0, fmt.Errorf("total cost: %w", err)
	}
	return total, nil
}
