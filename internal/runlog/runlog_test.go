package runlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/redline/internal/suggest"
	"github.com/dshills/redline/internal/textedit"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordAndListRuns(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	base := time.UnixMilli(1_700_000_000_000)

	require.NoError(t, db.Record(ctx, Run{
		ID: "r1", Document: "a.md", Prompt: "improve", Model: "gpt-4.1-nano",
		Scope: "paragraph", Outcome: OutcomeApplied, Marks: 4, Cost: 0.001,
		InputTokens: 120, OutputTokens: 80, StartedAt: base, Duration: 1500 * time.Millisecond,
	}))
	require.NoError(t, db.Record(ctx, Run{
		ID: "r2", Document: "a.md", Prompt: "fix", Model: "gpt-4.1", Scope: "selection",
		Outcome: OutcomeFailed, Error: "openai: timeout", StartedAt: base.Add(time.Minute),
	}))

	runs, err := db.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r2", runs[0].ID)
	assert.Equal(t, OutcomeFailed, runs[0].Outcome)
	assert.Equal(t, "openai: timeout", runs[0].Error)

	r1 := runs[1]
	assert.Equal(t, 4, r1.Marks)
	assert.Equal(t, int64(120), r1.InputTokens)
	assert.Equal(t, 1500*time.Millisecond, r1.Duration)
	assert.True(t, r1.StartedAt.Equal(base))

	limited, err := db.Runs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "r2", limited[0].ID)

	total, err := db.TotalCost(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.001, total, 1e-9)
}

func TestRecordDuplicateID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.Record(ctx, Run{ID: "dup", Outcome: OutcomeApplied}))
	assert.Error(t, db.Record(ctx, Run{ID: "dup", Outcome: OutcomeApplied}))
}

func TestTotalCostEmpty(t *testing.T) {
	db := openTestDB(t)
	total, err := db.TotalCost(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func testState() suggest.State {
	return suggest.State{
		Scope: textedit.NewRange(0, 12),
		Marks: []suggest.Mark{
			{ID: "a", From: 2, To: 5, Type: suggest.MarkAdded},
			{ID: "b", From: 7, To: 9, Type: suggest.MarkRemoved, IsNewlineChange: true, NewlineChar: "\n"},
		},
	}
}

func TestPendingRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	content := "hello world!"

	require.NoError(t, db.SavePending(ctx, "/tmp/a.md", content, testState()))

	got, err := db.LoadPending(ctx, "/tmp/a.md", content)
	require.NoError(t, err)
	assert.Equal(t, testState(), got)

	paths, err := db.PendingPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/a.md"}, paths)
}

func TestPendingOverwrite(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SavePending(ctx, "a.md", "one", testState()))
	next := suggest.State{
		Scope: textedit.NewRange(0, 3),
		Marks: []suggest.Mark{{ID: "z", From: 0, To: 3, Type: suggest.MarkAdded}},
	}
	require.NoError(t, db.SavePending(ctx, "a.md", "two", next))

	_, err := db.LoadPending(ctx, "a.md", "one")
	assert.ErrorIs(t, err, ErrStalePending)

	got, err := db.LoadPending(ctx, "a.md", "two")
	require.NoError(t, err)
	assert.Equal(t, next, got)
}

func TestPendingStaleAndMissing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.LoadPending(ctx, "missing.md", "")
	assert.True(t, errors.Is(err, ErrNoPending))

	require.NoError(t, db.SavePending(ctx, "a.md", "original", testState()))
	_, err = db.LoadPending(ctx, "a.md", "edited elsewhere")
	assert.ErrorIs(t, err, ErrStalePending)
}

func TestSaveEmptyStateDeletes(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SavePending(ctx, "a.md", "x", testState()))
	require.NoError(t, db.SavePending(ctx, "a.md", "x", suggest.State{}))

	_, err := db.LoadPending(ctx, "a.md", "x")
	assert.ErrorIs(t, err, ErrNoPending)
}

func TestContentHashStable(t *testing.T) {
	assert.Equal(t, ContentHash("abc"), ContentHash("abc"))
	assert.NotEqual(t, ContentHash("abc"), ContentHash("abd"))
	assert.Len(t, ContentHash(""), 64)
}

func TestIsBusyError(t *testing.T) {
	assert.False(t, IsBusyError(nil))
	assert.False(t, IsBusyError(errors.New("database is locked")))
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, db.Record(ctx, Run{ID: "keep", Outcome: OutcomeNoChange}))
	require.NoError(t, db.Close())

	db, err = Open(dir)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	runs, err := db.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, OutcomeNoChange, runs[0].Outcome)
}
