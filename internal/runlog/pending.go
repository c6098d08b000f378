package runlog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dshills/redline/internal/suggest"
	"github.com/dshills/redline/internal/textedit"
)

// Errors returned by pending suggestion storage.
var (
	// ErrNoPending indicates no suggestions are saved for a file.
	ErrNoPending = errors.New("no pending suggestions")

	// ErrStalePending indicates the file changed after its suggestions were
	// saved, so their offsets no longer apply.
	ErrStalePending = errors.New("file changed since suggestions were saved")
)

// ContentHash returns the hash pending suggestions are keyed to.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// SavePending stores the suggestion state of the file at path, whose text
// is content. An empty state deletes the entry.
func (db *DB) SavePending(ctx context.Context, path, content string, st suggest.State) error {
	if st.IsEmpty() {
		return db.DeletePending(ctx, path)
	}
	marks, err := json.Marshal(st.Marks)
	if err != nil {
		return fmt.Errorf("encode marks: %w", err)
	}
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO pending (path, content_hash, scope_from, scope_to, marks_json, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content_hash = excluded.content_hash,
			scope_from = excluded.scope_from,
			scope_to = excluded.scope_to,
			marks_json = excluded.marks_json,
			saved_at = excluded.saved_at`,
		path, ContentHash(content), st.Scope.From, st.Scope.To, string(marks), db.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save pending %s: %w", path, err)
	}
	return nil
}

// LoadPending returns the saved suggestion state of path. The state is
// only returned if content still hashes to the saved value.
func (db *DB) LoadPending(ctx context.Context, path, content string) (suggest.State, error) {
	var (
		hash     string
		from, to int
		marks    string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT content_hash, scope_from, scope_to, marks_json FROM pending WHERE path = ?`, path,
	).Scan(&hash, &from, &to, &marks)
	if errors.Is(err, sql.ErrNoRows) {
		return suggest.State{}, fmt.Errorf("%w: %s", ErrNoPending, path)
	}
	if err != nil {
		return suggest.State{}, fmt.Errorf("load pending %s: %w", path, err)
	}
	if hash != ContentHash(content) {
		return suggest.State{}, fmt.Errorf("%w: %s", ErrStalePending, path)
	}

	st := suggest.State{Scope: textedit.NewRange(from, to)}
	if err := json.Unmarshal([]byte(marks), &st.Marks); err != nil {
		return suggest.State{}, fmt.Errorf("decode marks: %w", err)
	}
	return st, nil
}

// DeletePending removes the saved state of path.
func (db *DB) DeletePending(ctx context.Context, path string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM pending WHERE path = ?`, path); err != nil {
		return fmt.Errorf("delete pending %s: %w", path, err)
	}
	return nil
}

// PendingPaths lists the files with saved suggestions.
func (db *DB) PendingPaths(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT path FROM pending ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
