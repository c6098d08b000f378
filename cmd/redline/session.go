package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/redline/internal/config"
	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/runlog"
	"github.com/dshills/redline/internal/workspace"
)

// session is one file opened for a command, with its saved suggestions
// restored.
type session struct {
	ws  *workspace.Workspace
	doc *document.Document
	db  *runlog.DB
}

func openSession(ctx context.Context, s config.Settings, path string) (*session, error) {
	db, err := runlog.Open(s.DataDir)
	if err != nil {
		return nil, err
	}
	ws := workspace.New()
	doc, err := ws.Open(path)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	sess := &session{ws: ws, doc: doc, db: db}

	st, err := db.LoadPending(ctx, doc.Path(), doc.Content())
	switch {
	case err == nil:
		if err := doc.Suggestions().Set(st.Marks, st.Scope); err != nil {
			_ = sess.Close()
			return nil, fmt.Errorf("restore suggestions for %s: %w", path, err)
		}
	case errors.Is(err, runlog.ErrNoPending):
	case errors.Is(err, runlog.ErrStalePending):
		logger.Warn().Str("path", doc.Path()).Msg("file changed since suggestions were saved, discarding them")
		if err := db.DeletePending(ctx, doc.Path()); err != nil {
			_ = sess.Close()
			return nil, err
		}
	default:
		_ = sess.Close()
		return nil, err
	}
	return sess, nil
}

// persist writes the document and records its pending suggestions keyed
// to the written content.
func (s *session) persist(ctx context.Context) error {
	if s.doc.IsModified() {
		if err := s.doc.Save(); err != nil {
			return err
		}
	}
	st, _ := s.doc.Suggestions().Current()
	return s.db.SavePending(ctx, s.doc.Path(), s.doc.Content(), st)
}

func (s *session) Close() error {
	return s.db.Close()
}
