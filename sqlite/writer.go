package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/hdscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ hdscrape.RowWriter = (*RowWriter)(nil)

// RowWriter implements hdscrape.RowWriter using SQLite.
// Every write is recorded as a new run; rows of one run are inserted in a
// single transaction.
type RowWriter struct {
	db *DB

	// LastRunID is the ID of the most recent successful run.
	LastRunID string
}

// NewRowWriter creates a new RowWriter.
func NewRowWriter(db *DB) *RowWriter {
	return &RowWriter{db: db}
}

// hashContent computes xxHash of content and returns it as hex.
func hashContent(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}

// WriteSections stores section rows under a new run.
func (w *RowWriter) WriteSections(ctx context.Context, rows []hdscrape.Row) error {
	if len(rows) == 0 {
		return hdscrape.Errorf(hdscrape.ENODATA, "no rows to write")
	}
	return w.inRun(ctx, hdscrape.ModeContent, len(rows), func(tx *sql.Tx, runID string) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO sections (run_id, position, url, title, section_id, heading, content, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, r := range rows {
			if _, err := stmt.ExecContext(ctx, runID, i, r.URL, r.Title, r.SectionID, r.Heading, r.Text, hashContent(r.Text)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteIDs stores section-ID rows under a new run.
func (w *RowWriter) WriteIDs(ctx context.Context, rows []hdscrape.IDRow) error {
	if len(rows) == 0 {
		return hdscrape.Errorf(hdscrape.ENODATA, "no rows to write")
	}
	return w.inRun(ctx, hdscrape.ModeIDs, len(rows), func(tx *sql.Tx, runID string) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO page_ids (run_id, position, url, ids) VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, r := range rows {
			if _, err := stmt.ExecContext(ctx, runID, i, r.URL, r.IDs); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *RowWriter) inRun(ctx context.Context, mode hdscrape.Mode, count int, fn func(tx *sql.Tx, runID string) error) error {
	tx, err := w.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	runID := uuid.New().String()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, mode, row_count, created_at) VALUES (?, ?, ?, ?)
	`, runID, string(mode), count, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if err := fn(tx, runID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	w.LastRunID = runID
	return nil
}
