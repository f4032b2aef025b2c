package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hdscrape"
)

var _ hdscrape.RowWriter = (*LoggingRowWriter)(nil)

// LoggingRowWriter wraps a RowWriter with debug logging.
type LoggingRowWriter struct {
	next   hdscrape.RowWriter
	logger *slog.Logger
}

// NewLoggingRowWriter creates a new LoggingRowWriter.
func NewLoggingRowWriter(next hdscrape.RowWriter, logger *slog.Logger) *LoggingRowWriter {
	return &LoggingRowWriter{next: next, logger: logger}
}

// WriteSections delegates to the wrapped writer and logs the row count.
func (w *LoggingRowWriter) WriteSections(ctx context.Context, rows []hdscrape.Row) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write",
			"mode", hdscrape.ModeContent,
			"rows", len(rows),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteSections(ctx, rows)
}

// WriteIDs delegates to the wrapped writer and logs the row count.
func (w *LoggingRowWriter) WriteIDs(ctx context.Context, rows []hdscrape.IDRow) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write",
			"mode", hdscrape.ModeIDs,
			"rows", len(rows),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteIDs(ctx, rows)
}
