package mock

import (
	"context"

	"github.com/fwojciec/hdscrape"
)

var _ hdscrape.RowWriter = (*RowWriter)(nil)

// RowWriter is a mock implementation of hdscrape.RowWriter.
type RowWriter struct {
	WriteSectionsFn func(ctx context.Context, rows []hdscrape.Row) error
	WriteIDsFn      func(ctx context.Context, rows []hdscrape.IDRow) error
}

func (w *RowWriter) WriteSections(ctx context.Context, rows []hdscrape.Row) error {
	return w.WriteSectionsFn(ctx, rows)
}

func (w *RowWriter) WriteIDs(ctx context.Context, rows []hdscrape.IDRow) error {
	return w.WriteIDsFn(ctx, rows)
}
