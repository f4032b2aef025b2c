package crawl

import (
	"context"

	"github.com/fwojciec/hdscrape"
)

// Export flattens pages for the given mode and writes the rows.
// It returns the number of rows written. If there are no rows nothing is
// written and an ENODATA error is returned.
func Export(ctx context.Context, w hdscrape.RowWriter, mode hdscrape.Mode, pages []*hdscrape.Page, sep string) (int, error) {
	switch mode {
	case hdscrape.ModeContent:
		rows := hdscrape.FlattenRows(pages, sep)
		if len(rows) == 0 {
			return 0, hdscrape.Errorf(hdscrape.ENODATA, "no data to save")
		}
		if err := w.WriteSections(ctx, rows); err != nil {
			return 0, err
		}
		return len(rows), nil
	case hdscrape.ModeIDs:
		rows := hdscrape.FlattenIDRows(pages)
		if len(rows) == 0 {
			return 0, hdscrape.Errorf(hdscrape.ENODATA, "no data to save")
		}
		if err := w.WriteIDs(ctx, rows); err != nil {
			return 0, err
		}
		return len(rows), nil
	default:
		return 0, hdscrape.Errorf(hdscrape.EINVALID, "unknown export mode %q", mode)
	}
}
