// Package fs provides file-based export of scraped rows.
package fs

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/fwojciec/hdscrape"
)

// Ensure CSVWriter implements hdscrape.RowWriter at compile time.
var _ hdscrape.RowWriter = (*CSVWriter)(nil)

// CSVWriter writes rows as a CSV file with a header row.
// Output is written to path.tmp and renamed over path once complete, so a
// failed export never leaves a partial file behind.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a new CSVWriter targeting path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Path returns the output file path.
func (w *CSVWriter) Path() string {
	return w.path
}

// WriteSections writes section rows under hdscrape.SectionHeader.
func (w *CSVWriter) WriteSections(ctx context.Context, rows []hdscrape.Row) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record())
	}
	return w.write(ctx, hdscrape.SectionHeader, records)
}

// WriteIDs writes section-ID rows under hdscrape.IDHeader.
func (w *CSVWriter) WriteIDs(ctx context.Context, rows []hdscrape.IDRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record())
	}
	return w.write(ctx, hdscrape.IDHeader, records)
}

func (w *CSVWriter) tempPath() string {
	return w.path + ".tmp"
}

func (w *CSVWriter) write(ctx context.Context, header []string, records [][]string) error {
	if len(records) == 0 {
		return hdscrape.Errorf(hdscrape.ENODATA, "no rows to write")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(w.tempPath())
	if err != nil {
		return err
	}

	if err := writeRecords(f, header, records); err != nil {
		f.Close()
		_ = os.Remove(w.tempPath())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(w.tempPath())
		return err
	}

	return os.Rename(w.tempPath(), w.path)
}

func writeRecords(f *os.File, header []string, records [][]string) error {
	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}
