package hdscrape

import (
	"context"
	"strings"
)

// DefaultSeparator joins a section's content fragments into one field.
const DefaultSeparator = " | "

// IDSeparator joins a page's section IDs into one field.
const IDSeparator = ", "

// Mode selects what is exported for each page.
type Mode string

// Mode values.
const (
	// ModeContent exports one row per section with its heading and text.
	ModeContent Mode = "content"

	// ModeIDs exports one row per page listing its section IDs.
	ModeIDs Mode = "ids"
)

// Column headers for each export mode.
var (
	SectionHeader = []string{"URL", "H1", "H2_ID", "H2_Text", "Content"}
	IDHeader      = []string{"URL", "IDs"}
)

// Row is one exported (page, section) pair.
type Row struct {
	URL       string
	Title     string
	SectionID string
	Heading   string
	Text      string
}

// Record returns the row's fields in SectionHeader order.
func (r Row) Record() []string {
	return []string{r.URL, r.Title, r.SectionID, r.Heading, r.Text}
}

// IDRow lists the section IDs found on one page.
type IDRow struct {
	URL string
	IDs string
}

// Record returns the row's fields in IDHeader order.
func (r IDRow) Record() []string {
	return []string{r.URL, r.IDs}
}

// FlattenRows produces one Row per section across all pages. Pages without
// sections produce no rows. Content fragments are joined with sep.
func FlattenRows(pages []*Page, sep string) []Row {
	var rows []Row
	for _, p := range pages {
		if p == nil {
			continue
		}
		for _, s := range p.Sections {
			rows = append(rows, Row{
				URL:       p.URL,
				Title:     p.Title,
				SectionID: s.ID,
				Heading:   s.Heading,
				Text:      strings.Join(s.Content, sep),
			})
		}
	}
	return rows
}

// FlattenIDRows produces one IDRow per loaded page, including pages without
// sections. Pages that failed to load are skipped.
func FlattenIDRows(pages []*Page) []IDRow {
	var rows []IDRow
	for _, p := range pages {
		if p == nil || p.Err != nil {
			continue
		}
		rows = append(rows, IDRow{
			URL: p.URL,
			IDs: strings.Join(p.SectionIDs(), IDSeparator),
		})
	}
	return rows
}

// RowWriter persists exported rows.
type RowWriter interface {
	// WriteSections writes section rows. Implementations never produce
	// output for an empty slice.
	WriteSections(ctx context.Context, rows []Row) error

	// WriteIDs writes section-ID rows.
	WriteIDs(ctx context.Context, rows []IDRow) error
}
