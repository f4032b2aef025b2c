package hdscrape

// Page is the content extracted from a single URL.
type Page struct {
	URL      string
	Title    string
	Sections []Section

	// Err is set when the page could not be fetched or extracted.
	Err error
}

// Section is one identified heading plus the text that directly follows it.
// IDs are not guaranteed to be unique within a page.
type Section struct {
	ID      string
	Heading string
	Content []string
}

// SectionIDs returns the identifiers of the page's sections in document order.
func (p *Page) SectionIDs() []string {
	ids := make([]string, 0, len(p.Sections))
	for _, s := range p.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

// ScrapeProgress reports progress while pages are processed.
// Each page produces a Started event before it is fetched and a second
// event once it is done.
type ScrapeProgress struct {
	URL string

	// Position is the page's 1-based index in the input.
	Position  int
	Started   bool
	Completed int
	Total     int
	Error     error
}

// ScrapeProgressFunc is called as pages are processed.
type ScrapeProgressFunc func(ScrapeProgress)
