package mock

import "github.com/fwojciec/hdscrape"

var _ hdscrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of hdscrape.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*hdscrape.Page, error)
}

func (e *Extractor) Extract(html string) (*hdscrape.Page, error) {
	return e.ExtractFn(html)
}
