// Package goquery extracts titled sections from HTML using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/hdscrape"
)

// Ensure Extractor implements hdscrape.Extractor at compile time.
var _ hdscrape.Extractor = (*Extractor)(nil)

// Extractor implements hdscrape.Extractor with a linear walk over the
// siblings of each identified <h2>.
type Extractor struct {
	listMode hdscrape.ListMode
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithListMode sets how lists contribute content.
// Defaults to hdscrape.ListItems.
func WithListMode(mode hdscrape.ListMode) Option {
	return func(e *Extractor) {
		e.listMode = mode
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{listMode: hdscrape.ListItems}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the HTML and returns its title and sections.
func (e *Extractor) Extract(html string) (*hdscrape.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, hdscrape.Errorf(hdscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	page := &hdscrape.Page{
		Title: text(doc.Find("h1").First()),
	}

	doc.Find("h2[id]").Each(func(_ int, h2 *goquery.Selection) {
		id, _ := h2.Attr("id")
		page.Sections = append(page.Sections, hdscrape.Section{
			ID:      id,
			Heading: text(h2),
			Content: e.collect(h2),
		})
	})

	return page, nil
}

// collect gathers content from the paragraph and list siblings directly
// after the heading. It stops at the first sibling of any other kind.
func (e *Extractor) collect(heading *goquery.Selection) []string {
	var content []string
	for sib := heading.Next(); sib.Length() > 0; sib = sib.Next() {
		switch goquery.NodeName(sib) {
		case "p":
			content = appendText(content, text(sib))
		case "ul", "ol":
			content = e.appendList(content, sib)
		default:
			return content
		}
	}
	return content
}

func (e *Extractor) appendList(content []string, list *goquery.Selection) []string {
	if e.listMode == hdscrape.ListWhole {
		var parts []string
		list.Children().Each(func(_ int, child *goquery.Selection) {
			parts = appendText(parts, text(child))
		})
		return appendText(content, strings.Join(parts, " "))
	}

	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		content = appendText(content, text(li))
	})
	return content
}

func appendText(content []string, s string) []string {
	if s == "" {
		return content
	}
	return append(content, s)
}

// text returns the selection's text with whitespace runs collapsed.
func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
