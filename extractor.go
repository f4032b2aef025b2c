package hdscrape

// ListMode controls how a list following a heading contributes content.
type ListMode string

// ListMode values.
const (
	// ListWhole adds the flattened text of the whole list as one fragment.
	ListWhole ListMode = "whole"

	// ListItems adds the text of each list item as its own fragment.
	ListItems ListMode = "items"
)

// Extractor pulls titled sections out of an HTML page.
type Extractor interface {
	// Extract parses raw HTML and returns the page title and its sections.
	// The returned page has no URL; callers fill it in.
	//
	// The title is the text of the first <h1>, or empty. A section is
	// produced for every <h2> carrying an id attribute, with content taken
	// from the paragraph and list siblings that immediately follow it.
	Extract(html string) (*Page, error)
}
