package main

import (
	"fmt"

	"github.com/fwojciec/hdscrape"
	"github.com/fwojciec/hdscrape/crawl"
)

// ScrapeCmd discovers pages, extracts their sections and exports the rows.
type ScrapeCmd struct {
	Sitemap   string
	URLs      []string
	Limit     int
	Mode      hdscrape.Mode
	Separator string
	Output    string
	Filter    *hdscrape.URLFilter
	Preview   bool
}

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	urls := c.targets(deps)

	if c.Preview {
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Total URLs to process: %d\n", len(urls))

	progress := func(p hdscrape.ScrapeProgress) {
		if p.Started {
			fmt.Fprintf(deps.Stdout, "Processing (%d/%d): %s\n", p.Position, p.Total, p.URL)
		}
	}

	pages, err := deps.Scraper.Scrape(deps.Ctx, urls, progress)
	if err != nil {
		return err
	}

	n, err := crawl.Export(deps.Ctx, deps.Writer, c.Mode, pages, c.Separator)
	if hdscrape.ErrorCode(err) == hdscrape.ENODATA {
		deps.Logger.Warn("no data to save", "urls", len(urls), "mode", c.Mode)
		fmt.Fprintln(deps.Stdout, "No data to save.")
		return nil
	} else if err != nil {
		return fmt.Errorf("saving results: %w", err)
	}

	dest := c.Output
	if deps.Destination != nil {
		dest = deps.Destination()
	}
	fmt.Fprintf(deps.Stdout, "Scraping complete. %d rows saved to %s.\n", n, dest)
	return nil
}

// targets returns the URLs to scrape: explicit URLs when given, otherwise
// the top-level URLs of the sitemap, cut to Limit.
func (c *ScrapeCmd) targets(deps *Dependencies) []string {
	var urls []string
	if len(c.URLs) > 0 {
		urls = c.Filter.Apply(c.URLs)
	} else {
		urls = deps.Scraper.Discover(deps.Ctx, c.Sitemap, c.Filter)
	}

	if c.Limit > 0 && len(urls) > c.Limit {
		urls = urls[:c.Limit]
	}
	return urls
}
