package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/hdscrape"
	"github.com/fwojciec/hdscrape/crawl"
)

// DefaultSitemapURL is the healthdirect content sitemap.
const DefaultSitemapURL = "https://www.healthdirect.gov.au/sitemap-content.xml"

// Export formats.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs []string `arg:"" optional:"" name:"url" help:"Page URLs to scrape instead of reading the sitemap"`

	Sitemap     string        `default:"${sitemap}" env:"HDSCRAPE_SITEMAP" help:"Sitemap to read page URLs from"`
	Limit       int           `short:"n" default:"20" env:"HDSCRAPE_LIMIT" help:"Maximum number of pages to process (0 for all)"`
	Mode        string        `short:"m" enum:"content,ids" default:"content" env:"HDSCRAPE_MODE" help:"Output mode: section content or H2 IDs per page"`
	Lists       string        `enum:"whole,items" default:"items" env:"HDSCRAPE_LISTS" help:"Collect each list as one fragment (whole) or one per item (items)"`
	Separator   string        `default:"${separator}" env:"HDSCRAPE_SEPARATOR" help:"Separator between content fragments"`
	Format      string        `short:"f" enum:"csv,sqlite" default:"csv" env:"HDSCRAPE_FORMAT" help:"Export format"`
	Output      string        `short:"o" env:"HDSCRAPE_OUTPUT" help:"Output path (default depends on mode and format)"`
	Rate        int           `default:"1" env:"HDSCRAPE_RATE" help:"Requests allowed per interval for each host"`
	Per         time.Duration `default:"1s" env:"HDSCRAPE_PER" help:"Rate limit interval"`
	Concurrency int           `short:"c" default:"1" env:"HDSCRAPE_CONCURRENCY" help:"Pages fetched at once"`
	Timeout     time.Duration `short:"t" default:"10s" env:"HDSCRAPE_TIMEOUT" help:"Timeout per request"`
	Render      bool          `env:"HDSCRAPE_RENDER" help:"Render pages with headless Chrome"`
	Include     []string      `sep:"none" env:"HDSCRAPE_INCLUDE" help:"Only keep URLs matching this regex (repeatable)"`
	Exclude     []string      `sep:"none" env:"HDSCRAPE_EXCLUDE" help:"Drop URLs matching this regex (repeatable)"`
	Preview     bool          `short:"p" help:"Print the URLs that would be scraped and exit"`
	Verbose     bool          `short:"v" env:"HDSCRAPE_VERBOSE" help:"Log every fetch and extraction"`
}

// outputPath returns the configured output path or the default for the
// selected format and mode.
func (c *CLI) outputPath() string {
	if c.Output != "" {
		return c.Output
	}
	if c.Format == FormatSQLite {
		return "hdscrape.db"
	}
	if hdscrape.Mode(c.Mode) == hdscrape.ModeIDs {
		return "h2_ids.csv"
	}
	return "h2_content.csv"
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Scraper *crawl.Scraper
	Writer  hdscrape.RowWriter

	// Destination describes where the last export went. Optional.
	Destination func() string
}
