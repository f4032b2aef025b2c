package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"regexp"
	"testing"

	"github.com/fwojciec/hdscrape"
	main "github.com/fwojciec/hdscrape/cmd/hdscrape"
	"github.com/fwojciec/hdscrape/crawl"
	"github.com/fwojciec/hdscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Scrape Command
//
// The scrape command resolves the URLs to process, scrapes them one by one
// with progress lines on stdout, and hands the rows to the configured
// writer. Running out of data is reported, not treated as a failure.

type fixture struct {
	deps   *main.Dependencies
	stdout *bytes.Buffer
	logs   *bytes.Buffer
}

func newFixture(sitemaps *mock.SitemapService, fetcher *mock.Fetcher, writer *mock.RowWriter) *fixture {
	stdout := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))
	return &fixture{
		stdout: stdout,
		logs:   logs,
		deps: &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Logger: logger,
			Scraper: &crawl.Scraper{
				Sitemaps: sitemaps,
				Fetcher:  fetcher,
				Extractor: &mock.Extractor{
					ExtractFn: func(html string) (*hdscrape.Page, error) {
						return &hdscrape.Page{
							Title:    "T",
							Sections: []hdscrape.Section{{ID: html, Heading: "H", Content: []string{"a", "b"}}},
						}, nil
					},
				},
				Logger: logger,
			},
			Writer: writer,
		},
	}
}

func sitemapOf(urls ...string) *mock.SitemapService {
	return &mock.SitemapService{
		ReadURLsFn: func(_ context.Context, _ string) ([]string, error) {
			return urls, nil
		},
	}
}

func echoFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			return url[len(url)-1:], nil
		},
	}
}

func TestScrapeCmd_DiscoversTopLevelURLsWithinLimit(t *testing.T) {
	t.Parallel()

	// Given: a sitemap with nested paths and more pages than the limit
	sitemaps := sitemapOf(
		"https://example.org/a",
		"https://example.org/a/nested",
		"https://example.org/b",
		"https://example.org/c",
	)
	var written []hdscrape.Row
	writer := &mock.RowWriter{
		WriteSectionsFn: func(_ context.Context, rows []hdscrape.Row) error {
			written = rows
			return nil
		},
	}
	f := newFixture(sitemaps, echoFetcher(), writer)

	cmd := &main.ScrapeCmd{
		Sitemap:   "https://example.org/sitemap.xml",
		Limit:     2,
		Mode:      hdscrape.ModeContent,
		Separator: " | ",
		Output:    "out.csv",
	}

	// When: the command runs
	err := cmd.Run(f.deps)

	// Then: only the first two top-level pages are scraped
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, "https://example.org/a", written[0].URL)
	assert.Equal(t, "a", written[0].SectionID)
	assert.Equal(t, "a | b", written[0].Text)
	assert.Equal(t, "https://example.org/b", written[1].URL)

	output := f.stdout.String()
	assert.Contains(t, output, "Total URLs to process: 2\n")
	assert.Contains(t, output, "Processing (1/2): https://example.org/a\n")
	assert.Contains(t, output, "Processing (2/2): https://example.org/b\n")
	assert.Contains(t, output, "Scraping complete. 2 rows saved to out.csv.\n")
}

func TestScrapeCmd_ExplicitURLsSkipSitemap(t *testing.T) {
	t.Parallel()

	sitemaps := &mock.SitemapService{
		ReadURLsFn: func(_ context.Context, _ string) ([]string, error) {
			t.Fatal("sitemap should not be read")
			return nil, nil
		},
	}
	var written []hdscrape.IDRow
	writer := &mock.RowWriter{
		WriteIDsFn: func(_ context.Context, rows []hdscrape.IDRow) error {
			written = rows
			return nil
		},
	}
	f := newFixture(sitemaps, echoFetcher(), writer)

	cmd := &main.ScrapeCmd{
		URLs:   []string{"https://example.org/fever/x", "https://example.org/cough/y"},
		Mode:   hdscrape.ModeIDs,
		Output: "ids.csv",
		Filter: &hdscrape.URLFilter{Exclude: []*regexp.Regexp{regexp.MustCompile("cough")}},
	}

	err := cmd.Run(f.deps)

	require.NoError(t, err)
	assert.Equal(t, []hdscrape.IDRow{{URL: "https://example.org/fever/x", IDs: "x"}}, written)
}

func TestScrapeCmd_Preview(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			t.Fatal("preview should not fetch")
			return "", nil
		},
	}
	f := newFixture(sitemapOf("https://example.org/a", "https://example.org/b"), fetcher, &mock.RowWriter{})

	cmd := &main.ScrapeCmd{Sitemap: "https://example.org/sitemap.xml", Preview: true}

	err := cmd.Run(f.deps)

	require.NoError(t, err)
	assert.Equal(t, "https://example.org/a\nhttps://example.org/b\n", f.stdout.String())
}

func TestScrapeCmd_AllFetchesFailReportsNoData(t *testing.T) {
	t.Parallel()

	// Given: every fetch fails
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("HTTP 500")
		},
	}
	writer := &mock.RowWriter{
		WriteSectionsFn: func(_ context.Context, _ []hdscrape.Row) error {
			t.Fatal("nothing should be written")
			return nil
		},
	}
	f := newFixture(sitemapOf("https://example.org/a"), fetcher, writer)

	cmd := &main.ScrapeCmd{Mode: hdscrape.ModeContent, Separator: " | "}

	// When: the command runs
	err := cmd.Run(f.deps)

	// Then: the run succeeds, nothing is written and "no data" is reported
	require.NoError(t, err)
	assert.Contains(t, f.stdout.String(), "No data to save.")
	assert.Contains(t, f.logs.String(), "no data to save")
	assert.Contains(t, f.logs.String(), "error fetching page")
}

func TestScrapeCmd_AllFetchesFailReportsNoDataInIDsMode(t *testing.T) {
	t.Parallel()

	// Given: every fetch fails while exporting IDs
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("HTTP 500")
		},
	}
	writer := &mock.RowWriter{
		WriteIDsFn: func(_ context.Context, _ []hdscrape.IDRow) error {
			t.Fatal("nothing should be written")
			return nil
		},
	}
	f := newFixture(sitemapOf("https://example.org/a", "https://example.org/b"), fetcher, writer)

	cmd := &main.ScrapeCmd{Mode: hdscrape.ModeIDs}

	// When: the command runs
	err := cmd.Run(f.deps)

	// Then: no rows of bare URLs are written and "no data" is reported
	require.NoError(t, err)
	assert.Contains(t, f.stdout.String(), "No data to save.")
	assert.Contains(t, f.logs.String(), "no data to save")
}

func TestScrapeCmd_PrintsProgressBeforeFetching(t *testing.T) {
	t.Parallel()

	var f *fixture
	var atFetch string
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			atFetch = f.stdout.String()
			return url[len(url)-1:], nil
		},
	}
	f = newFixture(sitemapOf("https://example.org/a"), fetcher, &mock.RowWriter{
		WriteSectionsFn: func(_ context.Context, _ []hdscrape.Row) error { return nil },
	})

	cmd := &main.ScrapeCmd{Mode: hdscrape.ModeContent, Separator: " | "}

	err := cmd.Run(f.deps)

	require.NoError(t, err)
	assert.Contains(t, atFetch, "Processing (1/1): https://example.org/a\n")
}

func TestScrapeCmd_WriterErrorIsReturned(t *testing.T) {
	t.Parallel()

	writer := &mock.RowWriter{
		WriteSectionsFn: func(_ context.Context, _ []hdscrape.Row) error {
			return errors.New("disk full")
		},
	}
	f := newFixture(sitemapOf("https://example.org/a"), echoFetcher(), writer)

	cmd := &main.ScrapeCmd{Mode: hdscrape.ModeContent, Separator: " | "}

	err := cmd.Run(f.deps)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotContains(t, f.stdout.String(), "Scraping complete")
}

func TestScrapeCmd_ReportsDestination(t *testing.T) {
	t.Parallel()

	f := newFixture(sitemapOf("https://example.org/a"), echoFetcher(), &mock.RowWriter{
		WriteSectionsFn: func(_ context.Context, _ []hdscrape.Row) error { return nil },
	})
	f.deps.Destination = func() string { return "scrape.db (run 42)" }

	cmd := &main.ScrapeCmd{Mode: hdscrape.ModeContent, Separator: " | ", Output: "scrape.db"}

	err := cmd.Run(f.deps)

	require.NoError(t, err)
	assert.Contains(t, f.stdout.String(), "Scraping complete. 1 rows saved to scrape.db (run 42).\n")
}

func TestScrapeCmd_CanceledContext(t *testing.T) {
	t.Parallel()

	f := newFixture(sitemapOf("https://example.org/a"), echoFetcher(), &mock.RowWriter{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.deps.Ctx = ctx

	cmd := &main.ScrapeCmd{URLs: []string{"https://example.org/a"}, Mode: hdscrape.ModeContent}

	err := cmd.Run(f.deps)

	assert.ErrorIs(t, err, context.Canceled)
}
