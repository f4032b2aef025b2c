// Package crawl orchestrates sitemap discovery, page scraping, and export.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/fwojciec/hdscrape"
	"golang.org/x/sync/errgroup"
)

// Scraper discovers page URLs and extracts sections from each page.
type Scraper struct {
	Sitemaps    hdscrape.SitemapService
	Fetcher     hdscrape.Fetcher
	Extractor   hdscrape.Extractor
	RateLimiter hdscrape.DomainLimiter
	Logger      *slog.Logger

	// Concurrency bounds the number of pages fetched at once.
	// Values below 1 mean one page at a time.
	Concurrency int
}

// Discover reads the sitemap and returns its top-level URLs that pass the
// filter, in sitemap order. A sitemap that cannot be read is logged and
// yields no URLs.
func (s *Scraper) Discover(ctx context.Context, sitemapURL string, filter *hdscrape.URLFilter) []string {
	urls, err := s.Sitemaps.ReadURLs(ctx, sitemapURL)
	if err != nil {
		s.logger().Error("error fetching sitemap", "url", sitemapURL, "err", err)
		return []string{}
	}
	return filter.Apply(hdscrape.FilterTopLevel(urls))
}

// Scrape fetches and extracts every URL. The returned pages are in the same
// order as urls. A page that fails to fetch or extract is logged and
// returned with an empty title, no sections and Err set.
//
// progress, if not nil, is called before each page is fetched and again
// once it is done. Calls are serialized.
//
// Scrape only returns an error when ctx is canceled.
func (s *Scraper) Scrape(ctx context.Context, urls []string, progress hdscrape.ScrapeProgressFunc) ([]*hdscrape.Page, error) {
	pages := make([]*hdscrape.Page, len(urls))
	total := len(urls)

	var mu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Concurrency, 1))

	for i, u := range urls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if progress != nil {
				mu.Lock()
				progress(hdscrape.ScrapeProgress{
					URL:      u,
					Position: i + 1,
					Started:  true,
					Total:    total,
				})
				mu.Unlock()
			}

			page, err := s.scrapeOne(gctx, u)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			pages[i] = page

			mu.Lock()
			defer mu.Unlock()
			completed++
			if progress != nil {
				progress(hdscrape.ScrapeProgress{
					URL:       u,
					Position:  i + 1,
					Completed: completed,
					Total:     total,
					Error:     err,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// scrapeOne always returns a page; on failure it has only the URL and Err set.
func (s *Scraper) scrapeOne(ctx context.Context, rawURL string) (*hdscrape.Page, error) {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, hostOf(rawURL)); err != nil {
			return &hdscrape.Page{URL: rawURL, Err: err}, err
		}
	}

	html, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.logger().Error("error fetching page", "url", rawURL, "err", err)
		err = fmt.Errorf("fetch: %w", err)
		return &hdscrape.Page{URL: rawURL, Err: err}, err
	}

	page, err := s.Extractor.Extract(html)
	if err != nil {
		s.logger().Error("error extracting page", "url", rawURL, "err", err)
		err = fmt.Errorf("extract: %w", err)
		return &hdscrape.Page{URL: rawURL, Err: err}, err
	}
	page.URL = rawURL

	return page, nil
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
