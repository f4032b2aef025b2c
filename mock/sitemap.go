package mock

import (
	"context"

	"github.com/fwojciec/hdscrape"
)

var _ hdscrape.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of hdscrape.SitemapService.
type SitemapService struct {
	ReadURLsFn func(ctx context.Context, sitemapURL string) ([]string, error)
}

func (s *SitemapService) ReadURLs(ctx context.Context, sitemapURL string) ([]string, error) {
	return s.ReadURLsFn(ctx, sitemapURL)
}
