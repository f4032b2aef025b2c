// Package slog provides logging decorators for hdscrape services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hdscrape"
)

// Ensure LoggingSitemapService implements hdscrape.SitemapService.
var _ hdscrape.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with debug logging.
type LoggingSitemapService struct {
	next   hdscrape.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next hdscrape.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// ReadURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) ReadURLs(ctx context.Context, sitemapURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap read",
			"url", sitemapURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReadURLs(ctx, sitemapURL)
}
