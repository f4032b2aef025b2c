package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/hdscrape"
)

var _ hdscrape.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   hdscrape.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next hdscrape.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what was found.
func (e *LoggingExtractor) Extract(html string) (page *hdscrape.Page, err error) {
	defer func(begin time.Time) {
		var title string
		var sections int
		if page != nil {
			title = page.Title
			sections = len(page.Sections)
		}
		e.logger.Info("extract",
			"title", title,
			"sections", sections,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
