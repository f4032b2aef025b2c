package hdscrape

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// SitemapService reads URLs from XML sitemaps.
type SitemapService interface {
	// ReadURLs fetches the sitemap at sitemapURL and returns the <loc> of
	// every <url> entry in document order. Sitemap indexes are resolved
	// recursively.
	ReadURLs(ctx context.Context, sitemapURL string) ([]string, error)
}

// IsTopLevel reports whether the URL's path has exactly one non-empty
// segment after the host, e.g. https://example.org/fever.
func IsTopLevel(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return false
	}
	return !strings.Contains(path, "/")
}

// FilterTopLevel returns the top-level URLs from urls, preserving order.
func FilterTopLevel(urls []string) []string {
	filtered := make([]string, 0, len(urls))
	for _, u := range urls {
		if IsTopLevel(u) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}

// Apply returns the URLs that pass the filter, preserving order.
func (f *URLFilter) Apply(urls []string) []string {
	if f == nil {
		return urls
	}
	var filtered []string
	for _, u := range urls {
		if f.Match(u) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}
