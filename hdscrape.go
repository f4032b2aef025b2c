// Package hdscrape provides a CLI-based scraper for health-information sites.
// It reads a site's XML sitemap, fetches each top-level page, extracts the
// page title and the text that follows every identified second-level
// heading, and exports the result as tabular rows.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package hdscrape

// DefaultUserAgent is sent with every request. Some sites reject the default
// Go client identifier, so a Firefox-style string is used instead.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
