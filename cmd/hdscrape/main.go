package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"regexp"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/hdscrape"
	"github.com/fwojciec/hdscrape/crawl"
	"github.com/fwojciec/hdscrape/fs"
	"github.com/fwojciec/hdscrape/goquery"
	hdhttp "github.com/fwojciec/hdscrape/http"
	"github.com/fwojciec/hdscrape/rod"
	hdslog "github.com/fwojciec/hdscrape/slog"
	"github.com/fwojciec/hdscrape/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Flags may be set through HDSCRAPE_* variables in a local .env file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "loading .env:", err)
		os.Exit(1)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	helped := false
	parser, err := kong.New(cli,
		kong.Name("hdscrape"),
		kong.Description("Scrape H2 sections from healthdirect pages into CSV or SQLite"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { helped = true }),
		kong.Vars{
			"sitemap":   DefaultSitemapURL,
			"separator": hdscrape.DefaultSeparator,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && args[0] == "help" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Kong calls Exit after printing help, wherever --help appears.
	if _, err := parser.Parse(args); helped {
		return nil
	} else if err != nil {
		return err
	}

	filter, err := compileFilter(cli.Include, cli.Exclude)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	var sitemaps hdscrape.SitemapService = hdhttp.NewSitemapService(&http.Client{Timeout: cli.Timeout})
	var extractor hdscrape.Extractor = goquery.NewExtractor(goquery.WithListMode(hdscrape.ListMode(cli.Lists)))
	if cli.Verbose {
		sitemaps = hdslog.NewLoggingSitemapService(sitemaps, logger)
		extractor = hdslog.NewLoggingExtractor(extractor, logger)
	}

	deps.Scraper = &crawl.Scraper{
		Sitemaps:    sitemaps,
		Extractor:   extractor,
		RateLimiter: crawl.NewDomainLimiter(cli.Rate, cli.Per),
		Logger:      logger,
		Concurrency: cli.Concurrency,
	}

	cmd := &ScrapeCmd{
		Sitemap:   cli.Sitemap,
		URLs:      cli.URLs,
		Limit:     cli.Limit,
		Mode:      hdscrape.Mode(cli.Mode),
		Separator: cli.Separator,
		Output:    cli.outputPath(),
		Filter:    filter,
		Preview:   cli.Preview,
	}

	// Preview only reads the sitemap.
	if cli.Preview {
		return cmd.Run(deps)
	}

	var fetcher hdscrape.Fetcher
	if cli.Render {
		rodFetcher, err := rod.NewFetcher(
			rod.WithFetchTimeout(cli.Timeout),
			rod.WithUserAgent(hdscrape.DefaultUserAgent),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	} else {
		fetcher = hdhttp.NewFetcher(hdhttp.WithTimeout(cli.Timeout))
	}
	defer fetcher.Close()
	if cli.Verbose {
		fetcher = hdslog.NewLoggingFetcher(fetcher, logger)
	}
	deps.Scraper.Fetcher = fetcher

	var writer hdscrape.RowWriter
	switch cli.Format {
	case FormatSQLite:
		db := sqlite.NewDB(cmd.Output)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		rowWriter := sqlite.NewRowWriter(db)
		writer = rowWriter
		deps.Destination = func() string {
			return fmt.Sprintf("%s (run %s)", cmd.Output, rowWriter.LastRunID)
		}
	default:
		csvWriter := fs.NewCSVWriter(cmd.Output)
		writer = csvWriter
		deps.Destination = csvWriter.Path
	}
	if cli.Verbose {
		writer = hdslog.NewLoggingRowWriter(writer, logger)
	}
	deps.Writer = writer

	return cmd.Run(deps)
}

// compileFilter builds a URL filter from include and exclude patterns.
// It returns nil when no patterns are given.
func compileFilter(include, exclude []string) (*hdscrape.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	filter := &hdscrape.URLFilter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, hdscrape.Errorf(hdscrape.EINVALID, "invalid include pattern %q: %v", p, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, hdscrape.Errorf(hdscrape.EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}
