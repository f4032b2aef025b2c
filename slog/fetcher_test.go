package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/hdscrape/mock"
	hsslog "github.com/fwojciec/hdscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<h1>Asthma</h1>", nil
			},
		}

		fetcher := hsslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://example.com/asthma")

		require.NoError(t, err)
		assert.Equal(t, "<h1>Asthma</h1>", html)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://example.com/asthma")
		assert.Contains(t, output, "bytes=15")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("HTTP 503 for https://example.com/asthma")
			},
		}

		fetcher := hsslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/asthma")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "bytes=0")
		assert.Contains(t, output, "err=\"HTTP 503 for https://example.com/asthma\"")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("returns the inner error", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.DiscardHandler)
		inner := &mock.Fetcher{
			CloseFn: func() error { return errors.New("browser gone") },
		}

		err := hsslog.NewLoggingFetcher(inner, logger).Close()
		require.EqualError(t, err, "browser gone")
	})
}
