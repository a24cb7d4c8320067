// Package fetcher loads the temperature dataset from a URL or a local file.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/egandro/global-temperature-heatmap/pkg/dataset"
)

// maxBodySize bounds the upstream document (the real one is ~300 KiB).
const maxBodySize = 32 << 20

// Source provides a dataset.
type Source interface {
	Fetch(ctx context.Context) (*dataset.Dataset, error)
}

// Client fetches a dataset from a single location. There is no retry: a
// failure is logged and returned to the caller.
type Client struct {
	location   string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a client for location, which is an http(s) URL, a file:// URL
// or a plain filesystem path.
func New(location string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		location: location,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Location returns where the client reads from.
func (c *Client) Location() string {
	return c.location
}

// Fetch loads and validates the dataset.
func (c *Client) Fetch(ctx context.Context) (*dataset.Dataset, error) {
	start := time.Now()
	ds, err := c.fetch(ctx)
	if err != nil {
		c.logger.Error("Failed to fetch dataset", "location", c.location, "error", err)
		return nil, err
	}
	c.logger.Debug("Fetched dataset", "location", c.location, "records", len(ds.MonthlyVariance), "duration", time.Since(start))
	return ds, nil
}

func (c *Client) fetch(ctx context.Context) (*dataset.Dataset, error) {
	u, err := url.Parse(c.location)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return c.fetchHTTP(ctx)
		case "file":
			return readFile(u.Path)
		}
	}
	return readFile(c.location)
}

func (c *Client) fetchHTTP(ctx context.Context) (*dataset.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dataset request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("dataset source returned non-OK status: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return dataset.Decode(io.LimitReader(resp.Body, maxBodySize))
}

func readFile(path string) (*dataset.Dataset, error) {
	// #nosec G304 -- path comes from the operator's configuration
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return dataset.Decode(io.LimitReader(f, maxBodySize))
}
