// Package fetch downloads images referenced by URL in detect requests.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config holds the configuration for the image fetcher
type Config struct {
	// Timeout bounds the whole download.
	Timeout time.Duration

	// MaxSize caps the downloaded payload in bytes.
	MaxSize int64
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout: 15 * time.Second,
		MaxSize: 10 * 1024 * 1024,
	}
}

// Fetcher downloads a remote image over HTTP.
type Fetcher struct {
	httpClient *http.Client
	config     Config
}

// NewFetcher creates a new image fetcher
func NewFetcher(config Config) *Fetcher {
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if config.MaxSize <= 0 {
		config.MaxSize = DefaultConfig().MaxSize
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// Fetch downloads the image at url. The body is read up to MaxSize+1
// bytes so oversized payloads are detected without buffering them
// whole.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch image: unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	if int64(len(body)) > f.config.MaxSize {
		return nil, fmt.Errorf("fetch image: payload exceeds %d bytes", f.config.MaxSize)
	}

	return body, nil
}
