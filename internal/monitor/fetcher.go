package monitor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FetchResult is a completed page fetch. A non-200 status code is still a
// successful fetch at this layer; the monitor decides what it means.
type FetchResult struct {
	StatusCode int
	Body       string
}

// Fetcher retrieves a page body for the monitor. Transport and body-read
// problems are returned as errors with a human-readable reason.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (FetchResult, error)
}

// defaultFetchTimeout bounds a single page fetch.
const defaultFetchTimeout = 30 * time.Second

// HTTPFetcher fetches pages over plain HTTP GET with the default redirect
// policy.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with the default timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: defaultFetchTimeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return FetchResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResult{}, fmt.Errorf("read body: %w", err)
	}

	return FetchResult{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
