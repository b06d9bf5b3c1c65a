package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	defaultDelay   = 2 * time.Second

	// Directory sites block obvious bot agents, so the fetcher presents a
	// plain browser identity.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Fetcher retrieves pages with a fixed delay between requests so crawls stay
// polite. It is safe for sequential use only; the scraper never fetches
// concurrently.
type Fetcher struct {
	httpClient *http.Client
	delay      time.Duration
	lastFetch  time.Time
}

func NewFetcher(delay time.Duration) *Fetcher {
	if delay <= 0 {
		delay = defaultDelay
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		delay: delay,
	}
}

// Fetch retrieves one URL, waiting out the configured delay since the
// previous request first. Cancellation interrupts both the wait and the
// request itself.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if err := f.waitForSlot(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	// A failed attempt still hit the site, so it counts against the delay.
	f.lastFetch = time.Now()
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (f *Fetcher) waitForSlot(ctx context.Context) error {
	if f.lastFetch.IsZero() {
		return nil
	}

	wait := f.delay - time.Since(f.lastFetch)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
