// Package fetch retrieves and parses remote HTML documents.
// It wraps a browser-like HTTP GET in a bounded retry policy so transient
// failures (network errors, non-2xx statuses, timeouts) are absorbed before
// the extraction layer sees the document.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/bunkerwatch/internal/infra"
	"github.com/seenimoa/bunkerwatch/internal/logger"
)

// Fetcher retrieves a URL and returns the parsed document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// DefaultUserAgent is the user agent string used for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// HTTPFetcher is the production Fetcher: rate-limited, retrying HTTP GET.
type HTTPFetcher struct {
	client  *http.Client
	retry   infra.RetryPolicy
	limiter *infra.RateLimiter
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout,
// retry policy, and request rate (requests per second).
func NewHTTPFetcher(timeout time.Duration, retry infra.RetryPolicy, ratePerSec int) *HTTPFetcher {
	if ratePerSec < 1 {
		ratePerSec = 1
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		retry:   retry,
		limiter: infra.NewRateLimiter(ratePerSec, time.Second),
	}
}

// Fetch retrieves url and parses it, retrying per the configured policy.
// After exhaustion it returns the last attempt's error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	var doc *goquery.Document
	attempt := 0

	err := f.retry.Do(ctx, func(ctx context.Context) error {
		attempt++
		d, err := f.fetchOnce(ctx, url)
		if err != nil {
			logger.L().Warn().
				Str("url", url).
				Int("attempt", attempt).
				Err(err).
				Msg("fetch attempt failed")
			return err
		}
		doc = d
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return doc, nil
}

// fetchOnce performs a single GET with the fixed browser header set and
// parses the response body.
func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) (*goquery.Document, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}
