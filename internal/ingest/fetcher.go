package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/veritium/veritium/internal/model"
)

// ErrRobotsDisallowed is returned when robots.txt forbids fetching a URL
var ErrRobotsDisallowed = errors.New("fetch disallowed by robots.txt")

const maxFetchAttempts = 3

// Per-domain pacing used when the config leaves the rate unset
const (
	defaultFetchRate  = 2.0
	defaultFetchBurst = 4
)

// fetchSleepFunc is replaceable in tests to avoid real backoff delays
var fetchSleepFunc = time.Sleep

// Fetcher retrieves HTML documents over HTTP with size limits, redirect caps,
// per-domain pacing, and optional robots.txt compliance.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *RobotsChecker
	limiter    *Limiter
}

// NewFetcher creates a fetcher from the HTTP configuration. A nil robots
// checker disables robots.txt enforcement.
func NewFetcher(cfg model.HTTPConfig, robots *RobotsChecker) *Fetcher {
	fetchRate := cfg.RequestsPerSecond
	if fetchRate <= 0 {
		fetchRate = defaultFetchRate
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultFetchBurst
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    robots,
		limiter:   NewLimiter(fetchRate, burst),
	}
}

// FetchResult contains the fetched HTML and response metadata
type FetchResult struct {
	HTML        string
	FinalURL    string
	StatusCode  int
	ContentType string
}

// Fetch retrieves HTML content from the given URL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	if f.robots != nil {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return nil, ErrRobotsDisallowed
		}
		if crawlDelay > 0 {
			fetchSleepFunc(crawlDelay)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	limitedReader := io.LimitReader(resp.Body, f.maxBytes)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &FetchResult{
		HTML:        string(body),
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// FetchWithRetry retries transient failures with exponential backoff.
// Non-retryable errors (4xx other than 429, robots denial, malformed
// requests) fail immediately.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error
	for attempt := 0; attempt < maxFetchAttempts; attempt++ {
		if attempt > 0 {
			fetchSleepFunc(time.Duration(attempt) * time.Second)
		}

		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		if !isRetryableFetchError(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("all %d attempts failed: %w", maxFetchAttempts, lastErr)
}

// isRetryableFetchError reports whether a fetch failure is worth retrying:
// 5xx and 429 statuses and transport-level errors are; client errors and
// request-building failures are not.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRobotsDisallowed) {
		return false
	}

	msg := err.Error()
	if strings.Contains(msg, "unexpected status: ") {
		return strings.Contains(msg, "unexpected status: 5") ||
			strings.Contains(msg, "unexpected status: 429")
	}
	return strings.HasPrefix(msg, "fetch: ")
}

// SubjectFromURL derives a human-readable title from a URL path when the
// document itself has no title element.
func SubjectFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	// De-slugify
	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")

	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}

	return last
}
