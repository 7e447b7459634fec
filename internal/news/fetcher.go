package news

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pders01/newsview/internal/config"
)

// HTTPError reports a non-success status from an upstream server.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("HTTP error: %d (retry after %s)", e.StatusCode, e.RetryAfter)
	}
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}

// Fetcher issues GET requests with the configured timeout and User-Agent.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Guardian.HTTPTimeout,
		},
		userAgent: cfg.Guardian.UserAgent,
	}
}

// Get returns the response for a 2xx status. The caller closes the body.
func (f *Fetcher) Get(ctx context.Context, rawURL, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &HTTPError{StatusCode: resp.StatusCode, RetryAfter: retryAfter(resp)}
	}

	return resp, nil
}

// retryAfter reads a Retry-After header given in seconds. It is reported,
// never acted on.
func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}
