package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/myang/missa-kala/internal/domain"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// StaticClient retrieves menu pages over plain HTTP. The returned
// markup is whatever the server sends, which for script-driven sites
// may predate the actual menu content.
type StaticClient struct {
	httpClient  *http.Client
	userAgent   string
	maxBody     int64
	rateLimiter *rate.Limiter
}

// StaticClientConfig holds configuration for the static fetcher
type StaticClientConfig struct {
	Timeout           time.Duration
	UserAgent         string
	MaxBodyBytes      int64
	RequestsPerSecond float64
}

// NewStaticClient creates a static fetcher. Zero config fields fall
// back to sane defaults.
func NewStaticClient(config StaticClientConfig) *StaticClient {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = "missa-kala/1.0 (+https://github.com/myang/missa-kala)"
	}
	maxBody := config.MaxBodyBytes
	if maxBody == 0 {
		maxBody = 2 << 20 // 2 MiB is plenty for a menu page
	}
	rps := config.RequestsPerSecond
	if rps == 0 {
		rps = 2
	}

	return &StaticClient{
		httpClient:  &http.Client{Timeout: timeout},
		userAgent:   userAgent,
		maxBody:     maxBody,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 5),
	}
}

// FetchHTML downloads one page and returns its markup decoded to UTF-8.
func (c *StaticClient) FetchHTML(ctx context.Context, url string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s", domain.ErrBadStatus, resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
		}
		defer gz.Close()
		body = gz
	}
	body = io.LimitReader(body, c.maxBody)

	utf8Body, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	data, err := io.ReadAll(utf8Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	if len(data) == 0 {
		return "", domain.ErrEmptyPage
	}
	return string(data), nil
}
