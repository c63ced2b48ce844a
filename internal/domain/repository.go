package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching check reports
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// StaticFetcher retrieves a page's raw HTML over plain HTTP.
// The markup may predate client-side rendering.
type StaticFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// RenderedFetcher retrieves a page's visible text after scripts have
// run, using a browser-controlled surface. Implementations must release
// any tab/session resource they allocate on every return path.
type RenderedFetcher interface {
	FetchRenderedText(ctx context.Context, url string) (string, error)
}
