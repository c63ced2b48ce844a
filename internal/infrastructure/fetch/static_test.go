package fetch

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myang/missa-kala/internal/domain"
)

func TestNewStaticClient(t *testing.T) {
	client := NewStaticClient(StaticClientConfig{})

	assert.NotNil(t, client)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.Equal(t, 15*time.Second, client.httpClient.Timeout)
	assert.Equal(t, int64(2<<20), client.maxBody)
}

func TestFetchHTML(t *testing.T) {
	ctx := context.Background()

	t.Run("returns page body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte("<html><body><p>Tiistai: Lohikeitto</p></body></html>"))
		}))
		defer server.Close()

		client := NewStaticClient(StaticClientConfig{RequestsPerSecond: 100})
		html, err := client.FetchHTML(ctx, server.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "Lohikeitto")
	})

	t.Run("decodes gzip responses", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Header().Set("Content-Encoding", "gzip")
			gz := gzip.NewWriter(w)
			gz.Write([]byte("<html><body>Kalakeitto</body></html>"))
			gz.Close()
		}))
		defer server.Close()

		client := NewStaticClient(StaticClientConfig{RequestsPerSecond: 100})
		html, err := client.FetchHTML(ctx, server.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "Kalakeitto")
	})

	t.Run("decodes legacy charset to utf-8", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			// "päivän" with latin-1 ä (0xE4)
			w.Write([]byte("<html><body>p\xe4iv\xe4n lounas</body></html>"))
		}))
		defer server.Close()

		client := NewStaticClient(StaticClientConfig{RequestsPerSecond: 100})
		html, err := client.FetchHTML(ctx, server.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "päivän lounas")
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewStaticClient(StaticClientConfig{RequestsPerSecond: 100})
		_, err := client.FetchHTML(ctx, server.URL)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrBadStatus))
	})

	t.Run("unreachable host is a fetch failure", func(t *testing.T) {
		client := NewStaticClient(StaticClientConfig{Timeout: time.Second, RequestsPerSecond: 100})
		_, err := client.FetchHTML(ctx, "http://127.0.0.1:1")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrFetchFailed))
	})

	t.Run("body size is capped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			for i := 0; i < 1000; i++ {
				w.Write([]byte("0123456789"))
			}
		}))
		defer server.Close()

		client := NewStaticClient(StaticClientConfig{MaxBodyBytes: 100, RequestsPerSecond: 100})
		html, err := client.FetchHTML(ctx, server.URL)

		require.NoError(t, err)
		assert.LessOrEqual(t, len(html), 100)
	})

	t.Run("cancelled context aborts the fetch", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		client := NewStaticClient(StaticClientConfig{RequestsPerSecond: 100})
		_, err := client.FetchHTML(cancelled, "http://example.invalid")

		require.Error(t, err)
	})
}
