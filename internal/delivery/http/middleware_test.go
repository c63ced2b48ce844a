package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIsAllowedOrigin(t *testing.T) {
	testCases := []struct {
		name    string
		origin  string
		allowed []string
		want    bool
	}{
		{"wildcard allows everything", "http://anywhere.example", []string{"*"}, true},
		{"exact match", "http://ui.example", []string{"http://ui.example"}, true},
		{"prefix wildcard", "http://app.example/page", []string{"http://app.example*"}, true},
		{"mismatch", "http://evil.example", []string{"http://ui.example"}, false},
		{"empty list", "http://ui.example", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isAllowedOrigin(tc.origin, tc.allowed); got != tc.want {
				t.Errorf("isAllowedOrigin(%q, %v) = %v, want %v", tc.origin, tc.allowed, got, tc.want)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware([]string{"*"}))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	t.Run("sets allow-origin header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://ui.example")
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://ui.example" {
			t.Errorf("Allow-Origin = %q, want the request origin", got)
		}
	})

	t.Run("preflight short-circuits with 204", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "http://ui.example")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", w.Code)
		}
	})
}
