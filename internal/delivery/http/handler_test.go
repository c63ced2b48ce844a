package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/myang/missa-kala/config"
	"github.com/myang/missa-kala/internal/domain"
)

type mockChecker struct {
	latest    *domain.CheckReport
	latestErr error
	run       *domain.CheckReport
	runErr    error
	runCalls  int
}

func (m *mockChecker) Latest(ctx context.Context) (*domain.CheckReport, error) {
	return m.latest, m.latestErr
}

func (m *mockChecker) Run(ctx context.Context) (*domain.CheckReport, error) {
	m.runCalls++
	return m.run, m.runErr
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "development",
			AllowedOrigins: []string{"*"},
		},
	}
}

func sampleReport() *domain.CheckReport {
	return &domain.CheckReport{
		Results: []domain.RestaurantResult{
			{
				Name:      "Fish Place",
				URL:       "http://fish.example",
				HasFish:   true,
				FishItems: []string{"Lohikeitto"},
				Confidence: domain.Confidence{
					DayDetection: domain.ConfidenceHigh,
					Method:       domain.SectionMethodDayHeader,
				},
			},
		},
		LastChecked: time.Date(2024, 2, 6, 12, 0, 0, 0, time.UTC),
	}
}

func doRequest(checker *mockChecker, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := SetupRouter(testConfig(), NewHandler(checker))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := doRequest(&mockChecker{}, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", body["status"])
	}
}

func TestCheckFish(t *testing.T) {
	t.Run("serves the cached report when present", func(t *testing.T) {
		checker := &mockChecker{latest: sampleReport()}
		w := doRequest(checker, "/api/v1/fish/check")

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if checker.runCalls != 0 {
			t.Errorf("Run called %d times, want 0", checker.runCalls)
		}

		var body struct {
			Cached bool               `json:"cached"`
			Report domain.CheckReport `json:"report"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if !body.Cached {
			t.Error("cached = false, want true")
		}
		if len(body.Report.Results) != 1 || !body.Report.Results[0].HasFish {
			t.Errorf("report = %+v", body.Report)
		}
	})

	t.Run("runs a fresh check on cache miss", func(t *testing.T) {
		checker := &mockChecker{latestErr: domain.ErrCacheMiss, run: sampleReport()}
		w := doRequest(checker, "/api/v1/fish/check")

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if checker.runCalls != 1 {
			t.Errorf("Run called %d times, want 1", checker.runCalls)
		}
	})

	t.Run("refresh query forces a fresh run", func(t *testing.T) {
		checker := &mockChecker{latest: sampleReport(), run: sampleReport()}
		w := doRequest(checker, "/api/v1/fish/check?refresh=true")

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if checker.runCalls != 1 {
			t.Errorf("Run called %d times, want 1", checker.runCalls)
		}
	})

	t.Run("no restaurants maps to 503", func(t *testing.T) {
		checker := &mockChecker{latestErr: domain.ErrCacheMiss, runErr: domain.ErrNoRestaurants}
		w := doRequest(checker, "/api/v1/fish/check")

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	})
}
