package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myang/missa-kala/internal/domain"
)

// FishChecker is the usecase surface the handler depends on
type FishChecker interface {
	Latest(ctx context.Context) (*domain.CheckReport, error)
	Run(ctx context.Context) (*domain.CheckReport, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	checker FishChecker
}

// NewHandler creates a new HTTP handler
func NewHandler(checker FishChecker) *Handler {
	return &Handler{checker: checker}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "missa-kala",
		"version": "1.0.0",
	})
}

// CheckFish serves the fish check report. The cached report from the
// latest run is preferred; a fresh run happens on cache miss or when
// the client passes ?refresh=true.
func (h *Handler) CheckFish(c *gin.Context) {
	refresh := c.Query("refresh") == "true"

	if !refresh {
		report, err := h.checker.Latest(c.Request.Context())
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"report": report, "cached": true})
			return
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	report, err := h.checker.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoRestaurants) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report, "cached": false})
}
