package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AskKenImani/school-backend/internal/service"
)

// MetricsHandler serves the Prometheus scrape endpoint and health probes.
type MetricsHandler struct {
	metrics   *service.MetricsService
	startedAt time.Time
}

func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{
		metrics:   metrics,
		startedAt: time.Now(),
	}
}

// Prometheus exposes collected metrics in the Prometheus text format.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health answers liveness and readiness probes.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}
