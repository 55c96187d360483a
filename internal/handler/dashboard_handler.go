package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AskKenImani/school-backend/internal/middleware"
	"github.com/AskKenImani/school-backend/internal/models"
	"github.com/AskKenImani/school-backend/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context) (*models.DashboardSummary, bool, error)
	ReportTotals(ctx context.Context) (*models.ReportTotals, bool, error)
}

// DashboardHandler wires HTTP endpoints to the dashboard service.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc dashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary godoc
// @Summary Admin dashboard counters
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, cached, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, summary, nil, middleware.ExtractMeta(c))
}

// ReportTotals godoc
// @Summary Reports overview counters
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *DashboardHandler) ReportTotals(c *gin.Context) {
	totals, cached, err := h.service.ReportTotals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, totals, nil, middleware.ExtractMeta(c))
}
