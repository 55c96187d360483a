package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AskKenImani/school-backend/internal/grading"
	"github.com/AskKenImani/school-backend/internal/models"
	"github.com/AskKenImani/school-backend/internal/service"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
	"github.com/AskKenImani/school-backend/pkg/response"
)

type resultService interface {
	List(ctx context.Context) ([]models.ResultDetail, error)
	Create(ctx context.Context, claims *models.JWTClaims, req service.CreateResultRequest) (*models.Result, error)
	Update(ctx context.Context, id string, req service.UpdateResultRequest) (*models.Result, error)
	ListByStudent(ctx context.Context, claims *models.JWTClaims, studentID, term, session string) ([]models.Result, error)
	Summary(ctx context.Context, claims *models.JWTClaims, studentID, term, session string) (*grading.StudentSummary, error)
	Report(ctx context.Context, claims *models.JWTClaims, studentID, term, session string) (*service.ReportFile, error)
}

// ResultHandler wires HTTP endpoints to the result service.
type ResultHandler struct {
	service resultService
}

// NewResultHandler creates a new handler.
func NewResultHandler(svc resultService) *ResultHandler {
	return &ResultHandler{service: svc}
}

// List godoc
// @Summary List all results
// @Tags Results
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /results [get]
func (h *ResultHandler) List(c *gin.Context) {
	results, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

// Create godoc
// @Summary Submit score
// @Description Record a subject score; the grade is derived from the score
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body service.CreateResultRequest true "Result payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /results [post]
func (h *ResultHandler) Create(c *gin.Context) {
	var req service.CreateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid result payload"))
		return
	}

	result, err := h.service.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update godoc
// @Summary Update score
// @Description Update a score record; a changed score re-derives the grade
// @Tags Results
// @Accept json
// @Produce json
// @Param resultId path string true "Result ID"
// @Param payload body service.UpdateResultRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /results/{resultId} [put]
func (h *ResultHandler) Update(c *gin.Context) {
	var req service.UpdateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid result payload"))
		return
	}

	result, err := h.service.Update(c.Request.Context(), c.Param("resultId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// StudentResults godoc
// @Summary Student score records
// @Description Score records for one student; students see only their own
// @Tags Results
// @Produce json
// @Param studentId path string true "Student ID"
// @Param term query string false "Term"
// @Param session query string false "Session"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /results/student/{studentId} [get]
func (h *ResultHandler) StudentResults(c *gin.Context) {
	results, err := h.service.ListByStudent(c.Request.Context(), claimsFromContext(c), c.Param("studentId"), c.Query("term"), c.Query("session"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

// Summary godoc
// @Summary Term summary
// @Description Aggregated totals, average and per-subject grades for a term
// @Tags Results
// @Produce json
// @Param studentId path string true "Student ID"
// @Param term query string true "Term"
// @Param session query string true "Session"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /results/student/{studentId}/summary [get]
func (h *ResultHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), claimsFromContext(c), c.Param("studentId"), c.Query("term"), c.Query("session"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Report godoc
// @Summary Download result sheet
// @Description Render a student's term result sheet as a PDF
// @Tags Results
// @Produce application/pdf
// @Param studentId path string true "Student ID"
// @Param term query string true "Term"
// @Param session query string true "Session"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /results/student/{studentId}/report [get]
func (h *ResultHandler) Report(c *gin.Context) {
	file, err := h.service.Report(c.Request.Context(), claimsFromContext(c), c.Param("studentId"), c.Query("term"), c.Query("session"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
