package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AskKenImani/school-backend/internal/service"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
	"github.com/AskKenImani/school-backend/pkg/response"
)

// ConductHandler wires HTTP endpoints to the conduct service.
type ConductHandler struct {
	service *service.ConductService
}

// NewConductHandler creates a new handler.
func NewConductHandler(svc *service.ConductService) *ConductHandler {
	return &ConductHandler{service: svc}
}

// Get godoc
// @Summary Student conduct
// @Tags Conduct
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /conduct/{studentId} [get]
func (h *ConductHandler) Get(c *gin.Context) {
	conduct, err := h.service.Get(c.Request.Context(), claimsFromContext(c), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conduct, nil)
}

// Upsert godoc
// @Summary Record conduct
// @Description Record or replace a student's behavioural assessment
// @Tags Conduct
// @Accept json
// @Produce json
// @Param payload body service.UpsertConductRequest true "Conduct payload"
// @Success 200 {object} response.Envelope
// @Router /conduct [post]
func (h *ConductHandler) Upsert(c *gin.Context) {
	var req service.UpsertConductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid conduct payload"))
		return
	}

	conduct, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conduct, nil)
}
