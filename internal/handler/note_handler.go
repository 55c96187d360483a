package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AskKenImani/school-backend/internal/service"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
	"github.com/AskKenImani/school-backend/pkg/response"
)

// NoteHandler wires HTTP endpoints to the note service.
type NoteHandler struct {
	service *service.NoteService
}

// NewNoteHandler creates a new handler.
func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{service: svc}
}

// Create godoc
// @Summary Upload lesson note
// @Description Create a lesson note with optional file attachment
// @Tags Notes
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Note title"
// @Param text formData string false "Note text"
// @Param file formData file false "Attachment"
// @Success 201 {object} response.Envelope
// @Router /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	req := service.CreateNoteRequest{
		Title: c.PostForm("title"),
		Text:  c.PostForm("text"),
	}

	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		f, err := fileHeader.Open()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable upload"))
			return
		}
		defer f.Close()
		req.File = f
		req.Filename = fileHeader.Filename
	}

	note, err := h.service.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}
