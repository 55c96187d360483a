package service

import (
	"context"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AskKenImani/school-backend/internal/models"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

type noteRepository interface {
	Create(ctx context.Context, note *models.TeacherNote) error
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherNote, error)
}

type noteFileStore interface {
	SaveStream(r io.Reader, suggestedName string) (string, error)
}

// CreateNoteRequest carries a lesson note. Either Text or an uploaded file
// must be present; both is allowed.
type CreateNoteRequest struct {
	Title    string `json:"title" validate:"required"`
	Text     string `json:"text"`
	File     io.Reader
	Filename string
}

// NoteService manages teachers' lesson notes and their attachments.
type NoteService struct {
	repo      noteRepository
	files     noteFileStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoteService constructs the note service.
func NewNoteService(repo noteRepository, files noteFileStore, validate *validator.Validate, logger *zap.Logger) *NoteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{repo: repo, files: files, validator: validate, logger: logger}
}

// Create stores a lesson note for the calling teacher. An attached file is
// persisted to the file store first; the note row records its public URL.
func (s *NoteService) Create(ctx context.Context, claims *models.JWTClaims, req CreateNoteRequest) (*models.TeacherNote, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	teacherID := claims.ProfileID
	if teacherID == "" {
		teacherID = claims.UserID
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}
	if strings.TrimSpace(req.Text) == "" && req.File == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "note requires text or a file")
	}

	note := &models.TeacherNote{
		TeacherID: teacherID,
		Title:     req.Title,
		Text:      req.Text,
	}
	if req.File != nil {
		url, err := s.files.SaveStream(req.File, req.Filename)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store note file")
		}
		note.FileURL = url
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create note")
	}
	return note, nil
}

// ListByTeacher returns a teacher's notes, newest first.
func (s *NoteService) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherNote, error) {
	notes, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notes")
	}
	return notes, nil
}
