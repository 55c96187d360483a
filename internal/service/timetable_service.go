package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AskKenImani/school-backend/internal/models"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

type timetableRepository interface {
	List(ctx context.Context, classID string) ([]models.TimetableEntry, error)
	Create(ctx context.Context, entry *models.TimetableEntry) error
}

// CreateTimetableRequest places a subject in a class's weekly schedule.
type CreateTimetableRequest struct {
	ClassID   string  `json:"class_id" validate:"required"`
	Day       string  `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday"`
	Period    int     `json:"period" validate:"required,min=1"`
	Subject   string  `json:"subject" validate:"required"`
	TeacherID *string `json:"teacher_id"`
}

// TimetableService manages class schedules.
type TimetableService struct {
	repo      timetableRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService constructs the timetable service.
func NewTimetableService(repo timetableRepository, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{repo: repo, validator: validate, logger: logger}
}

// List returns timetable entries, optionally narrowed to one class, ordered
// by day and period.
func (s *TimetableService) List(ctx context.Context, classID string) ([]models.TimetableEntry, error) {
	entries, err := s.repo.List(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetable")
	}
	return entries, nil
}

// Create adds a timetable entry.
func (s *TimetableService) Create(ctx context.Context, req CreateTimetableRequest) (*models.TimetableEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	entry := &models.TimetableEntry{
		ClassID:   req.ClassID,
		Day:       req.Day,
		Period:    req.Period,
		Subject:   req.Subject,
		TeacherID: req.TeacherID,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create timetable entry")
	}
	return entry, nil
}
