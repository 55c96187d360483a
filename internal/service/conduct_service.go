package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AskKenImani/school-backend/internal/models"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

type conductRepository interface {
	FindByStudent(ctx context.Context, studentID string) (*models.Conduct, error)
	Upsert(ctx context.Context, conduct *models.Conduct) error
}

// UpsertConductRequest carries a behavioural assessment for one student.
// One record per student; resubmitting replaces the previous assessment.
type UpsertConductRequest struct {
	StudentID      string `json:"student_id" validate:"required"`
	Punctuality    string `json:"punctuality" validate:"required"`
	Neatness       string `json:"neatness" validate:"required"`
	Obedience      string `json:"obedience" validate:"required"`
	Teamwork       string `json:"teamwork" validate:"required"`
	TeacherComment string `json:"teacher_comment"`
}

// ConductService manages behavioural records.
type ConductService struct {
	repo      conductRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewConductService constructs the conduct service.
func NewConductService(repo conductRepository, validate *validator.Validate, logger *zap.Logger) *ConductService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConductService{repo: repo, validator: validate, logger: logger}
}

// Get returns the conduct record for a student, honouring the role-scoped
// read policy.
func (s *ConductService) Get(ctx context.Context, claims *models.JWTClaims, studentID string) (*models.Conduct, error) {
	if err := EnsureStudentAccess(claims, studentID); err != nil {
		return nil, err
	}
	conduct, err := s.repo.FindByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "conduct record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load conduct")
	}
	return conduct, nil
}

// Upsert records or replaces a student's behavioural assessment.
func (s *ConductService) Upsert(ctx context.Context, req UpsertConductRequest) (*models.Conduct, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conduct payload")
	}
	conduct := &models.Conduct{
		StudentID:      req.StudentID,
		Punctuality:    req.Punctuality,
		Neatness:       req.Neatness,
		Obedience:      req.Obedience,
		Teamwork:       req.Teamwork,
		TeacherComment: req.TeacherComment,
	}
	if err := s.repo.Upsert(ctx, conduct); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save conduct")
	}
	return conduct, nil
}
