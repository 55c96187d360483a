package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AskKenImani/school-backend/internal/models"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

type attendanceRepository interface {
	List(ctx context.Context) ([]models.AttendanceDetail, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error)
	Create(ctx context.Context, record *models.Attendance) error
}

// MarkAttendanceRequest holds payload for recording attendance.
type MarkAttendanceRequest struct {
	ClassID   string                  `json:"class_id" validate:"required"`
	StudentID string                  `json:"student_id" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=Present Absent"`
}

// AttendanceService handles attendance use-cases.
type AttendanceService struct {
	repo      attendanceRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, validator: validate, logger: logger}
}

// List returns all attendance records with display names.
func (s *AttendanceService) List(ctx context.Context) ([]models.AttendanceDetail, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// Mark records one student's attendance, stamped with the acting user.
func (s *AttendanceService) Mark(ctx context.Context, claims *models.JWTClaims, req MarkAttendanceRequest) (*models.Attendance, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	record := &models.Attendance{
		ClassID:   req.ClassID,
		StudentID: req.StudentID,
		Status:    req.Status,
		MarkedBy:  claims.UserID,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	return record, nil
}

// StudentHistory returns attendance for one student under the role-scoped
// read policy.
func (s *AttendanceService) StudentHistory(ctx context.Context, claims *models.JWTClaims, studentID string) ([]models.Attendance, error) {
	if err := EnsureStudentAccess(claims, studentID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	return records, nil
}
