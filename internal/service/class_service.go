package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AskKenImani/school-backend/internal/models"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context) ([]models.ClassDetail, error)
	FindByID(ctx context.Context, id string) (*models.ClassDetail, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, class *models.Class) error
	SetTeacher(ctx context.Context, classID string, teacherID *string) error
	StudentIDs(ctx context.Context, classID string) ([]string, error)
}

type classStudentAssigner interface {
	AssignClass(ctx context.Context, studentID string, classID *string) error
}

// CreateClassRequest holds payload for creating classes. The class name is
// derived from level and arm, e.g. "JSS1 A".
type CreateClassRequest struct {
	Level string `json:"level" validate:"required"`
	Arm   string `json:"arm" validate:"required"`
}

// UpdateClassRequest assigns a form teacher and/or replaces the members.
// Nil fields are left untouched.
type UpdateClassRequest struct {
	TeacherID  *string   `json:"teacher_id"`
	StudentIDs *[]string `json:"student_ids"`
}

// ClassService handles class use-cases.
type ClassService struct {
	repo      classRepository
	students  classStudentAssigner
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs the class service.
func NewClassService(repo classRepository, students classStudentAssigner, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, students: students, validator: validate, logger: logger}
}

// List returns all classes.
func (s *ClassService) List(ctx context.Context) ([]models.ClassDetail, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Create registers a new class from level and arm.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	name := fmt.Sprintf("%s %s", req.Level, req.Arm)
	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check class name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "class already exists")
	}
	class := &models.Class{Name: name, Level: req.Level, Arm: req.Arm}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	return class, nil
}

// Update assigns a form teacher and/or replaces the class membership.
func (s *ClassService) Update(ctx context.Context, id string, req UpdateClassRequest) (*models.ClassDetail, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	if req.TeacherID != nil {
		teacherID := req.TeacherID
		if *teacherID == "" {
			teacherID = nil
		}
		if err := s.repo.SetTeacher(ctx, id, teacherID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign teacher")
		}
	}

	if req.StudentIDs != nil {
		wanted := make(map[string]struct{}, len(*req.StudentIDs))
		for _, studentID := range *req.StudentIDs {
			wanted[studentID] = struct{}{}
			if err := s.students.AssignClass(ctx, studentID, &id); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign student")
			}
		}
		for _, existing := range current.StudentIDs {
			if _, keep := wanted[existing]; !keep {
				if err := s.students.AssignClass(ctx, existing, nil); err != nil {
					return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unassign student")
				}
			}
		}
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload class")
	}
	return updated, nil
}
