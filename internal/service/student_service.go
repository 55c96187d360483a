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

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	ExistsByIdentity(ctx context.Context, email, admissionNo, username string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	AssignClass(ctx context.Context, studentID string, classID *string) error
}

type studentUserWriter interface {
	Create(ctx context.Context, user *models.User) error
}

type studentAttendanceReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error)
}

// CreateStudentRequest holds payload for registering students.
type CreateStudentRequest struct {
	FullName    string  `json:"name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	AdmissionNo string  `json:"admission_no" validate:"required"`
	Username    string  `json:"username" validate:"required"`
	Guardian    string  `json:"guardian"`
	ClassID     *string `json:"class_id"`
}

// CreatedStudent returns the new student together with the one-time
// temporary password.
type CreatedStudent struct {
	Student      models.Student `json:"student"`
	TempPassword string         `json:"temp_password"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo       studentRepository
	users      studentUserWriter
	attendance studentAttendanceReader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, users studentUserWriter, attendance studentAttendanceReader, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, users: users, attendance: attendance, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return students, pagination, nil
}

// Get returns detailed student information. A student-role caller may only
// read their own record.
func (s *StudentService) Get(ctx context.Context, claims *models.JWTClaims, id string) (*models.StudentDetail, error) {
	if err := EnsureStudentAccess(claims, id); err != nil {
		return nil, err
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Create registers a new student with a generated one-time password and a
// matching login account.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*CreatedStudent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	exists, err := s.repo.ExistsByIdentity(ctx, req.Email, req.AdmissionNo, req.Username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student identity")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student already exists")
	}

	tempPassword, err := GenerateTempPassword()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate password")
	}
	hash, err := HashPassword(tempPassword)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	student := &models.Student{
		FullName:    req.FullName,
		Email:       req.Email,
		AdmissionNo: req.AdmissionNo,
		Username:    req.Username,
		Guardian:    req.Guardian,
		ClassID:     req.ClassID,
		Active:      true,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         models.RoleStudent,
		ProfileID:    &student.ID,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student account")
	}

	return &CreatedStudent{Student: *student, TempPassword: tempPassword}, nil
}

// Attendance returns the attendance history for a student. A student-role
// caller may only read their own history.
func (s *StudentService) Attendance(ctx context.Context, claims *models.JWTClaims, studentID string) ([]models.Attendance, error) {
	if err := EnsureStudentAccess(claims, studentID); err != nil {
		return nil, err
	}
	records, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	return records, nil
}

// EnsureStudentAccess enforces the role-scoped read policy: a student-role
// caller may only target their own student id; admins and teachers may
// target anyone. The grading core below this check receives identifiers
// that are already authorized.
func EnsureStudentAccess(claims *models.JWTClaims, studentID string) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if claims.Role == models.RoleStudent && claims.ProfileID != studentID {
		return appErrors.Clone(appErrors.ErrForbidden, "students may only view their own records")
	}
	return nil
}
