package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AskKenImani/school-backend/internal/grading"
	"github.com/AskKenImani/school-backend/internal/models"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
	"github.com/AskKenImani/school-backend/pkg/report"
)

type resultRepository interface {
	List(ctx context.Context) ([]models.ResultDetail, error)
	Find(ctx context.Context, filter models.ResultFilter) ([]models.Result, error)
	FindByID(ctx context.Context, id string) (*models.Result, error)
	Create(ctx context.Context, result *models.Result) error
	Update(ctx context.Context, result *models.Result) error
}

type resultStudentReader interface {
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
}

type conductReader interface {
	FindByStudent(ctx context.Context, studentID string) (*models.Conduct, error)
}

type sheetRenderer interface {
	Render(summary *grading.StudentSummary, identity report.Identity, conductRemarks string) ([]byte, error)
}

// CreateResultRequest holds payload for submitting a score. Grade fields are
// intentionally absent: grades are always derived from the score.
type CreateResultRequest struct {
	StudentID      string `json:"student_id" validate:"required"`
	TeacherID      string `json:"teacher_id"`
	Subject        string `json:"subject" validate:"required"`
	Score          int    `json:"score"`
	TeacherComment string `json:"teacher_comment"`
	Term           string `json:"term" validate:"required"`
	Session        string `json:"session" validate:"required"`
}

// UpdateResultRequest mutates a score record. Nil fields are left untouched.
type UpdateResultRequest struct {
	Score          *int    `json:"score"`
	TeacherComment *string `json:"teacher_comment"`
}

// ReportFile is a rendered result sheet ready for streaming.
type ReportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ResultService orchestrates score submission, term aggregation, and result
// sheet rendering. Writes pass through the grading engine before they reach
// the repository, so a persisted grade can never be stale.
type ResultService struct {
	repo      resultRepository
	students  resultStudentReader
	conduct   conductReader
	renderer  sheetRenderer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResultService constructs the result service.
func NewResultService(repo resultRepository, students resultStudentReader, conduct conductReader, renderer sheetRenderer, validate *validator.Validate, logger *zap.Logger) *ResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{repo: repo, students: students, conduct: conduct, renderer: renderer, validator: validate, logger: logger}
}

// WithMetrics attaches render instrumentation.
func (s *ResultService) WithMetrics(m *MetricsService) *ResultService {
	s.metrics = m
	return s
}

// List returns all score records with display names.
func (s *ResultService) List(ctx context.Context) ([]models.ResultDetail, error) {
	results, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list results")
	}
	return results, nil
}

// Create submits a score. The grade and remark are derived here, at the
// write boundary, never accepted from the caller. Teachers submit under
// their own id; admins must name the subject teacher in the payload.
func (s *ResultService) Create(ctx context.Context, claims *models.JWTClaims, req CreateResultRequest) (*models.Result, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}

	teacherID := req.TeacherID
	if claims.Role == models.RoleTeacher {
		teacherID = claims.ProfileID
	}
	if teacherID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher_id is required")
	}

	grade, remark, err := grading.GradeFor(req.Score)
	if err != nil {
		return nil, err
	}

	result := &models.Result{
		StudentID:      req.StudentID,
		TeacherID:      teacherID,
		Subject:        req.Subject,
		Score:          req.Score,
		Grade:          string(grade),
		GradeRemark:    remark,
		TeacherComment: req.TeacherComment,
		Term:           req.Term,
		Session:        req.Session,
	}
	if err := s.repo.Create(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create result")
	}
	return result, nil
}

// Update mutates a score record. A changed score re-derives the grade and
// remark synchronously before the row is persisted.
func (s *ResultService) Update(ctx context.Context, id string, req UpdateResultRequest) (*models.Result, error) {
	result, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "result not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load result")
	}

	if req.Score != nil {
		grade, remark, err := grading.GradeFor(*req.Score)
		if err != nil {
			return nil, err
		}
		result.Score = *req.Score
		result.Grade = string(grade)
		result.GradeRemark = remark
	}
	if req.TeacherComment != nil {
		result.TeacherComment = *req.TeacherComment
	}

	if err := s.repo.Update(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update result")
	}
	return result, nil
}

// ListByStudent returns a student's score records under the role-scoped
// read policy. Term and session are optional narrowing filters.
func (s *ResultService) ListByStudent(ctx context.Context, claims *models.JWTClaims, studentID, term, session string) ([]models.Result, error) {
	if err := EnsureStudentAccess(claims, studentID); err != nil {
		return nil, err
	}
	results, err := s.repo.Find(ctx, models.ResultFilter{StudentID: studentID, Term: term, Session: session})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}
	return results, nil
}

// Summary computes the per-term aggregation for one student. The summary is
// recomputed from a snapshot read on every call; nothing is cached.
func (s *ResultService) Summary(ctx context.Context, claims *models.JWTClaims, studentID, term, session string) (*grading.StudentSummary, error) {
	if err := EnsureStudentAccess(claims, studentID); err != nil {
		return nil, err
	}
	if term == "" || session == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term and session are required")
	}
	records, err := s.repo.Find(ctx, models.ResultFilter{StudentID: studentID, Term: term, Session: session})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}
	summary, err := grading.Summarize(records, studentID, term, session)
	if err != nil {
		return nil, err
	}
	if len(summary.DuplicateSubjects) > 0 {
		s.logger.Warn("duplicate subject entries in term results",
			zap.String("student_id", studentID),
			zap.String("term", term),
			zap.String("session", session),
			zap.Strings("subjects", summary.DuplicateSubjects))
	}
	return summary, nil
}

// Report renders a student's result sheet as a PDF. The document is built
// fully in memory, so an aborted download never leaves a partial artifact.
func (s *ResultService) Report(ctx context.Context, claims *models.JWTClaims, studentID, term, session string) (*ReportFile, error) {
	summary, err := s.Summary(ctx, claims, studentID, term, session)
	if err != nil {
		return nil, err
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	identity := report.Identity{Name: student.FullName}
	if student.ClassName != nil {
		identity.ClassName = *student.ClassName
	}

	remarks := ""
	conduct, err := s.conduct.FindByStudent(ctx, studentID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load conduct")
	}
	if conduct != nil {
		remarks = conductRemarks(conduct)
	}

	start := time.Now()
	data, err := s.renderer.Render(summary, identity, remarks)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveReportRender(time.Since(start))
	}
	return &ReportFile{
		Data:        data,
		Filename:    report.Filename(student.FullName, term, session),
		ContentType: "application/pdf",
	}, nil
}

func conductRemarks(c *models.Conduct) string {
	parts := []string{
		fmt.Sprintf("Punctuality: %s", c.Punctuality),
		fmt.Sprintf("Neatness: %s", c.Neatness),
		fmt.Sprintf("Obedience: %s", c.Obedience),
		fmt.Sprintf("Teamwork: %s", c.Teamwork),
	}
	if c.TeacherComment != "" {
		parts = append(parts, c.TeacherComment)
	}
	return strings.Join(parts, ". ")
}
