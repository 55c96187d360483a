package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AskKenImani/school-backend/internal/grading"
	"github.com/AskKenImani/school-backend/internal/models"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
	"github.com/AskKenImani/school-backend/pkg/report"
)

type mockResultRepo struct {
	results   []models.Result
	byID      *models.Result
	created   *models.Result
	updated   *models.Result
	findErr   error
	createErr error
	updateErr error
}

func (m *mockResultRepo) List(ctx context.Context) ([]models.ResultDetail, error) {
	details := make([]models.ResultDetail, 0, len(m.results))
	for _, r := range m.results {
		details = append(details, models.ResultDetail{Result: r})
	}
	return details, nil
}

func (m *mockResultRepo) Find(ctx context.Context, filter models.ResultFilter) ([]models.Result, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.Result
	for _, r := range m.results {
		if r.StudentID != filter.StudentID {
			continue
		}
		if filter.Term != "" && r.Term != filter.Term {
			continue
		}
		if filter.Session != "" && r.Session != filter.Session {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockResultRepo) FindByID(ctx context.Context, id string) (*models.Result, error) {
	if m.byID == nil {
		return nil, sql.ErrNoRows
	}
	copied := *m.byID
	return &copied, nil
}

func (m *mockResultRepo) Create(ctx context.Context, result *models.Result) error {
	if m.createErr != nil {
		return m.createErr
	}
	result.ID = "res-1"
	m.created = result
	return nil
}

func (m *mockResultRepo) Update(ctx context.Context, result *models.Result) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = result
	return nil
}

type mockStudentReader struct {
	student *models.StudentDetail
}

func (m *mockStudentReader) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	if m.student == nil {
		return nil, sql.ErrNoRows
	}
	return m.student, nil
}

type mockConductReader struct {
	conduct *models.Conduct
}

func (m *mockConductReader) FindByStudent(ctx context.Context, studentID string) (*models.Conduct, error) {
	if m.conduct == nil {
		return nil, sql.ErrNoRows
	}
	return m.conduct, nil
}

type mockRenderer struct {
	summary *grading.StudentSummary
	remarks string
	data    []byte
	err     error
}

func (m *mockRenderer) Render(summary *grading.StudentSummary, identity report.Identity, conductRemarks string) ([]byte, error) {
	m.summary = summary
	m.remarks = conductRemarks
	if m.err != nil {
		return nil, m.err
	}
	if m.data == nil {
		return []byte("%PDF-1.4"), nil
	}
	return m.data, nil
}

func newResultService(repo *mockResultRepo, students *mockStudentReader, conduct *mockConductReader, renderer *mockRenderer) *ResultService {
	return NewResultService(repo, students, conduct, renderer, nil, nil)
}

func adminClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
}

func teacherClaims(profileID string) *models.JWTClaims {
	return &models.JWTClaims{UserID: "user-t1", Role: models.RoleTeacher, ProfileID: profileID}
}

func studentClaims(profileID string) *models.JWTClaims {
	return &models.JWTClaims{UserID: "user-s1", Role: models.RoleStudent, ProfileID: profileID}
}

func TestResultServiceCreateDerivesGrade(t *testing.T) {
	repo := &mockResultRepo{}
	svc := newResultService(repo, &mockStudentReader{}, &mockConductReader{}, &mockRenderer{})

	result, err := svc.Create(context.Background(), teacherClaims("t-1"), CreateResultRequest{
		StudentID: "s-1",
		Subject:   "Mathematics",
		Score:     70,
		Term:      "First Term",
		Session:   "2024/2025",
	})
	require.NoError(t, err)
	assert.Equal(t, "B", result.Grade)
	assert.Equal(t, "Very Good", result.GradeRemark)
	assert.Equal(t, "t-1", result.TeacherID)
	require.NotNil(t, repo.created)
	assert.Equal(t, "B", repo.created.Grade)
}

func TestResultServiceCreateRejectsOutOfRangeScore(t *testing.T) {
	repo := &mockResultRepo{}
	svc := newResultService(repo, &mockStudentReader{}, &mockConductReader{}, &mockRenderer{})

	for _, score := range []int{-1, 101} {
		_, err := svc.Create(context.Background(), teacherClaims("t-1"), CreateResultRequest{
			StudentID: "s-1",
			Subject:   "Mathematics",
			Score:     score,
			Term:      "First Term",
			Session:   "2024/2025",
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_SCORE", appErrors.FromError(err).Code)
	}
	assert.Nil(t, repo.created)
}

func TestResultServiceCreateAdminRequiresTeacherID(t *testing.T) {
	svc := newResultService(&mockResultRepo{}, &mockStudentReader{}, &mockConductReader{}, &mockRenderer{})

	_, err := svc.Create(context.Background(), adminClaims(), CreateResultRequest{
		StudentID: "s-1",
		Subject:   "Mathematics",
		Score:     70,
		Term:      "First Term",
		Session:   "2024/2025",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestResultServiceUpdateRecomputesGrade(t *testing.T) {
	repo := &mockResultRepo{byID: &models.Result{
		ID:          "res-1",
		StudentID:   "s-1",
		Subject:     "Mathematics",
		Score:       70,
		Grade:       "B",
		GradeRemark: "Very Good",
	}}
	svc := newResultService(repo, &mockStudentReader{}, &mockConductReader{}, &mockRenderer{})

	newScore := 38
	result, err := svc.Update(context.Background(), "res-1", UpdateResultRequest{Score: &newScore})
	require.NoError(t, err)
	assert.Equal(t, 38, result.Score)
	assert.Equal(t, "F", result.Grade)
	assert.Equal(t, "Fail", result.GradeRemark)
	require.NotNil(t, repo.updated)
	assert.Equal(t, "F", repo.updated.Grade)
}

func TestResultServiceUpdateCommentKeepsGrade(t *testing.T) {
	repo := &mockResultRepo{byID: &models.Result{
		ID:          "res-1",
		StudentID:   "s-1",
		Subject:     "Mathematics",
		Score:       70,
		Grade:       "B",
		GradeRemark: "Very Good",
	}}
	svc := newResultService(repo, &mockStudentReader{}, &mockConductReader{}, &mockRenderer{})

	comment := "Keep it up"
	result, err := svc.Update(context.Background(), "res-1", UpdateResultRequest{TeacherComment: &comment})
	require.NoError(t, err)
	assert.Equal(t, "B", result.Grade)
	assert.Equal(t, 70, result.Score)
	assert.Equal(t, "Keep it up", result.TeacherComment)
}

func TestResultServiceSummaryComputesAggregates(t *testing.T) {
	now := time.Now()
	repo := &mockResultRepo{results: []models.Result{
		{ID: "1", StudentID: "s-1", Subject: "Math", Score: 80, Term: "First Term", Session: "2024/2025", UpdatedAt: now},
		{ID: "2", StudentID: "s-1", Subject: "English", Score: 60, Term: "First Term", Session: "2024/2025", UpdatedAt: now},
		{ID: "3", StudentID: "s-1", Subject: "Science", Score: 45, Term: "First Term", Session: "2024/2025", UpdatedAt: now},
	}}
	svc := newResultService(repo, &mockStudentReader{}, &mockConductReader{}, &mockRenderer{})

	summary, err := svc.Summary(context.Background(), adminClaims(), "s-1", "First Term", "2024/2025")
	require.NoError(t, err)
	assert.Equal(t, 185, summary.TotalScore)
	assert.Equal(t, 300, summary.MaxScore)
	assert.InDelta(t, 61.67, summary.AveragePercent, 0.001)
}

func TestResultServiceSummaryStudentAccess(t *testing.T) {
	repo := &mockResultRepo{results: []models.Result{
		{ID: "1", StudentID: "s-1", Subject: "Math", Score: 80, Term: "First Term", Session: "2024/2025"},
	}}
	svc := newResultService(repo, &mockStudentReader{}, &mockConductReader{}, &mockRenderer{})

	_, err := svc.Summary(context.Background(), studentClaims("s-2"), "s-1", "First Term", "2024/2025")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	_, err = svc.Summary(context.Background(), studentClaims("s-1"), "s-1", "First Term", "2024/2025")
	assert.NoError(t, err)
}

func TestResultServiceSummaryNoRecords(t *testing.T) {
	svc := newResultService(&mockResultRepo{}, &mockStudentReader{}, &mockConductReader{}, &mockRenderer{})

	_, err := svc.Summary(context.Background(), adminClaims(), "s-1", "First Term", "2024/2025")
	require.Error(t, err)
	assert.Equal(t, "NO_RECORDS_FOUND", appErrors.FromError(err).Code)
}

func TestResultServiceReport(t *testing.T) {
	className := "JSS 1 A"
	repo := &mockResultRepo{results: []models.Result{
		{ID: "1", StudentID: "s-1", Subject: "Math", Score: 80, Term: "First Term", Session: "2024/2025"},
	}}
	students := &mockStudentReader{student: &models.StudentDetail{
		Student:   models.Student{ID: "s-1", FullName: "Jane Doe"},
		ClassName: &className,
	}}
	conduct := &mockConductReader{conduct: &models.Conduct{
		StudentID:   "s-1",
		Punctuality: "Excellent",
		Neatness:    "Good",
		Obedience:   "Good",
		Teamwork:    "Excellent",
	}}
	renderer := &mockRenderer{}
	svc := newResultService(repo, students, conduct, renderer)

	file, err := svc.Report(context.Background(), adminClaims(), "s-1", "First Term", "2024/2025")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe_Result_First Term_2024-2025.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.NotEmpty(t, file.Data)
	require.NotNil(t, renderer.summary)
	assert.Contains(t, renderer.remarks, "Punctuality: Excellent")
}

func TestResultServiceReportMissingStudent(t *testing.T) {
	repo := &mockResultRepo{results: []models.Result{
		{ID: "1", StudentID: "s-1", Subject: "Math", Score: 80, Term: "First Term", Session: "2024/2025"},
	}}
	svc := newResultService(repo, &mockStudentReader{}, &mockConductReader{}, &mockRenderer{})

	_, err := svc.Report(context.Background(), adminClaims(), "s-1", "First Term", "2024/2025")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
