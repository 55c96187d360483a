package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AskKenImani/school-backend/internal/models"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

type mockStudentRepo struct {
	students []models.StudentDetail
	exists   bool
	created  *models.Student
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	return m.students, len(m.students), nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	for i := range m.students {
		if m.students[i].ID == id {
			return &m.students[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) ExistsByIdentity(ctx context.Context, email, admissionNo, username string) (bool, error) {
	return m.exists, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = "s-new"
	m.created = student
	return nil
}

func (m *mockStudentRepo) AssignClass(ctx context.Context, studentID string, classID *string) error {
	return nil
}

type mockUserWriter struct {
	created *models.User
}

func (m *mockUserWriter) Create(ctx context.Context, user *models.User) error {
	m.created = user
	return nil
}

type mockStudentAttendance struct {
	records []models.Attendance
}

func (m *mockStudentAttendance) ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	return m.records, nil
}

func newTestStudentService(repo *mockStudentRepo, users *mockUserWriter) *StudentService {
	return NewStudentService(repo, users, &mockStudentAttendance{}, nil, nil)
}

func TestStudentServiceCreateIssuesTempPassword(t *testing.T) {
	repo := &mockStudentRepo{}
	users := &mockUserWriter{}
	svc := newTestStudentService(repo, users)

	created, err := svc.Create(context.Background(), CreateStudentRequest{
		FullName:    "Jane Doe",
		Email:       "jane@school.test",
		AdmissionNo: "ADM001",
		Username:    "jane",
	})
	require.NoError(t, err)
	assert.Len(t, created.TempPassword, 10)
	assert.Equal(t, "s-new", created.Student.ID)

	require.NotNil(t, users.created)
	assert.Equal(t, models.RoleStudent, users.created.Role)
	require.NotNil(t, users.created.ProfileID)
	assert.Equal(t, "s-new", *users.created.ProfileID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.created.PasswordHash), []byte(created.TempPassword)))
}

func TestStudentServiceCreateDuplicateIdentity(t *testing.T) {
	svc := newTestStudentService(&mockStudentRepo{exists: true}, &mockUserWriter{})

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		FullName:    "Jane Doe",
		Email:       "jane@school.test",
		AdmissionNo: "ADM001",
		Username:    "jane",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceGetSelfAccess(t *testing.T) {
	repo := &mockStudentRepo{students: []models.StudentDetail{
		{Student: models.Student{ID: "s-1", FullName: "Jane Doe"}},
	}}
	svc := newTestStudentService(repo, &mockUserWriter{})

	_, err := svc.Get(context.Background(), studentClaims("s-2"), "s-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	student, err := svc.Get(context.Background(), studentClaims("s-1"), "s-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", student.FullName)

	student, err = svc.Get(context.Background(), adminClaims(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", student.ID)
}

func TestStudentServiceGetMissing(t *testing.T) {
	svc := newTestStudentService(&mockStudentRepo{}, &mockUserWriter{})

	_, err := svc.Get(context.Background(), adminClaims(), "s-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnsureStudentAccess(t *testing.T) {
	assert.Error(t, EnsureStudentAccess(nil, "s-1"))
	assert.NoError(t, EnsureStudentAccess(adminClaims(), "s-1"))
	assert.NoError(t, EnsureStudentAccess(teacherClaims("t-1"), "s-1"))
	assert.NoError(t, EnsureStudentAccess(studentClaims("s-1"), "s-1"))
	assert.Error(t, EnsureStudentAccess(studentClaims("s-2"), "s-1"))
}
