package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AskKenImani/school-backend/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func resultColumns() []string {
	return []string{"id", "student_id", "teacher_id", "subject", "score", "grade", "grade_remark", "teacher_comment", "term", "session", "created_at", "updated_at"}
}

func TestResultRepositoryFindFiltersByTriple(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewResultRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(resultColumns()).
		AddRow("r1", "s-1", "t-1", "Math", 80, "A", "Excellent", "", "First Term", "2024/2025", now, now).
		AddRow("r2", "s-1", "t-1", "English", 60, "C", "Good", "", "First Term", "2024/2025", now, now)
	mock.ExpectQuery("SELECT id, student_id, teacher_id, subject, score, grade").
		WithArgs("s-1", "First Term", "2024/2025").
		WillReturnRows(rows)

	results, err := repo.Find(context.Background(), models.ResultFilter{StudentID: "s-1", Term: "First Term", Session: "2024/2025"})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "Math", results[0].Subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepositoryFindEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewResultRepository(db)

	mock.ExpectQuery("SELECT id, student_id, teacher_id, subject, score, grade").
		WithArgs("s-9").
		WillReturnRows(sqlmock.NewRows(resultColumns()))

	results, err := repo.Find(context.Background(), models.ResultFilter{StudentID: "s-9"})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewResultRepository(db)

	mock.ExpectExec("INSERT INTO results").
		WillReturnResult(sqlmock.NewResult(1, 1))

	result := &models.Result{
		StudentID:   "s-1",
		TeacherID:   "t-1",
		Subject:     "Math",
		Score:       80,
		Grade:       "A",
		GradeRemark: "Excellent",
		Term:        "First Term",
		Session:     "2024/2025",
	}
	require.NoError(t, repo.Create(context.Background(), result))
	assert.NotEmpty(t, result.ID)
	assert.False(t, result.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepositoryUpdateTouchesTimestamp(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewResultRepository(db)

	mock.ExpectExec("UPDATE results SET score").
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := &models.Result{ID: "r1", Score: 38, Grade: "F", GradeRemark: "Fail", Term: "First Term", Session: "2024/2025"}
	before := result.UpdatedAt
	require.NoError(t, repo.Update(context.Background(), result))
	assert.True(t, result.UpdatedAt.After(before))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepositoryCount(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewResultRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(id) FROM results")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
