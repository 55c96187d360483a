package grading

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AskKenImani/school-backend/internal/models"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

func record(id, subject string, score int, updated time.Time) models.Result {
	grade, remark, _ := GradeFor(score)
	return models.Result{
		ID:          id,
		StudentID:   "student-1",
		TeacherID:   "teacher-1",
		Subject:     subject,
		Score:       score,
		Grade:       string(grade),
		GradeRemark: remark,
		Term:        "First Term",
		Session:     "2024/2025",
		UpdatedAt:   updated,
	}
}

func TestSummarizeThreeSubjects(t *testing.T) {
	now := time.Now()
	records := []models.Result{
		record("r1", "Math", 80, now),
		record("r2", "English", 60, now),
		record("r3", "Science", 45, now),
	}

	summary, err := Summarize(records, "student-1", "First Term", "2024/2025")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalSubjects)
	assert.Equal(t, 185, summary.TotalScore)
	assert.Equal(t, 300, summary.MaxScore)
	assert.Equal(t, 61.67, summary.AveragePercent)

	require.Len(t, summary.Subjects, 3)
	// sorted by subject name ascending
	assert.Equal(t, "English", summary.Subjects[0].Subject)
	assert.Equal(t, "Math", summary.Subjects[1].Subject)
	assert.Equal(t, "Science", summary.Subjects[2].Subject)
	assert.Equal(t, "C", summary.Subjects[0].Grade)
	assert.Equal(t, "A", summary.Subjects[1].Grade)
	assert.Equal(t, "D", summary.Subjects[2].Grade)
	assert.Empty(t, summary.DuplicateSubjects)
}

func TestSummarizeOrderIndependent(t *testing.T) {
	now := time.Now()
	records := []models.Result{
		record("r1", "Math", 80, now),
		record("r2", "English", 60, now),
		record("r3", "Science", 45, now),
		record("r4", "History", 92, now),
	}

	baseline, err := Summarize(records, "student-1", "First Term", "2024/2025")
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]models.Result, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		summary, err := Summarize(shuffled, "student-1", "First Term", "2024/2025")
		require.NoError(t, err)
		assert.Equal(t, baseline, summary)
	}
}

func TestSummarizeFiltersForeignRecords(t *testing.T) {
	now := time.Now()
	records := []models.Result{
		record("r1", "Math", 80, now),
		func() models.Result {
			r := record("r2", "Math", 10, now)
			r.StudentID = "someone-else"
			return r
		}(),
		func() models.Result {
			r := record("r3", "Math", 20, now)
			r.Term = "Second Term"
			return r
		}(),
	}

	summary, err := Summarize(records, "student-1", "First Term", "2024/2025")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalSubjects)
	assert.Equal(t, 80, summary.TotalScore)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil, "student-1", "First Term", "2024/2025")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNoRecordsFound.Code, appErr.Code)
}

func TestSummarizeDuplicateSubjectLatestWins(t *testing.T) {
	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	records := []models.Result{
		record("r1", "Math", 40, older),
		record("r2", "Math", 90, newer),
		record("r3", "English", 70, newer),
	}

	summary, err := Summarize(records, "student-1", "First Term", "2024/2025")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalSubjects)
	assert.Equal(t, 160, summary.TotalScore)
	assert.Equal(t, []string{"Math"}, summary.DuplicateSubjects)

	// same timestamps: the higher id wins deterministically
	tied := []models.Result{
		record("a1", "Math", 10, older),
		record("a2", "Math", 95, older),
	}
	summary, err = Summarize(tied, "student-1", "First Term", "2024/2025")
	require.NoError(t, err)
	assert.Equal(t, 95, summary.TotalScore)
}
