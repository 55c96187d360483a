package grading

import (
	"math"
	"sort"

	"github.com/AskKenImani/school-backend/internal/models"
	appErrors "github.com/AskKenImani/school-backend/pkg/errors"
)

// SubjectGrade is one subject row inside a summary.
type SubjectGrade struct {
	Subject        string `json:"subject"`
	Score          int    `json:"score"`
	Grade          string `json:"grade"`
	GradeRemark    string `json:"grade_remark"`
	TeacherComment string `json:"teacher_comment,omitempty"`
}

// StudentSummary is the derived per-term aggregation of a student's results.
// It is recomputed on demand and never persisted.
type StudentSummary struct {
	StudentID      string         `json:"student_id"`
	Term           string         `json:"term"`
	Session        string         `json:"session"`
	TotalSubjects  int            `json:"total_subjects"`
	TotalScore     int            `json:"total_score"`
	MaxScore       int            `json:"max_score"`
	AveragePercent float64        `json:"average_percent"`
	Subjects       []SubjectGrade `json:"subjects"`
	// DuplicateSubjects lists subjects that appeared more than once in the
	// source records for this term and session. The winning record is the
	// one with the latest update time (ties broken by id, descending), but
	// the anomaly is surfaced here rather than silently absorbed.
	DuplicateSubjects []string `json:"duplicate_subjects,omitempty"`
}

// Summarize filters records to the exact (studentID, term, session) triple
// and computes the term totals. Input order is irrelevant: rows are reduced
// commutatively and the output subject list is sorted by subject name
// ascending. An empty match set yields ErrNoRecordsFound, never a division
// by zero.
func Summarize(records []models.Result, studentID, term, session string) (*StudentSummary, error) {
	bySubject := make(map[string]models.Result)
	duplicates := make(map[string]struct{})

	for _, r := range records {
		if r.StudentID != studentID || r.Term != term || r.Session != session {
			continue
		}
		existing, seen := bySubject[r.Subject]
		if !seen {
			bySubject[r.Subject] = r
			continue
		}
		duplicates[r.Subject] = struct{}{}
		if r.UpdatedAt.After(existing.UpdatedAt) ||
			(r.UpdatedAt.Equal(existing.UpdatedAt) && r.ID > existing.ID) {
			bySubject[r.Subject] = r
		}
	}

	if len(bySubject) == 0 {
		return nil, appErrors.ErrNoRecordsFound
	}

	summary := &StudentSummary{
		StudentID: studentID,
		Term:      term,
		Session:   session,
		Subjects:  make([]SubjectGrade, 0, len(bySubject)),
	}

	for _, r := range bySubject {
		summary.Subjects = append(summary.Subjects, SubjectGrade{
			Subject:        r.Subject,
			Score:          r.Score,
			Grade:          r.Grade,
			GradeRemark:    r.GradeRemark,
			TeacherComment: r.TeacherComment,
		})
		summary.TotalScore += r.Score
	}
	sort.Slice(summary.Subjects, func(i, j int) bool {
		return summary.Subjects[i].Subject < summary.Subjects[j].Subject
	})

	summary.TotalSubjects = len(summary.Subjects)
	summary.MaxScore = 100 * summary.TotalSubjects
	summary.AveragePercent = round2(float64(summary.TotalScore) / float64(summary.MaxScore) * 100)

	for subject := range duplicates {
		summary.DuplicateSubjects = append(summary.DuplicateSubjects, subject)
	}
	sort.Strings(summary.DuplicateSubjects)

	return summary, nil
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
