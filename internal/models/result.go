package models

import "time"

// Result is one subject score for one student in a given term and session.
// Grade and GradeRemark are always derived from Score at the write boundary;
// they are never accepted from callers.
type Result struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	TeacherID      string    `db:"teacher_id" json:"teacher_id"`
	Subject        string    `db:"subject" json:"subject"`
	Score          int       `db:"score" json:"score"`
	Grade          string    `db:"grade" json:"grade"`
	GradeRemark    string    `db:"grade_remark" json:"grade_remark"`
	TeacherComment string    `db:"teacher_comment" json:"teacher_comment,omitempty"`
	Term           string    `db:"term" json:"term"`
	Session        string    `db:"session" json:"session"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ResultDetail joins in the student and teacher display names.
type ResultDetail struct {
	Result
	StudentName string `db:"student_name" json:"student_name"`
	TeacherName string `db:"teacher_name" json:"teacher_name"`
}

// ResultFilter scopes result queries.
type ResultFilter struct {
	StudentID string
	Term      string
	Session   string
}
