package models

import "time"

// Conduct is a student's non-academic behavioural record. It is merged into
// the printed report sheet as free-text remarks only.
type Conduct struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	Punctuality    string    `db:"punctuality" json:"punctuality"`
	Neatness       string    `db:"neatness" json:"neatness"`
	Obedience      string    `db:"obedience" json:"obedience"`
	Teamwork       string    `db:"teamwork" json:"teamwork"`
	TeacherComment string    `db:"teacher_comment" json:"teacher_comment"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
