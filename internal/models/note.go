package models

import "time"

// TeacherNote is a lesson note uploaded or written by a teacher. FileURL is
// empty for text-only notes.
type TeacherNote struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	Title     string    `db:"title" json:"title"`
	Text      string    `db:"text" json:"text,omitempty"`
	FileURL   string    `db:"file_url" json:"file_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
