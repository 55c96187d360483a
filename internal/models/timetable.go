package models

import "time"

// TimetableEntry places a subject in a class's weekly schedule.
type TimetableEntry struct {
	ID        string    `db:"id" json:"id"`
	ClassID   string    `db:"class_id" json:"class_id"`
	Day       string    `db:"day" json:"day"`
	Period    int       `db:"period" json:"period"`
	Subject   string    `db:"subject" json:"subject"`
	TeacherID *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
