package models

import "time"

// Class represents a level+arm group of students, e.g. "JSS1 A".
type Class struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Level     string    `db:"level" json:"level"`
	Arm       string    `db:"arm" json:"arm"`
	TeacherID *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClassDetail enriches a class with its form teacher name and member ids.
type ClassDetail struct {
	Class
	TeacherName *string  `db:"teacher_name" json:"teacher_name,omitempty"`
	StudentIDs  []string `json:"student_ids"`
}
