package models

import "time"

// AttendanceStatus enumerates recognised attendance states.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Attendance is one student's presence record for one day.
type Attendance struct {
	ID        string           `db:"id" json:"id"`
	Date      time.Time        `db:"date" json:"date"`
	ClassID   string           `db:"class_id" json:"class_id"`
	StudentID string           `db:"student_id" json:"student_id"`
	MarkedBy  string           `db:"marked_by" json:"marked_by"`
	Status    AttendanceStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// AttendanceDetail joins in the display names used by admin listings.
type AttendanceDetail struct {
	Attendance
	StudentName  string `db:"student_name" json:"student_name"`
	ClassName    string `db:"class_name" json:"class_name"`
	MarkedByName string `db:"marked_by_name" json:"marked_by_name"`
}

// AttendanceTodaySummary carries the dashboard counters for the current day.
type AttendanceTodaySummary struct {
	Total   int `db:"total" json:"total"`
	Present int `db:"present" json:"present"`
	Absent  int `db:"absent" json:"absent"`
}
