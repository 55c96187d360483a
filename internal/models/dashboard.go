package models

// DashboardSummary aggregates headline counters for the admin dashboard.
type DashboardSummary struct {
	TotalStudents   int `json:"total_students"`
	TotalTeachers   int `json:"total_teachers"`
	TotalClasses    int `json:"total_classes"`
	AttendanceToday int `json:"attendance_today"`
	PresentToday    int `json:"present_today"`
	AbsentToday     int `json:"absent_today"`
}

// ReportTotals carries the aggregate counters exposed on the reports
// overview endpoint.
type ReportTotals struct {
	TotalStudents int `json:"total_students"`
	TotalTeachers int `json:"total_teachers"`
	TotalResults  int `json:"total_results"`
}
