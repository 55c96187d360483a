package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AskKenImani/school-backend/internal/models"
)

// AttendanceRepository manages persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns attendance records with joined display names, newest first.
func (r *AttendanceRepository) List(ctx context.Context) ([]models.AttendanceDetail, error) {
	const query = `SELECT a.id, a.date, a.class_id, a.student_id, a.marked_by, a.status, a.created_at,
        s.full_name AS student_name, cl.name AS class_name, u.full_name AS marked_by_name
        FROM attendance a
        JOIN students s ON s.id = a.student_id
        JOIN classes cl ON cl.id = a.class_id
        JOIN users u ON u.id = a.marked_by
        ORDER BY a.date DESC, a.created_at DESC`
	var records []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListByStudent returns one student's attendance history, newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	const query = `SELECT id, date, class_id, student_id, marked_by, status, created_at
        FROM attendance WHERE student_id = $1 ORDER BY date DESC`
	var records []models.Attendance
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list student attendance: %w", err)
	}
	return records, nil
}

// Create inserts a new attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.Date.IsZero() {
		record.Date = now
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	const query = `INSERT INTO attendance (id, date, class_id, student_id, marked_by, status, created_at)
        VALUES (:id, :date, :class_id, :student_id, :marked_by, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// TodaySummary returns the count of today's records split by status.
func (r *AttendanceRepository) TodaySummary(ctx context.Context, now time.Time) (*models.AttendanceTodaySummary, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	const query = `SELECT COUNT(id) AS total,
        COUNT(id) FILTER (WHERE status = $3) AS present,
        COUNT(id) FILTER (WHERE status = $4) AS absent
        FROM attendance WHERE date >= $1 AND date < $2`
	var summary models.AttendanceTodaySummary
	if err := r.db.GetContext(ctx, &summary, query, dayStart, dayEnd, models.AttendancePresent, models.AttendanceAbsent); err != nil {
		return nil, fmt.Errorf("attendance today summary: %w", err)
	}
	return &summary, nil
}
