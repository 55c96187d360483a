package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AskKenImani/school-backend/internal/models"
)

// ResultRepository manages persistence for score records.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository constructs a ResultRepository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// List returns score records with joined student and teacher names.
func (r *ResultRepository) List(ctx context.Context) ([]models.ResultDetail, error) {
	const query = `SELECT r.id, r.student_id, r.teacher_id, r.subject, r.score, r.grade, r.grade_remark,
        r.teacher_comment, r.term, r.session, r.created_at, r.updated_at,
        s.full_name AS student_name, t.full_name AS teacher_name
        FROM results r
        JOIN students s ON s.id = r.student_id
        JOIN teachers t ON t.id = r.teacher_id
        ORDER BY r.created_at DESC`
	var results []models.ResultDetail
	if err := r.db.SelectContext(ctx, &results, query); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}

// Find returns score records matching the filter.
func (r *ResultRepository) Find(ctx context.Context, filter models.ResultFilter) ([]models.Result, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Term != "" {
		conditions = append(conditions, fmt.Sprintf("term = $%d", len(args)+1))
		args = append(args, filter.Term)
	}
	if filter.Session != "" {
		conditions = append(conditions, fmt.Sprintf("session = $%d", len(args)+1))
		args = append(args, filter.Session)
	}
	query := fmt.Sprintf(`SELECT id, student_id, teacher_id, subject, score, grade, grade_remark,
        teacher_comment, term, session, created_at, updated_at
        FROM results WHERE %s ORDER BY created_at DESC`, strings.Join(conditions, " AND "))

	var results []models.Result
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("find results: %w", err)
	}
	return results, nil
}

// FindByID fetches a single score record.
func (r *ResultRepository) FindByID(ctx context.Context, id string) (*models.Result, error) {
	const query = `SELECT id, student_id, teacher_id, subject, score, grade, grade_remark,
        teacher_comment, term, session, created_at, updated_at
        FROM results WHERE id = $1`
	var result models.Result
	if err := r.db.GetContext(ctx, &result, query, id); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create inserts a new score record. Grade fields must already be derived.
func (r *ResultRepository) Create(ctx context.Context, result *models.Result) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if result.CreatedAt.IsZero() {
		result.CreatedAt = now
	}
	result.UpdatedAt = now
	const query = `INSERT INTO results (id, student_id, teacher_id, subject, score, grade, grade_remark, teacher_comment, term, session, created_at, updated_at)
        VALUES (:id, :student_id, :teacher_id, :subject, :score, :grade, :grade_remark, :teacher_comment, :term, :session, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("create result: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of a score record. Grade fields must
// already be derived from the new score.
func (r *ResultRepository) Update(ctx context.Context, result *models.Result) error {
	result.UpdatedAt = time.Now().UTC()
	const query = `UPDATE results SET score = :score, grade = :grade, grade_remark = :grade_remark,
        teacher_comment = :teacher_comment, term = :term, session = :session, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("update result: %w", err)
	}
	return nil
}

// Count returns the total number of score records.
func (r *ResultRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(id) FROM results"); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return total, nil
}
