package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AskKenImani/school-backend/internal/models"
)

// ConductRepository manages persistence for conduct records.
type ConductRepository struct {
	db *sqlx.DB
}

// NewConductRepository constructs a ConductRepository.
func NewConductRepository(db *sqlx.DB) *ConductRepository {
	return &ConductRepository{db: db}
}

// FindByStudent fetches the conduct record for a student.
func (r *ConductRepository) FindByStudent(ctx context.Context, studentID string) (*models.Conduct, error) {
	const query = `SELECT id, student_id, punctuality, neatness, obedience, teamwork, teacher_comment, created_at, updated_at
        FROM conduct WHERE student_id = $1`
	var conduct models.Conduct
	if err := r.db.GetContext(ctx, &conduct, query, studentID); err != nil {
		return nil, err
	}
	return &conduct, nil
}

// Upsert creates or replaces the conduct record for a student.
func (r *ConductRepository) Upsert(ctx context.Context, conduct *models.Conduct) error {
	if conduct.ID == "" {
		conduct.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if conduct.CreatedAt.IsZero() {
		conduct.CreatedAt = now
	}
	conduct.UpdatedAt = now
	const query = `INSERT INTO conduct (id, student_id, punctuality, neatness, obedience, teamwork, teacher_comment, created_at, updated_at)
        VALUES (:id, :student_id, :punctuality, :neatness, :obedience, :teamwork, :teacher_comment, :created_at, :updated_at)
        ON CONFLICT (student_id) DO UPDATE SET punctuality = EXCLUDED.punctuality, neatness = EXCLUDED.neatness,
        obedience = EXCLUDED.obedience, teamwork = EXCLUDED.teamwork, teacher_comment = EXCLUDED.teacher_comment,
        updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, conduct); err != nil {
		return fmt.Errorf("upsert conduct: %w", err)
	}
	return nil
}
