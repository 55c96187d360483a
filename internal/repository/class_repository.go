package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AskKenImani/school-backend/internal/models"
)

// ClassRepository manages persistence for class records.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns all classes with their form teacher names and member ids.
func (r *ClassRepository) List(ctx context.Context) ([]models.ClassDetail, error) {
	const query = `SELECT cl.id, cl.name, cl.level, cl.arm, cl.teacher_id, cl.created_at, cl.updated_at,
        t.full_name AS teacher_name
        FROM classes cl LEFT JOIN teachers t ON t.id = cl.teacher_id
        ORDER BY cl.name ASC`
	var classes []models.ClassDetail
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	for i := range classes {
		ids, err := r.StudentIDs(ctx, classes[i].ID)
		if err != nil {
			return nil, err
		}
		classes[i].StudentIDs = ids
	}
	return classes, nil
}

// FindByID fetches a class with its form teacher name and member ids.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.ClassDetail, error) {
	const query = `SELECT cl.id, cl.name, cl.level, cl.arm, cl.teacher_id, cl.created_at, cl.updated_at,
        t.full_name AS teacher_name
        FROM classes cl LEFT JOIN teachers t ON t.id = cl.teacher_id
        WHERE cl.id = $1`
	var detail models.ClassDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	ids, err := r.StudentIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.StudentIDs = ids
	return &detail, nil
}

// StudentIDs lists ids of students currently assigned to the class.
func (r *ClassRepository) StudentIDs(ctx context.Context, classID string) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, "SELECT id FROM students WHERE class_id = $1 ORDER BY full_name ASC", classID); err != nil {
		return nil, fmt.Errorf("list class students: %w", err)
	}
	return ids, nil
}

// ExistsByName checks whether a class with the given name exists.
func (r *ClassRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM classes WHERE name = $1 LIMIT 1", name); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check class name: %w", err)
	}
	return true, nil
}

// Create inserts a new class record.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if class.CreatedAt.IsZero() {
		class.CreatedAt = now
	}
	class.UpdatedAt = now
	const query = `INSERT INTO classes (id, name, level, arm, teacher_id, created_at, updated_at)
        VALUES (:id, :name, :level, :arm, :teacher_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// SetTeacher assigns or clears the form teacher for a class.
func (r *ClassRepository) SetTeacher(ctx context.Context, classID string, teacherID *string) error {
	const query = `UPDATE classes SET teacher_id = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, classID, teacherID, time.Now().UTC()); err != nil {
		return fmt.Errorf("set class teacher: %w", err)
	}
	return nil
}

// Count returns the total number of classes.
func (r *ClassRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(id) FROM classes"); err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	return total, nil
}
