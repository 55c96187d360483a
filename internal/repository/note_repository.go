package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AskKenImani/school-backend/internal/models"
)

// NoteRepository manages persistence for teacher notes.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository constructs a NoteRepository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create inserts a new note record.
func (r *NoteRepository) Create(ctx context.Context, note *models.TeacherNote) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO teacher_notes (id, teacher_id, title, text, file_url, created_at)
        VALUES (:id, :teacher_id, :title, :text, :file_url, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// ListByTeacher returns a teacher's notes, newest first.
func (r *NoteRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherNote, error) {
	const query = `SELECT id, teacher_id, title, text, file_url, created_at
        FROM teacher_notes WHERE teacher_id = $1 ORDER BY created_at DESC`
	var notes []models.TeacherNote
	if err := r.db.SelectContext(ctx, &notes, query, teacherID); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}
