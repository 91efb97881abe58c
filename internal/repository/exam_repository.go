package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

// ExamRepository reads exam metadata from PostgreSQL. Exams are written by
// the admin application; this service only lists and resolves them.
type ExamRepository struct {
	db *sqlx.DB
}

// NewExamRepository constructs an ExamRepository.
func NewExamRepository(db *sqlx.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// List returns all saved exams, newest first.
func (r *ExamRepository) List(ctx context.Context) ([]models.ExamMetadata, error) {
	const query = `SELECT id, name, class_name, year, term, created_at FROM exams ORDER BY created_at DESC`
	var exams []models.ExamMetadata
	if err := r.db.SelectContext(ctx, &exams, query); err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return exams, nil
}

// FindByID fetches one exam by its ID.
func (r *ExamRepository) FindByID(ctx context.Context, id string) (*models.ExamMetadata, error) {
	const query = `SELECT id, name, class_name, year, term, created_at FROM exams WHERE id = $1`
	var exam models.ExamMetadata
	if err := r.db.GetContext(ctx, &exam, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find exam: %w", err)
	}
	return &exam, nil
}
