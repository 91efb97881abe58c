package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-notify-api/internal/models"
	appErrors "github.com/noah-isme/exam-notify-api/pkg/errors"
)

const examListCacheKey = "exams:list"

// ExamService exposes the exam catalogue and column introspection.
type ExamService struct {
	exams  examReader
	tables scoreTableLoader
	cache  *CacheService
	logger *zap.Logger
}

// NewExamService constructs an ExamService.
func NewExamService(exams examReader, tables scoreTableLoader, cache *CacheService, logger *zap.Logger) *ExamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{exams: exams, tables: tables, cache: cache, logger: logger}
}

// List returns all saved exams with their derived kind, newest first. The
// second return reports whether the result came from cache.
func (s *ExamService) List(ctx context.Context) ([]models.ExamView, bool, error) {
	var cached []models.ExamView
	if hit, _ := s.cache.Get(ctx, examListCacheKey, &cached); hit {
		return cached, true, nil
	}

	exams, err := s.exams.List(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exams")
	}
	views := make([]models.ExamView, 0, len(exams))
	for _, exam := range exams {
		views = append(views, models.ViewOf(exam))
	}

	if err := s.cache.Set(ctx, examListCacheKey, views, 0); err != nil {
		s.logger.Warn("failed to cache exam list", zap.Error(err))
	}
	return views, false, nil
}

// Columns loads an exam's score table and reports how the classifier reads
// its columns. Useful for the operator to sanity-check a score file before
// preparing messages from it.
func (s *ExamService) Columns(ctx context.Context, examID string) (*models.ColumnDescriptor, error) {
	if _, err := s.exams.FindByID(ctx, examID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	table, err := s.tables.Load(ctx, examID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataUnavailable.Code, appErrors.ErrDataUnavailable.Status, "score table unavailable")
	}
	desc := ClassifyColumns(table)
	return &desc, nil
}
