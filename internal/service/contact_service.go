package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-notify-api/internal/models"
	appErrors "github.com/noah-isme/exam-notify-api/pkg/errors"
)

// UpsertContactRequest adds or updates one directory entry, keyed by
// normalized student name.
type UpsertContactRequest struct {
	StudentName string `json:"student_name" validate:"required"`
	ParentName  string `json:"parent_name"`
	Phone       string `json:"phone" validate:"required"`
	Class       string `json:"class"`
	Grade       string `json:"grade"`
	Stream      string `json:"stream"`
}

// ContactService manages the contact directory over its whole-list store.
// Directory writes invalidate cached prepare results, which are keyed on the
// directory contents as much as on the score tables.
type ContactService struct {
	repo      contactStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewContactService constructs a ContactService.
func NewContactService(repo contactStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{repo: repo, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// List returns a filtered page of the directory.
func (s *ContactService) List(filter models.ContactFilter) ([]models.ContactRecord, *models.Pagination, error) {
	contacts, err := s.repo.Load()
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrDataUnavailable.Code, appErrors.ErrDataUnavailable.Status, "contact directory unavailable")
	}

	filtered := contacts[:0:0]
	search := NormalizeName(filter.Search)
	for _, c := range contacts {
		if search != "" &&
			!strings.Contains(NormalizeName(c.StudentName), search) &&
			!strings.Contains(NormalizeName(c.ParentName), search) &&
			!strings.Contains(DigitsOnly(c.Phone), DigitsOnly(filter.Search)) {
			continue
		}
		if filter.Class != "" && !classMatches(c.Class, filter.Class) {
			continue
		}
		filtered = append(filtered, c)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	start := (page - 1) * size
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], models.NewPagination(page, size, len(filtered)), nil
}

// Upsert updates the first entry matching the normalized student name, or
// appends a new one, then writes the whole directory back.
func (s *ContactService) Upsert(ctx context.Context, req UpsertContactRequest) (*models.ContactRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact payload")
	}

	contacts, err := s.repo.Load()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataUnavailable.Code, appErrors.ErrDataUnavailable.Status, "contact directory unavailable")
	}

	key := NormalizeName(req.StudentName)
	var record *models.ContactRecord
	for i := range contacts {
		if NormalizeName(contacts[i].StudentName) == key {
			contacts[i].ParentName = req.ParentName
			contacts[i].Phone = req.Phone
			contacts[i].Class = req.Class
			contacts[i].Grade = req.Grade
			contacts[i].Stream = req.Stream
			contacts[i].UpdatedAt = s.now().UTC()
			record = &contacts[i]
			break
		}
	}
	if record == nil {
		contacts = append(contacts, models.ContactRecord{
			ID:          uuid.NewString(),
			StudentName: req.StudentName,
			ParentName:  req.ParentName,
			Phone:       req.Phone,
			Class:       req.Class,
			Grade:       req.Grade,
			Stream:      req.Stream,
			UpdatedAt:   s.now().UTC(),
		})
		record = &contacts[len(contacts)-1]
	}

	if err := s.repo.Save(contacts); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to save contact directory")
	}
	s.cache.Invalidate(ctx, prepareCachePattern)
	saved := *record
	return &saved, nil
}

// Replace swaps the entire directory for the provided list.
func (s *ContactService) Replace(ctx context.Context, contacts []models.ContactRecord) error {
	now := s.now().UTC()
	for i := range contacts {
		if contacts[i].ID == "" {
			contacts[i].ID = uuid.NewString()
		}
		if contacts[i].UpdatedAt.IsZero() {
			contacts[i].UpdatedAt = now
		}
	}
	if err := s.repo.Save(contacts); err != nil {
		return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to save contact directory")
	}
	s.cache.Invalidate(ctx, prepareCachePattern)
	return nil
}
