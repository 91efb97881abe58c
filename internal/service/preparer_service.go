package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-notify-api/internal/models"
	appErrors "github.com/noah-isme/exam-notify-api/pkg/errors"
)

// prepareCachePattern covers every cached prepare result; contact directory
// writes invalidate it wholesale.
const prepareCachePattern = "prepare:*"

// prepareCacheKey derives a stable cache key from the request selection.
func prepareCacheKey(req PrepareRequest) string {
	sum := sha256.Sum256([]byte(strings.Join(req.ExamIDs, ",") + "|" + req.ClassFilter + "|" + strconv.Itoa(req.Limit)))
	return "prepare:" + hex.EncodeToString(sum[:8])
}

type scoreTableLoader interface {
	Load(ctx context.Context, examID string) (*models.ScoreTable, error)
}

type examReader interface {
	List(ctx context.Context) ([]models.ExamMetadata, error)
	FindByID(ctx context.Context, id string) (*models.ExamMetadata, error)
}

type contactLoader interface {
	Load() ([]models.ContactRecord, error)
}

// PrepareRequest selects what to prepare. Exams are processed in the order
// given; the class filter and per-exam limit are optional.
type PrepareRequest struct {
	ExamIDs     []string `json:"exam_ids" validate:"required,min=1"`
	ClassFilter string   `json:"class_filter"`
	Limit       int      `json:"limit" validate:"gte=0"`
}

// PreparerService merges exam score rows with the contact directory and
// produces the prepared and unmatched recipient lists for a send session.
type PreparerService struct {
	tables    scoreTableLoader
	exams     examReader
	contacts  contactLoader
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPreparerService constructs a PreparerService.
func NewPreparerService(tables scoreTableLoader, exams examReader, contacts contactLoader, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *PreparerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreparerService{tables: tables, exams: exams, contacts: contacts, cache: cache, validator: validate, logger: logger}
}

// Prepare runs the full preparation pipeline over the selected exams. A
// missing or unreadable exam is skipped, never fatal; per-row failures are
// isolated so one bad row cannot sink the batch. Every PreparedMessage in
// the result carries a real numeric total.
func (s *PreparerService) Prepare(ctx context.Context, req PrepareRequest) (*models.PrepareResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid prepare payload")
	}

	cacheKey := prepareCacheKey(req)
	var cached models.PrepareResult
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	contacts, err := s.contacts.Load()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataUnavailable.Code, appErrors.ErrDataUnavailable.Status, "contact directory unavailable")
	}
	directory := dedupeContacts(contacts)

	result := &models.PrepareResult{
		Prepared:  []models.PreparedMessage{},
		Unmatched: []models.UnmatchedRecord{},
	}

	for _, examID := range req.ExamIDs {
		exam, err := s.exams.FindByID(ctx, examID)
		if err != nil {
			s.logger.Warn("skipping exam: metadata unavailable", zap.String("exam_id", examID), zap.Error(err))
			continue
		}
		table, err := s.tables.Load(ctx, examID)
		if err != nil {
			s.logger.Warn("skipping exam: score table unavailable", zap.String("exam_id", examID), zap.Error(err))
			continue
		}
		s.prepareExam(exam, table, directory, req, result)
	}

	// Nothing without a real numeric total leaves this function.
	kept := result.Prepared[:0]
	for _, msg := range result.Prepared {
		if !math.IsNaN(msg.Total) {
			kept = append(kept, msg)
		}
	}
	result.Prepared = kept
	result.Diagnostics.Prepared = len(kept)

	if err := s.cache.Set(ctx, cacheKey, result, 0); err != nil {
		s.logger.Warn("failed to cache prepare result", zap.Error(err))
	}

	return result, nil
}

// Preview composes a single ad hoc message for one student of one exam. It
// uses the relaxed subject threshold and returns an empty string, not an
// error, when the student cannot be matched or has no usable total.
func (s *PreparerService) Preview(ctx context.Context, examID, studentName string) (string, error) {
	examID = strings.TrimSpace(examID)
	studentName = strings.TrimSpace(studentName)
	if examID == "" || studentName == "" {
		return "", appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "examId and student are required")
	}
	exam, err := s.exams.FindByID(ctx, examID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "exam not found")
	}
	table, err := s.tables.Load(ctx, examID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrDataUnavailable.Code, appErrors.ErrDataUnavailable.Status, "score table unavailable")
	}
	return PreviewMessage(table, exam.Name, studentName), nil
}

func (s *PreparerService) prepareExam(exam *models.ExamMetadata, table *models.ScoreTable, directory []models.ContactRecord, req PrepareRequest, result *models.PrepareResult) {
	desc := ClassifyColumns(table)
	if desc.NameCol == "" {
		s.logger.Warn("skipping exam: no name column identified", zap.String("exam_id", exam.ID))
		return
	}

	diag := &result.Diagnostics
	diag.RowsScanned += len(table.Rows)

	// Rows without a trustworthy total never enter the merge, but they
	// still surface as unmatched so no student vanishes silently.
	filtered := &models.ScoreTable{Columns: table.Columns}
	for _, row := range table.Rows {
		if hasTrustworthyTotal(row, desc) {
			filtered.Rows = append(filtered.Rows, row)
			continue
		}
		if req.ClassFilter != "" && !classMatches(row[desc.ClassCol].String(), req.ClassFilter) {
			continue
		}
		result.Unmatched = append(result.Unmatched, models.UnmatchedRecord{
			ExamID:      exam.ID,
			ExamName:    exam.Name,
			StudentName: strings.TrimSpace(row[desc.NameCol].String()),
			Reason:      models.ReasonMissingTotal,
		})
	}
	diag.RowsWithTotal += len(filtered.Rows)
	diag.RowsDropped += len(table.Rows) - len(filtered.Rows)

	ranked := Rank(filtered, desc)
	diag.MergedRows += len(ranked)

	emitted := 0
	for i := range ranked {
		if req.ClassFilter != "" && !classMatches(ranked[i].Class, req.ClassFilter) {
			continue
		}
		if req.Limit > 0 && emitted >= req.Limit {
			break
		}
		emitted++
		s.prepareRow(exam, &ranked[i], desc, directory, result)
	}
}

// prepareRow turns one merged row into a PreparedMessage or an
// UnmatchedRecord. It never returns an error: anything unresolvable is a
// reason code, not a failure.
func (s *PreparerService) prepareRow(exam *models.ExamMetadata, row *models.RankedRow, desc models.ColumnDescriptor, directory []models.ContactRecord, result *models.PrepareResult) {
	diag := &result.Diagnostics

	var contact *models.ContactRecord
	key := NormalizeName(row.StudentName)
	for i := range directory {
		if NormalizeName(directory[i].StudentName) == key {
			contact = &directory[i]
			break
		}
	}

	phone := ""
	parent := ""
	if contact != nil {
		phone = cleanPhone(contact.Phone)
		parent = contact.ParentName
	}
	if phone == "" {
		diag.MissingPhone++
		result.Unmatched = append(result.Unmatched, models.UnmatchedRecord{
			ExamID:      exam.ID,
			ExamName:    exam.Name,
			StudentName: row.StudentName,
			Reason:      models.ReasonMissingPhone,
		})
		return
	}
	diag.MergedWithPhone++

	subjects := subjectScores(row.Row, desc)
	total, ok := resolveTotal(row.Row, desc, subjects, prepareMinSubjects)
	if !ok {
		result.Unmatched = append(result.Unmatched, models.UnmatchedRecord{
			ExamID:      exam.ID,
			ExamName:    exam.Name,
			StudentName: row.StudentName,
			Reason:      models.ReasonMissingTotal,
		})
		return
	}

	message := ComposeMessage(MessageParts{
		ParentName:  parent,
		StudentName: row.StudentName,
		ExamName:    exam.Name,
		Subjects:    subjects,
		Total:       total,
		ClassRank:   row.ClassRank,
		ClassSize:   row.ClassSize,
		OverallRank: row.OverallRank,
		OverallSize: row.OverallSize,
	})

	result.Prepared = append(result.Prepared, models.PreparedMessage{
		Phone:       phone,
		Message:     message,
		StudentName: row.StudentName,
		ExamID:      exam.ID,
		ExamName:    exam.Name,
		Total:       total,
		ClassRank:   row.ClassRank,
		ClassSize:   row.ClassSize,
		OverallRank: row.OverallRank,
		OverallSize: row.OverallSize,
		ParentName:  parent,
	})
}

// hasTrustworthyTotal decides whether a row carries enough reliable numeric
// data to ever yield a displayed total: a numeric value in the explicit score
// column when one exists, otherwise at least prepareMinSubjects numeric
// subject values.
func hasTrustworthyTotal(row models.Row, desc models.ColumnDescriptor) bool {
	if desc.ScoreCol != "" {
		return row[desc.ScoreCol].IsNumeric()
	}
	return CountNumericSubjects(row, desc) >= prepareMinSubjects
}

// dedupeContacts keeps the first-seen entry per normalized student name.
func dedupeContacts(contacts []models.ContactRecord) []models.ContactRecord {
	seen := make(map[string]bool, len(contacts))
	unique := make([]models.ContactRecord, 0, len(contacts))
	for _, c := range contacts {
		key := NormalizeName(c.StudentName)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}
	return unique
}

// classMatches compares class names loosely: equality, substring in either
// direction, or matching digits, all insensitive to case, spaces and hyphens.
func classMatches(have, want string) bool {
	a := foldClass(have)
	b := foldClass(want)
	if a == "" || b == "" {
		return a == b
	}
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	da, db := DigitsOnly(a), DigitsOnly(b)
	return da != "" && da == db
}

func foldClass(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// cleanPhone treats placeholder junk from spreadsheets as absent.
func cleanPhone(phone string) string {
	trimmed := strings.TrimSpace(phone)
	switch strings.ToLower(trimmed) {
	case "", "nan", "none", "null":
		return ""
	}
	return trimmed
}
