package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-notify-api/internal/models"
	"github.com/noah-isme/exam-notify-api/internal/transport"
	appErrors "github.com/noah-isme/exam-notify-api/pkg/errors"
)

type contactStore interface {
	Load() ([]models.ContactRecord, error)
	Save([]models.ContactRecord) error
}

type auditAppender interface {
	Append(entry models.AuditLogEntry) error
}

type providerConfigLoader interface {
	Load() (models.ProviderConfig, error)
}

// SendRecipient is one recipient of a send run, including any inline edits
// the operator made to phone or parent name before confirming.
type SendRecipient struct {
	Phone       string   `json:"phone"`
	StudentName string   `json:"student_name" validate:"required"`
	ParentName  string   `json:"parent_name"`
	ExamID      string   `json:"exam_id"`
	ExamName    string   `json:"exam_name"`
	Message     string   `json:"message"`
	Total       *float64 `json:"total"`
}

// SendRequest is the payload of one confirmed send action.
type SendRequest struct {
	Recipients []SendRecipient `json:"recipients" validate:"required,min=1,dive"`
	TestMode   *bool           `json:"test_mode"`
}

// SendOutcome pairs a recipient with its dispatch result.
type SendOutcome struct {
	Recipient      SendRecipient          `json:"recipient"`
	Skipped        bool                   `json:"skipped,omitempty"`
	SkipReason     string                 `json:"skip_reason,omitempty"`
	Result         *models.ProviderResult `json:"provider_result,omitempty"`
	DeliveryStatus models.DeliveryStatus  `json:"delivery_status,omitempty"`
}

// SendSummary is the aggregate return of one send run.
type SendSummary struct {
	Provider string        `json:"provider"`
	TestMode bool          `json:"test_mode"`
	Sent     int           `json:"sent"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Outcomes []SendOutcome `json:"outcomes"`
	Warnings []string      `json:"warnings,omitempty"`
}

// TransportFactory builds a transport for the resolved provider config.
type TransportFactory func(cfg models.ProviderConfig) transport.Transport

// SenderService walks a confirmed recipient list, dispatches one message per
// recipient through the configured provider and appends one audit entry per
// attempt. Dispatch is strictly sequential so the audit log order equals the
// send order and provider rate limits stay respected.
type SenderService struct {
	contacts     contactStore
	audit        auditAppender
	providerCfg  providerConfigLoader
	tables       scoreTableLoader
	exams        examReader
	newTransport TransportFactory
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewSenderService constructs a SenderService.
func NewSenderService(contacts contactStore, audit auditAppender, providerCfg providerConfigLoader, tables scoreTableLoader, exams examReader, factory TransportFactory, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SenderService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SenderService{
		contacts:     contacts,
		audit:        audit,
		providerCfg:  providerCfg,
		tables:       tables,
		exams:        exams,
		newTransport: factory,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
}

// Send runs one confirmed send action over the full recipient list. It never
// retries and never aborts mid-batch: transport failures land in the audit
// log and the per-recipient outcomes, persistence failures become warnings.
func (s *SenderService) Send(ctx context.Context, req SendRequest) (*SendSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid send payload")
	}

	cfg, err := s.providerCfg.Load()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataUnavailable.Code, appErrors.ErrDataUnavailable.Status, "provider configuration unavailable")
	}
	if req.TestMode != nil {
		cfg.TestMode = *req.TestMode
	}

	summary := &SendSummary{Provider: cfg.Provider, TestMode: cfg.TestMode}

	// Upsert the directory with the operator's edits and persist it before
	// any dispatch, so directory state survives a transport failure later.
	if warning := s.upsertDirectory(req.Recipients); warning != "" {
		summary.Warnings = append(summary.Warnings, warning)
	}

	tr := s.newTransport(cfg)
	sendStatus := models.SendStatusSent
	if cfg.TestMode {
		sendStatus = models.SendStatusTest
	}

	attempted := make(map[string]bool, len(req.Recipients))
	for _, recipient := range req.Recipients {
		phone := cleanPhone(recipient.Phone)
		if phone == "" {
			summary.Skipped++
			summary.Outcomes = append(summary.Outcomes, SendOutcome{Recipient: recipient, Skipped: true, SkipReason: "missing_phone"})
			continue
		}
		if attempted[phone] {
			summary.Skipped++
			summary.Outcomes = append(summary.Outcomes, SendOutcome{Recipient: recipient, Skipped: true, SkipReason: "duplicate_phone"})
			continue
		}
		attempted[phone] = true

		message := recipient.Message
		if message == "" {
			message = s.composeFallback(ctx, recipient)
		}

		result := tr.Send(ctx, phone, message, cfg)
		status := ClassifyDeliveryStatus(result)
		if s.metrics != nil {
			s.metrics.RecordSMS(cfg.Provider, string(status))
		}
		if result.OK {
			summary.Sent++
		} else {
			summary.Failed++
		}

		entry := models.AuditLogEntry{
			ID:         uuid.NewString(),
			Phone:      phone,
			Message:    message,
			Time:       s.now().UTC(),
			Provider:   cfg.Provider,
			ConfigUsed: cfg.Masked(),
			Status:     sendStatus,
			Response:   result,
			OK:         result.OK,
			Contact:    contactSummary(recipient),
		}
		if err := s.audit.Append(entry); err != nil {
			s.logger.Error("failed to append audit entry", zap.String("phone", phone), zap.Error(err))
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("audit entry for %s not persisted: %v", recipient.StudentName, err))
		}

		outcome := SendOutcome{Recipient: recipient, Result: &result, DeliveryStatus: status}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	return summary, nil
}

// upsertDirectory folds the recipients' phone/parent edits into the contact
// directory and saves it. A save failure is reported, not fatal: the send
// proceeds on the in-memory state.
func (s *SenderService) upsertDirectory(recipients []SendRecipient) string {
	contacts, err := s.contacts.Load()
	if err != nil {
		s.logger.Warn("contact directory unavailable for upsert", zap.Error(err))
		return fmt.Sprintf("contact directory not updated: %v", err)
	}

	changed := false
	for _, r := range recipients {
		phone := cleanPhone(r.Phone)
		if phone == "" {
			continue
		}
		key := NormalizeName(r.StudentName)
		found := false
		for i := range contacts {
			if NormalizeName(contacts[i].StudentName) != key {
				continue
			}
			found = true
			if contacts[i].Phone != phone || (r.ParentName != "" && contacts[i].ParentName != r.ParentName) {
				contacts[i].Phone = phone
				if r.ParentName != "" {
					contacts[i].ParentName = r.ParentName
				}
				contacts[i].UpdatedAt = s.now().UTC()
				changed = true
			}
			break
		}
		if found {
			continue
		}
		// Inline edits sometimes respell a name the directory already
		// knows. When the phone resolves to an existing entry, fold the
		// edit into that entry instead of appending a duplicate.
		if existing, ok := MatchPhone(contacts, phone); ok {
			existing.StudentName = r.StudentName
			if r.ParentName != "" {
				existing.ParentName = r.ParentName
			}
			existing.Phone = phone
			existing.UpdatedAt = s.now().UTC()
			changed = true
			continue
		}
		contacts = append(contacts, models.ContactRecord{
			ID:          uuid.NewString(),
			StudentName: r.StudentName,
			ParentName:  r.ParentName,
			Phone:       phone,
			UpdatedAt:   s.now().UTC(),
		})
		changed = true
	}

	if !changed {
		return ""
	}
	if err := s.contacts.Save(contacts); err != nil {
		s.logger.Error("failed to persist contact directory", zap.Error(err))
		return fmt.Sprintf("contact directory updates may not have persisted: %v", err)
	}
	return ""
}

// composeFallback rebuilds a message for a recipient that arrived without
// one: strict composition first, then the relaxed single-subject variant,
// finally a minimal parent/student/exam/total template.
func (s *SenderService) composeFallback(ctx context.Context, r SendRecipient) string {
	examName := r.ExamName
	if examName == "" && r.ExamID != "" && s.exams != nil {
		if exam, err := s.exams.FindByID(ctx, r.ExamID); err == nil {
			examName = exam.Name
		}
	}

	if r.ExamID != "" && s.tables != nil {
		if table, err := s.tables.Load(ctx, r.ExamID); err == nil {
			if msg := ComposeFromTable(table, examName, r.StudentName, r.ParentName, prepareMinSubjects); msg != "" {
				return msg
			}
			if msg := ComposeFromTable(table, examName, r.StudentName, r.ParentName, previewMinSubjects); msg != "" {
				return msg
			}
		}
	}

	parent := r.ParentName
	if parent == "" {
		parent = defaultParentName
	}
	total := "N/A"
	if r.Total != nil {
		total = formatScore(*r.Total)
	}
	return fmt.Sprintf("Dear %s, Results for %s — %s. Total: %s.", parent, r.StudentName, examName, total)
}

func contactSummary(r SendRecipient) string {
	if r.ParentName != "" {
		return fmt.Sprintf("%s (parent: %s)", r.StudentName, r.ParentName)
	}
	return r.StudentName
}
