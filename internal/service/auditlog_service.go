package service

import (
	"go.uber.org/zap"

	"github.com/noah-isme/exam-notify-api/internal/models"
	appErrors "github.com/noah-isme/exam-notify-api/pkg/errors"
)

type auditLogStore interface {
	ReadAll() ([]models.AuditLogEntry, error)
	Append(entry models.AuditLogEntry) error
	BackupAndClear() (string, error)
}

// AuditLogService reads and maintains the send log.
type AuditLogService struct {
	repo   auditLogStore
	logger *zap.Logger
}

// NewAuditLogService constructs an AuditLogService.
func NewAuditLogService(repo auditLogStore, logger *zap.Logger) *AuditLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditLogService{repo: repo, logger: logger}
}

// List returns all entries in append order, each annotated with its
// classified delivery status.
func (s *AuditLogService) List() ([]models.AuditLogView, error) {
	entries, err := s.repo.ReadAll()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDataUnavailable.Code, appErrors.ErrDataUnavailable.Status, "send log unavailable")
	}
	views := make([]models.AuditLogView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, models.AuditLogView{
			AuditLogEntry:  entry,
			DeliveryStatus: ClassifyDeliveryStatus(entry.Response),
		})
	}
	return views, nil
}

// Clear backs the log up and truncates it. The live log is left untouched
// when the backup step fails.
func (s *AuditLogService) Clear() (string, error) {
	backup, err := s.repo.BackupAndClear()
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to clear send log")
	}
	s.logger.Info("send log cleared", zap.String("backup", backup))
	return backup, nil
}
