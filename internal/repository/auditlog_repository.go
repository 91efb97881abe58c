package repository

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/noah-isme/exam-notify-api/internal/models"
	"github.com/noah-isme/exam-notify-api/pkg/storage"
)

// AuditLogRepository persists the append-only send log as a JSON file.
// Entries are never mutated after append; the only destructive operation is
// BackupAndClear, which must secure a backup copy before truncating.
type AuditLogRepository struct {
	store     *storage.LocalStorage
	filename  string
	backupDir string
	now       func() time.Time
}

// NewAuditLogRepository constructs an AuditLogRepository.
func NewAuditLogRepository(store *storage.LocalStorage, filename, backupDir string) *AuditLogRepository {
	if filename == "" {
		filename = "send_log.json"
	}
	if backupDir == "" {
		backupDir = "backups"
	}
	return &AuditLogRepository{store: store, filename: filename, backupDir: backupDir, now: time.Now}
}

// ReadAll returns every logged send attempt in append order.
func (r *AuditLogRepository) ReadAll() ([]models.AuditLogEntry, error) {
	if !r.store.Exists(r.filename) {
		return []models.AuditLogEntry{}, nil
	}
	data, err := r.store.Read(r.filename)
	if err != nil {
		return nil, fmt.Errorf("load send log: %w", err)
	}
	var entries []models.AuditLogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode send log: %w", err)
	}
	return entries, nil
}

// Append adds one entry to the end of the log.
func (r *AuditLogRepository) Append(entry models.AuditLogEntry) error {
	entries, err := r.ReadAll()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode send log: %w", err)
	}
	if _, err := r.store.Save(r.filename, data); err != nil {
		return fmt.Errorf("save send log: %w", err)
	}
	return nil
}

// BackupAndClear copies the live log to a timestamped backup file and then
// truncates it. Truncation never happens unless the backup succeeded; on
// backup failure the live log is left untouched.
func (r *AuditLogRepository) BackupAndClear() (string, error) {
	if !r.store.Exists(r.filename) {
		return "", r.writeEmpty()
	}

	backup := filepath.Join(r.backupDir, fmt.Sprintf("send_log-%s.json", r.now().UTC().Format("20060102T150405")))
	if err := r.store.Copy(r.filename, backup); err != nil {
		return "", fmt.Errorf("backup send log: %w", err)
	}

	if err := r.writeEmpty(); err != nil {
		return backup, err
	}
	return backup, nil
}

func (r *AuditLogRepository) writeEmpty() error {
	if _, err := r.store.Save(r.filename, []byte("[]")); err != nil {
		return fmt.Errorf("truncate send log: %w", err)
	}
	return nil
}
