package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-notify-api/internal/models"
	"github.com/noah-isme/exam-notify-api/internal/service"
)

type fakeAuditLogStore struct {
	entries []models.AuditLogEntry
	backup  string
	cleared bool
}

func (f *fakeAuditLogStore) ReadAll() ([]models.AuditLogEntry, error) { return f.entries, nil }
func (f *fakeAuditLogStore) Append(entry models.AuditLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}
func (f *fakeAuditLogStore) BackupAndClear() (string, error) {
	f.cleared = true
	f.entries = nil
	return f.backup, nil
}

func auditHandlerFixture(entries ...models.AuditLogEntry) (*AuditLogHandler, *fakeAuditLogStore) {
	store := &fakeAuditLogStore{entries: entries, backup: "backups/send_log-20250701T090000.json"}
	svc := service.NewAuditLogService(store, nil)
	return NewAuditLogHandler(svc, service.NewExportService()), store
}

func TestAuditLogHandlerList(t *testing.T) {
	handler, _ := auditHandlerFixture(models.AuditLogEntry{
		ID:       "1",
		Phone:    "0712345678",
		Response: models.ProviderResult{OK: true, StatusCode: 200},
	})

	rec := performJSON(t, handler.List, http.MethodGet, "/audit-log", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0712345678")
	assert.Contains(t, rec.Body.String(), `"delivery_status":"Sent"`)
}

func TestAuditLogHandlerClear(t *testing.T) {
	handler, store := auditHandlerFixture(models.AuditLogEntry{ID: "1"})

	rec := performJSON(t, handler.Clear, http.MethodPost, "/audit-log/clear", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, store.cleared)
	assert.Contains(t, rec.Body.String(), store.backup)
}

func TestAuditLogHandlerExportCSV(t *testing.T) {
	handler, _ := auditHandlerFixture(models.AuditLogEntry{
		ID:    "1",
		Phone: "0712345678",
	})

	rec := performJSON(t, handler.Export, http.MethodGet, "/audit-log/export?format=csv", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "send_log.csv")
	assert.Contains(t, rec.Body.String(), "0712345678")
}
