package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

func TestRenderAuditLogCSV(t *testing.T) {
	svc := NewExportService()
	entries := []models.AuditLogView{
		{
			AuditLogEntry: models.AuditLogEntry{
				Phone:    "0712345678",
				Contact:  "Jane Doe (parent: Mary)",
				Provider: models.ProviderHostPinnacle,
				Status:   models.SendStatusSent,
				OK:       true,
				Time:     time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
			},
			DeliveryStatus: models.DeliveryDelivered,
		},
	}

	data, contentType, filename, err := svc.RenderAuditLog(entries, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "send_log.csv", filename)
	assert.Contains(t, string(data), "Time,Phone,Contact,Provider,Status,Delivery,OK")
	assert.Contains(t, string(data), "0712345678")
	assert.Contains(t, string(data), "Delivered")
}

func TestRenderUnmatchedPDF(t *testing.T) {
	svc := NewExportService()
	records := []models.UnmatchedRecord{
		{ExamName: "Mid Term", StudentName: "Sam Ochieng", Reason: models.ReasonMissingPhone},
	}

	data, contentType, filename, err := svc.RenderUnmatched(records, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, "unmatched.pdf", filename)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderDefaultsToCSV(t *testing.T) {
	svc := NewExportService()

	_, contentType, _, err := svc.RenderUnmatched(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
}

func TestRenderUnsupportedFormat(t *testing.T) {
	svc := NewExportService()

	_, _, _, err := svc.RenderAuditLog(nil, "xlsx")
	assert.Error(t, err)
}
