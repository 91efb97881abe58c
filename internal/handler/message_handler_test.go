package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-notify-api/internal/models"
	"github.com/noah-isme/exam-notify-api/internal/service"
	"github.com/noah-isme/exam-notify-api/internal/transport"
)

type fakeTables struct {
	tables map[string]*models.ScoreTable
}

func (f *fakeTables) Load(_ context.Context, examID string) (*models.ScoreTable, error) {
	table, ok := f.tables[examID]
	if !ok {
		return nil, errors.New("no score table")
	}
	return table, nil
}

type fakeExams struct {
	exams map[string]*models.ExamMetadata
}

func (f *fakeExams) List(context.Context) ([]models.ExamMetadata, error) {
	var out []models.ExamMetadata
	for _, e := range f.exams {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeExams) FindByID(_ context.Context, id string) (*models.ExamMetadata, error) {
	exam, ok := f.exams[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return exam, nil
}

type fakeContacts struct {
	contacts []models.ContactRecord
}

func (f *fakeContacts) Load() ([]models.ContactRecord, error) { return f.contacts, nil }
func (f *fakeContacts) Save(contacts []models.ContactRecord) error {
	f.contacts = contacts
	return nil
}

type fakeAudit struct {
	entries []models.AuditLogEntry
}

func (f *fakeAudit) Append(entry models.AuditLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeProviderCfg struct{}

func (fakeProviderCfg) Load() (models.ProviderConfig, error) {
	return models.ProviderConfig{Provider: models.ProviderHostPinnacle, TestMode: true}, nil
}

func cellRow(values map[string]string) models.Row {
	row := models.Row{}
	for col, val := range values {
		row[col] = models.ParseCell(val)
	}
	return row
}

func messageHandlerFixture() (*MessageHandler, *fakeAudit) {
	tables := &fakeTables{tables: map[string]*models.ScoreTable{
		"e1": {
			Columns: []string{"Name", "Math", "English"},
			Rows: []models.Row{
				cellRow(map[string]string{"Name": "Jane Doe", "Math": "80", "English": "70"}),
			},
		},
	}}
	exams := &fakeExams{exams: map[string]*models.ExamMetadata{
		"e1": {ID: "e1", Name: "Mid Term - 2025"},
	}}
	contacts := &fakeContacts{contacts: []models.ContactRecord{
		{StudentName: "Jane Doe", ParentName: "Mary", Phone: "0712345678"},
	}}
	audit := &fakeAudit{}

	preparer := service.NewPreparerService(tables, exams, contacts, nil, nil, nil)
	factory := func(cfg models.ProviderConfig) transport.Transport {
		return transport.New(cfg, nil, nil)
	}
	sender := service.NewSenderService(contacts, audit, fakeProviderCfg{}, tables, exams, factory, nil, nil, nil)
	return NewMessageHandler(preparer, sender, service.NewExportService()), audit
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return rec
}

func TestMessageHandlerPrepare(t *testing.T) {
	handler, _ := messageHandlerFixture()

	rec := performJSON(t, handler.Prepare, http.MethodPost, "/messages/prepare", `{"exam_ids":["e1"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"prepared"`)
	assert.Contains(t, rec.Body.String(), "Jane Doe")
	assert.Contains(t, rec.Body.String(), "0712345678")
}

func TestMessageHandlerPrepareInvalidPayload(t *testing.T) {
	handler, _ := messageHandlerFixture()

	rec := performJSON(t, handler.Prepare, http.MethodPost, "/messages/prepare", `{"exam_ids": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performJSON(t, handler.Prepare, http.MethodPost, "/messages/prepare", `{"exam_ids": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessageHandlerPreview(t *testing.T) {
	handler, _ := messageHandlerFixture()

	rec := performJSON(t, handler.Preview, http.MethodGet, "/messages/preview?examId=e1&student=jane+doe", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jane Doe")
	assert.Contains(t, rec.Body.String(), `"composed":true`)
}

func TestMessageHandlerPreviewMissingParams(t *testing.T) {
	handler, _ := messageHandlerFixture()

	rec := performJSON(t, handler.Preview, http.MethodGet, "/messages/preview?examId=e1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessageHandlerSend(t *testing.T) {
	handler, audit := messageHandlerFixture()

	body := `{"recipients":[{"phone":"0712345678","student_name":"Jane Doe","message":"hello"}]}`
	rec := performJSON(t, handler.Send, http.MethodPost, "/messages/send", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"test_mode":true`)
	assert.Contains(t, rec.Body.String(), `"sent":1`)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.SendStatusTest, audit.entries[0].Status)
}

func TestMessageHandlerExportUnmatched(t *testing.T) {
	handler, _ := messageHandlerFixture()

	body := `[{"exam_id":"e1","exam_name":"Mid Term","student_name":"Sam","reason":"missing_phone"}]`
	rec := performJSON(t, handler.ExportUnmatched, http.MethodPost, "/messages/unmatched/export?format=csv", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Sam")
}
