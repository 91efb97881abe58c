package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-notify-api/internal/models"
	"github.com/noah-isme/exam-notify-api/internal/transport"
)

type mockContactStore struct {
	contacts  []models.ContactRecord
	loadErr   error
	saveErr   error
	saveCalls int
	saved     []models.ContactRecord
}

func (m *mockContactStore) Load() ([]models.ContactRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.contacts, nil
}

func (m *mockContactStore) Save(contacts []models.ContactRecord) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = contacts
	return nil
}

type mockAuditStore struct {
	entries []models.AuditLogEntry
	err     error
}

func (m *mockAuditStore) Append(entry models.AuditLogEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

type mockProviderCfg struct {
	cfg models.ProviderConfig
	err error
}

func (m *mockProviderCfg) Load() (models.ProviderConfig, error) {
	return m.cfg, m.err
}

type stubTransport struct {
	results map[string]models.ProviderResult
	calls   []string
}

func (s *stubTransport) Send(_ context.Context, phone, _ string, _ models.ProviderConfig) models.ProviderResult {
	s.calls = append(s.calls, phone)
	if res, ok := s.results[phone]; ok {
		return res
	}
	return models.ProviderResult{OK: true, StatusCode: 200, Raw: map[string]interface{}{"success": true}}
}

func senderFixture(tr transport.Transport) (*SenderService, *mockContactStore, *mockAuditStore) {
	contacts := &mockContactStore{}
	audit := &mockAuditStore{}
	cfgLoader := &mockProviderCfg{cfg: models.ProviderConfig{
		APIURL:   "https://sms.example.com/send",
		Provider: models.ProviderHostPinnacle,
		APIKey:   "secret-key",
	}}
	factory := func(models.ProviderConfig) transport.Transport { return tr }
	svc := NewSenderService(contacts, audit, cfgLoader, &mockTableRepo{}, &mockExamRepo{}, factory, nil, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }
	return svc, contacts, audit
}

func TestSendDispatchesAndAudits(t *testing.T) {
	tr := &stubTransport{}
	svc, contacts, audit := senderFixture(tr)

	summary, err := svc.Send(context.Background(), SendRequest{Recipients: []SendRecipient{
		{Phone: "0712345678", StudentName: "Jane Doe", ParentName: "Mary", Message: "hello"},
		{Phone: "0798765432", StudentName: "Sam Ochieng", Message: "hi"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Sent)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, []string{"0712345678", "0798765432"}, tr.calls)

	// One audit entry per attempt, in send order, with secrets masked.
	require.Len(t, audit.entries, 2)
	assert.Equal(t, "0712345678", audit.entries[0].Phone)
	assert.Equal(t, models.SendStatusSent, audit.entries[0].Status)
	assert.Equal(t, "****", audit.entries[0].ConfigUsed.APIKey)
	assert.Equal(t, "Jane Doe (parent: Mary)", audit.entries[0].Contact)
	assert.NotEmpty(t, audit.entries[0].ID)
	assert.NotEqual(t, audit.entries[0].ID, audit.entries[1].ID)

	// Directory was updated with the recipients.
	assert.Equal(t, 1, contacts.saveCalls)
	require.Len(t, contacts.saved, 2)
}

func TestSendDirectoryUpsertFallsBackToPhoneMatch(t *testing.T) {
	tr := &stubTransport{}
	svc, contacts, _ := senderFixture(tr)
	contacts.contacts = []models.ContactRecord{
		{ID: "c1", StudentName: "Jane Doe", Phone: "+254712345678"},
	}

	// The operator respelled the student name, so the normalized-name
	// lookup misses. The phone suffix still resolves to the existing
	// entry, which gets updated in place instead of duplicated.
	summary, err := svc.Send(context.Background(), SendRequest{Recipients: []SendRecipient{
		{Phone: "0712345678", StudentName: "Jane A. Doe", ParentName: "Mary", Message: "hello"},
	}})
	require.NoError(t, err)
	assert.Empty(t, summary.Warnings)

	require.Len(t, contacts.saved, 1)
	assert.Equal(t, "c1", contacts.saved[0].ID)
	assert.Equal(t, "Jane A. Doe", contacts.saved[0].StudentName)
	assert.Equal(t, "Mary", contacts.saved[0].ParentName)
	assert.Equal(t, "0712345678", contacts.saved[0].Phone)
}

func TestSendSkipsMissingAndDuplicatePhones(t *testing.T) {
	tr := &stubTransport{}
	svc, _, audit := senderFixture(tr)

	summary, err := svc.Send(context.Background(), SendRequest{Recipients: []SendRecipient{
		{Phone: "", StudentName: "No Phone"},
		{Phone: "nan", StudentName: "Junk Phone"},
		{Phone: "0712345678", StudentName: "Jane Doe", Message: "m"},
		{Phone: "0712345678", StudentName: "Jane Again", Message: "m"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 3, summary.Skipped)
	assert.Len(t, tr.calls, 1)
	// Skipped recipients never reach the audit log.
	assert.Len(t, audit.entries, 1)

	reasons := []string{}
	for _, o := range summary.Outcomes {
		if o.Skipped {
			reasons = append(reasons, o.SkipReason)
		}
	}
	assert.Equal(t, []string{"missing_phone", "missing_phone", "duplicate_phone"}, reasons)
}

func TestSendTransportFailureContinuesBatch(t *testing.T) {
	tr := &stubTransport{results: map[string]models.ProviderResult{
		"0711111111": {OK: false, StatusCode: 500, Error: "server error"},
	}}
	svc, _, audit := senderFixture(tr)

	summary, err := svc.Send(context.Background(), SendRequest{Recipients: []SendRecipient{
		{Phone: "0711111111", StudentName: "A", Message: "m"},
		{Phone: "0722222222", StudentName: "B", Message: "m"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, audit.entries, 2)
	assert.False(t, audit.entries[0].OK)
	assert.True(t, audit.entries[1].OK)
	assert.Equal(t, models.DeliveryStatus("Failed (500)"), summary.Outcomes[0].DeliveryStatus)
}

func TestSendAuditFailureBecomesWarning(t *testing.T) {
	tr := &stubTransport{}
	svc, _, audit := senderFixture(tr)
	audit.err = errors.New("disk full")

	summary, err := svc.Send(context.Background(), SendRequest{Recipients: []SendRecipient{
		{Phone: "0712345678", StudentName: "Jane Doe", Message: "m"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)
	require.NotEmpty(t, summary.Warnings)
	assert.Contains(t, summary.Warnings[len(summary.Warnings)-1], "audit entry for Jane Doe")
}

func TestSendTestModeMarksEntries(t *testing.T) {
	tr := &stubTransport{}
	svc, _, audit := senderFixture(tr)
	testMode := true

	summary, err := svc.Send(context.Background(), SendRequest{
		Recipients: []SendRecipient{{Phone: "0712345678", StudentName: "Jane Doe", Message: "m"}},
		TestMode:   &testMode,
	})
	require.NoError(t, err)

	assert.True(t, summary.TestMode)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.SendStatusTest, audit.entries[0].Status)
}

func TestSendDirectorySaveFailureIsNotFatal(t *testing.T) {
	tr := &stubTransport{}
	svc, contacts, _ := senderFixture(tr)
	contacts.saveErr = errors.New("read-only filesystem")

	summary, err := svc.Send(context.Background(), SendRequest{Recipients: []SendRecipient{
		{Phone: "0712345678", StudentName: "Jane Doe", Message: "m"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)
	assert.NotEmpty(t, summary.Warnings)
}

func TestSendComposeFallbackMinimalTemplate(t *testing.T) {
	tr := &stubTransport{}
	svc, _, audit := senderFixture(tr)
	total := 150.0

	_, err := svc.Send(context.Background(), SendRequest{Recipients: []SendRecipient{
		{Phone: "0712345678", StudentName: "Jane Doe", ExamName: "Mid Term", Total: &total},
	}})
	require.NoError(t, err)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "Dear Parent/Guardian, Results for Jane Doe — Mid Term. Total: 150.", audit.entries[0].Message)
}

func TestSendValidation(t *testing.T) {
	tr := &stubTransport{}
	svc, _, _ := senderFixture(tr)

	_, err := svc.Send(context.Background(), SendRequest{})
	assert.Error(t, err)
}
