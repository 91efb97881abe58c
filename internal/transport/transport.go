package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

// Transport dispatches one SMS message through a concrete provider. Failures
// are encoded in the result rather than returned as errors so a failed send
// never aborts the rest of a batch.
type Transport interface {
	Send(ctx context.Context, phone, message string, cfg models.ProviderConfig) models.ProviderResult
}

// New selects the adapter for the configured provider. Test mode short-circuits
// to a synthetic transport that never touches the network.
func New(cfg models.ProviderConfig, client *http.Client, logger *zap.Logger) Transport {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.TestMode {
		return &testTransport{}
	}
	switch cfg.Provider {
	case models.ProviderMobitech:
		return &mobitechTransport{client: client, logger: logger}
	default:
		return &hostPinnacleTransport{client: client, logger: logger}
	}
}

// execute performs the HTTP exchange and normalizes the outcome. It never
// returns an error; network and decode failures become failed results.
func execute(client *http.Client, req *http.Request, logger *zap.Logger) models.ProviderResult {
	resp, err := client.Do(req)
	if err != nil {
		logger.Warn("sms request failed", zap.String("url", req.URL.String()), zap.Error(err))
		return models.ProviderResult{OK: false, Error: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.ProviderResult{OK: false, StatusCode: resp.StatusCode, Error: err.Error()}
	}

	result := models.ProviderResult{
		OK:         resp.StatusCode < 400,
		StatusCode: resp.StatusCode,
		Text:       string(body),
	}
	var raw map[string]interface{}
	if json.Unmarshal(body, &raw) == nil {
		result.Raw = raw
	}
	return result
}
