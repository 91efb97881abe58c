package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

// hostPinnacleTransport speaks the Host Pinnacle JSON API: a POST carrying
// credentials in the body plus an api-key header.
type hostPinnacleTransport struct {
	client *http.Client
	logger *zap.Logger
}

func (t *hostPinnacleTransport) Send(ctx context.Context, phone, message string, cfg models.ProviderConfig) models.ProviderResult {
	payload := map[string]string{
		"userid":         cfg.Username,
		"password":       cfg.Password,
		"senderid":       cfg.Sender,
		"mobile":         phone,
		"msg":            message,
		"sendMethod":     "quick",
		"msgType":        "text",
		"output":         "json",
		"duplicatecheck": "true",
	}
	for k, v := range cfg.ExtraParams {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.ProviderResult{OK: false, Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return models.ProviderResult{OK: false, Error: err.Error()}
	}
	contentType := cfg.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Content-Type", contentType)
	if cfg.APIKey != "" {
		req.Header.Set("apikey", cfg.APIKey)
	}

	return execute(t.client, req, t.logger)
}
