package transport

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

// mobitechTransport speaks a form-encoded SMS API that accepts either GET
// with query parameters or POST with a form body, selected by http_method.
type mobitechTransport struct {
	client *http.Client
	logger *zap.Logger
}

func (t *mobitechTransport) Send(ctx context.Context, phone, message string, cfg models.ProviderConfig) models.ProviderResult {
	params := url.Values{}
	params.Set("api_key", cfg.APIKey)
	params.Set("phone", phone)
	params.Set("message", message)
	if cfg.Sender != "" {
		params.Set("sender_id", cfg.Sender)
	}
	if cfg.Username != "" {
		params.Set("username", cfg.Username)
	}
	for k, v := range cfg.ExtraParams {
		params.Set(k, v)
	}

	var req *http.Request
	var err error
	if strings.EqualFold(cfg.HTTPMethod, http.MethodGet) {
		target := cfg.APIURL
		if strings.Contains(target, "?") {
			target += "&" + params.Encode()
		} else {
			target += "?" + params.Encode()
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, cfg.APIURL, strings.NewReader(params.Encode()))
		if err == nil {
			contentType := cfg.ContentType
			if contentType == "" {
				contentType = "application/x-www-form-urlencoded"
			}
			req.Header.Set("Content-Type", contentType)
		}
	}
	if err != nil {
		return models.ProviderResult{OK: false, Error: err.Error()}
	}

	return execute(t.client, req, t.logger)
}
