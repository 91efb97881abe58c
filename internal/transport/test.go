package transport

import (
	"context"
	"net/http"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

// testTransport returns a synthetic success without contacting any provider.
// Used for safe rehearsal of a send run.
type testTransport struct{}

func (t *testTransport) Send(ctx context.Context, phone, message string, cfg models.ProviderConfig) models.ProviderResult {
	return models.ProviderResult{
		OK:         true,
		StatusCode: http.StatusOK,
		Raw: map[string]interface{}{
			"status":  "success",
			"message": "test mode: message not dispatched",
			"phone":   phone,
		},
	}
}
