package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-notify-api/internal/service"
	appErrors "github.com/noah-isme/exam-notify-api/pkg/errors"
	"github.com/noah-isme/exam-notify-api/pkg/response"
)

// ProviderConfigHandler exposes the SMS provider settings endpoints.
// Secrets never leave the server unmasked.
type ProviderConfigHandler struct {
	config *service.ProviderConfigService
}

// NewProviderConfigHandler constructs ProviderConfigHandler.
func NewProviderConfigHandler(config *service.ProviderConfigService) *ProviderConfigHandler {
	return &ProviderConfigHandler{config: config}
}

// Get godoc
// @Summary Get the active SMS provider settings (secrets masked)
// @Tags ProviderConfig
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /provider-config [get]
func (h *ProviderConfigHandler) Get(c *gin.Context) {
	cfg, err := h.config.Get()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}

// Update godoc
// @Summary Replace the SMS provider settings
// @Tags ProviderConfig
// @Accept json
// @Produce json
// @Param payload body service.UpdateProviderConfigRequest true "Provider settings"
// @Success 200 {object} response.Envelope
// @Router /provider-config [put]
func (h *ProviderConfigHandler) Update(c *gin.Context) {
	var req service.UpdateProviderConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	cfg, err := h.config.Update(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}
