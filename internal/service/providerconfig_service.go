package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-notify-api/internal/models"
	appErrors "github.com/noah-isme/exam-notify-api/pkg/errors"
)

type providerConfigStore interface {
	Load() (models.ProviderConfig, error)
	Save(cfg models.ProviderConfig) error
}

// UpdateProviderConfigRequest carries a full replacement provider config.
// Empty secrets keep the stored values so the UI can round-trip a masked
// config without wiping credentials.
type UpdateProviderConfigRequest struct {
	APIURL      string            `json:"api_url" validate:"required,url"`
	Username    string            `json:"username"`
	Password    string            `json:"password"`
	APIKey      string            `json:"api_key"`
	Provider    string            `json:"provider" validate:"required,oneof=hostpinnacle mobitech"`
	Sender      string            `json:"sender"`
	HTTPMethod  string            `json:"http_method" validate:"omitempty,oneof=GET POST"`
	ContentType string            `json:"content_type"`
	ExtraParams map[string]string `json:"extra_params"`
	TestMode    bool              `json:"test_mode"`
}

// ProviderConfigService reads and updates the active SMS provider settings.
type ProviderConfigService struct {
	store     providerConfigStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProviderConfigService constructs a ProviderConfigService.
func NewProviderConfigService(store providerConfigStore, validate *validator.Validate, logger *zap.Logger) *ProviderConfigService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProviderConfigService{store: store, validator: validate, logger: logger}
}

// Get returns the stored config with secrets masked.
func (s *ProviderConfigService) Get() (models.ProviderConfig, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return models.ProviderConfig{}, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load provider config")
	}
	return cfg.Masked(), nil
}

// Update validates and persists a replacement config. A masked or empty
// secret in the request preserves the currently stored value.
func (s *ProviderConfigService) Update(req UpdateProviderConfigRequest) (models.ProviderConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ProviderConfig{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid provider config")
	}

	current, err := s.store.Load()
	if err != nil {
		return models.ProviderConfig{}, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load provider config")
	}

	cfg := models.ProviderConfig{
		APIURL:      strings.TrimSpace(req.APIURL),
		Username:    req.Username,
		Password:    keepSecret(req.Password, current.Password),
		APIKey:      keepSecret(req.APIKey, current.APIKey),
		Provider:    req.Provider,
		Sender:      req.Sender,
		HTTPMethod:  req.HTTPMethod,
		ContentType: req.ContentType,
		ExtraParams: req.ExtraParams,
		TestMode:    req.TestMode,
	}
	if err := s.store.Save(cfg); err != nil {
		return models.ProviderConfig{}, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to save provider config")
	}

	s.logger.Info("provider config updated",
		zap.String("provider", cfg.Provider),
		zap.Bool("test_mode", cfg.TestMode))
	return cfg.Masked(), nil
}

func keepSecret(incoming, stored string) string {
	if incoming == "" || incoming == "****" {
		return stored
	}
	return incoming
}
