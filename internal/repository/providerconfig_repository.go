package repository

import (
	"encoding/json"
	"fmt"

	"github.com/noah-isme/exam-notify-api/internal/models"
	"github.com/noah-isme/exam-notify-api/pkg/storage"
)

// ProviderConfigRepository persists the active SMS provider configuration as
// a JSON file.
type ProviderConfigRepository struct {
	store    *storage.LocalStorage
	filename string
}

// NewProviderConfigRepository constructs a ProviderConfigRepository.
func NewProviderConfigRepository(store *storage.LocalStorage, filename string) *ProviderConfigRepository {
	if filename == "" {
		filename = "provider_config.json"
	}
	return &ProviderConfigRepository{store: store, filename: filename}
}

// Load returns the stored provider configuration, or a zero config with the
// default provider when none has been saved yet.
func (r *ProviderConfigRepository) Load() (models.ProviderConfig, error) {
	if !r.store.Exists(r.filename) {
		return models.ProviderConfig{Provider: models.ProviderHostPinnacle}, nil
	}
	data, err := r.store.Read(r.filename)
	if err != nil {
		return models.ProviderConfig{}, fmt.Errorf("load provider config: %w", err)
	}
	var cfg models.ProviderConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return models.ProviderConfig{}, fmt.Errorf("decode provider config: %w", err)
	}
	if cfg.Provider == "" {
		cfg.Provider = models.ProviderHostPinnacle
	}
	return cfg, nil
}

// Save replaces the stored provider configuration.
func (r *ProviderConfigRepository) Save(cfg models.ProviderConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode provider config: %w", err)
	}
	if _, err := r.store.Save(r.filename, data); err != nil {
		return fmt.Errorf("save provider config: %w", err)
	}
	return nil
}
