package repository

import (
	"encoding/json"
	"fmt"

	"github.com/noah-isme/exam-notify-api/internal/models"
	"github.com/noah-isme/exam-notify-api/pkg/storage"
)

// ContactRepository persists the contact directory as a single JSON file
// with whole-list replace semantics. A missing file is an empty directory.
type ContactRepository struct {
	store    *storage.LocalStorage
	filename string
}

// NewContactRepository constructs a ContactRepository.
func NewContactRepository(store *storage.LocalStorage, filename string) *ContactRepository {
	if filename == "" {
		filename = "contacts.json"
	}
	return &ContactRepository{store: store, filename: filename}
}

// Load returns the full contact directory.
func (r *ContactRepository) Load() ([]models.ContactRecord, error) {
	if !r.store.Exists(r.filename) {
		return []models.ContactRecord{}, nil
	}
	data, err := r.store.Read(r.filename)
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}
	var contacts []models.ContactRecord
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}
	return contacts, nil
}

// Save replaces the full contact directory.
func (r *ContactRepository) Save(contacts []models.ContactRecord) error {
	if contacts == nil {
		contacts = []models.ContactRecord{}
	}
	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode contacts: %w", err)
	}
	if _, err := r.store.Save(r.filename, data); err != nil {
		return fmt.Errorf("save contacts: %w", err)
	}
	return nil
}
