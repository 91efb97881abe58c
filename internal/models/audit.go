package models

import "time"

// DeliveryStatus is the normalized status taxonomy shown in the send log.
type DeliveryStatus string

const (
	DeliveryDelivered   DeliveryStatus = "Delivered"
	DeliverySent        DeliveryStatus = "Sent"
	DeliveryBlacklisted DeliveryStatus = "Blacklisted"
	DeliveryFailed      DeliveryStatus = "Failed"
	DeliveryUnknown     DeliveryStatus = "Unknown"
)

// Send attempt statuses recorded on audit entries.
const (
	SendStatusTest = "TEST"
	SendStatusSent = "SENT"
)

// AuditLogEntry records one send attempt. Entries are append-only; clearing
// the log requires an explicit backup-then-truncate operation.
type AuditLogEntry struct {
	ID         string         `json:"id"`
	Phone      string         `json:"phone"`
	Message    string         `json:"message"`
	Time       time.Time      `json:"time"`
	Provider   string         `json:"provider"`
	ConfigUsed ProviderConfig `json:"config_used"`
	Status     string         `json:"status"`
	Response   ProviderResult `json:"response"`
	OK         bool           `json:"ok"`
	Contact    string         `json:"contact,omitempty"`
}

// AuditLogView is an entry annotated post-hoc with its classified delivery
// status for display.
type AuditLogView struct {
	AuditLogEntry
	DeliveryStatus DeliveryStatus `json:"delivery_status"`
}
