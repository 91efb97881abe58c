package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

// Keyword families recognised in provider status strings, checked in
// precedence order.
var (
	deliveredMarkers   = []string{"deliver", "dlvrd", "dlvd"}
	blacklistedMarkers = []string{"black", "block"}
	failedMarkers      = []string{"fail", "error", "reject"}
	sentMarkers        = []string{"success", "accepted", "queued", "sent"}
	sentTextMarkers    = []string{"sent to", "total cost", "success", "accepted"}
	truthySentinels    = map[string]bool{"true": true, "1": true, "ok": true}
)

// Payload keys that may hold a nested list of per-recipient delivery entries.
var recipientListKeys = []string{"recipients", "messages", "data", "results", "responses"}

// Fields inspected on each per-recipient entry.
var recipientStatusKeys = []string{"status", "delivery_status", "deliveryStatus", "description", "desc", "state"}

// ClassifyDeliveryStatus maps a heterogeneous provider response into the
// normalized status taxonomy. It is pure and total: any input, however
// malformed, yields a status and never a panic.
func ClassifyDeliveryStatus(res models.ProviderResult) models.DeliveryStatus {
	if statuses := recipientStatuses(res.Raw); len(statuses) > 0 {
		if status, ok := classifyStatusStrings(statuses); ok {
			return status
		}
	}

	if flag, ok := successFlag(res); ok {
		if flag {
			return models.DeliverySent
		}
		if res.StatusCode >= 400 {
			return models.DeliveryStatus(fmt.Sprintf("Failed (%d)", res.StatusCode))
		}
		return models.DeliveryFailed
	}

	if status, ok := classifyFreeText(res); ok {
		return status
	}

	return models.DeliveryUnknown
}

// recipientStatuses pulls per-recipient status strings out of the raw payload.
func recipientStatuses(raw map[string]interface{}) []string {
	if raw == nil {
		return nil
	}
	var statuses []string
	for _, key := range recipientListKeys {
		list, ok := raw[key].([]interface{})
		if !ok {
			continue
		}
		for _, item := range list {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			for _, field := range recipientStatusKeys {
				if s, ok := entry[field].(string); ok && strings.TrimSpace(s) != "" {
					statuses = append(statuses, s)
				}
			}
		}
	}
	return statuses
}

// classifyStatusStrings applies the keyword families to per-recipient
// statuses; the strongest family any status matches wins.
func classifyStatusStrings(statuses []string) (models.DeliveryStatus, bool) {
	lowered := make([]string, len(statuses))
	for i, s := range statuses {
		lowered[i] = strings.ToLower(s)
	}

	if anyContains(lowered, deliveredMarkers) {
		return models.DeliveryDelivered, true
	}
	if anyContains(lowered, blacklistedMarkers) {
		return models.DeliveryBlacklisted, true
	}
	if anyContains(lowered, failedMarkers) {
		return models.DeliveryFailed, true
	}
	if anyContains(lowered, sentMarkers) {
		return models.DeliverySent, true
	}
	for _, s := range lowered {
		if truthySentinels[strings.TrimSpace(s)] {
			return models.DeliverySent, true
		}
	}
	return models.DeliveryUnknown, false
}

// successFlag extracts a top-level success signal: an explicit boolean in
// the payload, or the HTTP outcome when an exchange actually happened.
func successFlag(res models.ProviderResult) (bool, bool) {
	if res.Raw != nil {
		switch v := res.Raw["success"].(type) {
		case bool:
			return v, true
		case string:
			lower := strings.ToLower(strings.TrimSpace(v))
			if lower == "true" || lower == "false" {
				return lower == "true", true
			}
		}
	}
	if res.StatusCode != 0 {
		return res.OK, true
	}
	return false, false
}

// classifyFreeText scans human-readable provider text for the same keyword
// families.
func classifyFreeText(res models.ProviderResult) (models.DeliveryStatus, bool) {
	var texts []string
	if res.Text != "" {
		texts = append(texts, strings.ToLower(res.Text))
	}
	if res.Error != "" {
		texts = append(texts, strings.ToLower(res.Error))
	}
	if res.Raw != nil {
		for _, key := range []string{"message", "status", "description", "errors", "statusDescription"} {
			if s, ok := res.Raw[key].(string); ok {
				texts = append(texts, strings.ToLower(s))
			}
		}
	}
	if len(texts) == 0 {
		return models.DeliveryUnknown, false
	}

	if anyContains(texts, blacklistedMarkers) {
		return models.DeliveryBlacklisted, true
	}
	if anyContains(texts, deliveredMarkers) {
		return models.DeliveryDelivered, true
	}
	if anyContains(texts, sentTextMarkers) {
		return models.DeliverySent, true
	}
	if anyContains(texts, failedMarkers) {
		return models.DeliveryFailed, true
	}
	return models.DeliveryUnknown, false
}

func anyContains(haystacks, needles []string) bool {
	for _, h := range haystacks {
		for _, n := range needles {
			if strings.Contains(h, n) {
				return true
			}
		}
	}
	return false
}
