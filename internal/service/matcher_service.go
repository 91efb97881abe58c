package service

import (
	"strings"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

// phoneSuffixLengths are the trailing-digit lengths tried when no exact phone
// match exists, longest first. Anything shorter than seven digits is too
// ambiguous to accept.
var phoneSuffixLengths = []int{11, 10, 9, 8, 7}

// NormalizeName lowercases a name, collapses internal whitespace runs
// (including newlines) to single spaces and trims the ends. Idempotent.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// MatchStudent finds the first row whose name matches the target: exact on
// normalized names first, then a contains fallback. No ambiguity resolution
// beyond first-wins.
func MatchStudent(table *models.ScoreTable, nameCol, target string) (models.Row, bool) {
	if table == nil || nameCol == "" {
		return nil, false
	}
	want := NormalizeName(target)
	if want == "" {
		return nil, false
	}

	for _, row := range table.Rows {
		if NormalizeName(row[nameCol].String()) == want {
			return row, true
		}
	}
	for _, row := range table.Rows {
		if strings.Contains(NormalizeName(row[nameCol].String()), want) {
			return row, true
		}
	}
	return nil, false
}

// MatchPhone resolves a phone number against the contact directory. An exact
// digit-string match wins; otherwise the longest matching trailing suffix of
// at least seven digits does. Ties at the same suffix length go to the
// first-seen directory entry.
func MatchPhone(contacts []models.ContactRecord, phone string) (*models.ContactRecord, bool) {
	target := DigitsOnly(phone)
	if target == "" {
		return nil, false
	}

	for i := range contacts {
		if DigitsOnly(contacts[i].Phone) == target {
			return &contacts[i], true
		}
	}

	for _, length := range phoneSuffixLengths {
		if len(target) < length {
			continue
		}
		want := target[len(target)-length:]
		for i := range contacts {
			digits := DigitsOnly(contacts[i].Phone)
			if len(digits) < length {
				continue
			}
			if digits[len(digits)-length:] == want {
				return &contacts[i], true
			}
		}
	}
	return nil, false
}

// DigitsOnly strips everything but decimal digits from a phone string.
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
