package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-notify-api/internal/models"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "jane doe", NormalizeName("  Jane   Doe\n"))
	assert.Equal(t, "jane doe", NormalizeName(NormalizeName("  Jane   Doe\n")))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestMatchStudentExactBeforeContains(t *testing.T) {
	table := tableOf(
		[]string{"Name"},
		map[string]string{"Name": "Jane Doe Smith"},
		map[string]string{"Name": "Jane Doe"},
	)

	row, ok := MatchStudent(table, "Name", "jane doe")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", row["Name"].String())
}

func TestMatchStudentContainsFallback(t *testing.T) {
	table := tableOf(
		[]string{"Name"},
		map[string]string{"Name": "Doe Jane Wanjiku"},
	)

	row, ok := MatchStudent(table, "Name", "Jane Wanjiku")
	require.True(t, ok)
	assert.Equal(t, "Doe Jane Wanjiku", row["Name"].String())
}

func TestMatchStudentNoMatch(t *testing.T) {
	table := tableOf(
		[]string{"Name"},
		map[string]string{"Name": "Jane Doe"},
	)

	_, ok := MatchStudent(table, "Name", "Sam Ochieng")
	assert.False(t, ok)

	_, ok = MatchStudent(nil, "Name", "Jane")
	assert.False(t, ok)

	_, ok = MatchStudent(table, "", "Jane")
	assert.False(t, ok)
}

func TestMatchPhoneExactWins(t *testing.T) {
	contacts := []models.ContactRecord{
		{StudentName: "A", Phone: "+254 712 345 678"},
		{StudentName: "B", Phone: "0712345678"},
	}

	match, ok := MatchPhone(contacts, "254712345678")
	require.True(t, ok)
	assert.Equal(t, "A", match.StudentName)
}

func TestMatchPhoneSuffix(t *testing.T) {
	contacts := []models.ContactRecord{
		{StudentName: "A", Phone: "0712345678"},
	}

	// International form and local form share a 9-digit suffix.
	match, ok := MatchPhone(contacts, "+254712345678")
	require.True(t, ok)
	assert.Equal(t, "A", match.StudentName)
}

func TestMatchPhoneShortSuffixRejected(t *testing.T) {
	contacts := []models.ContactRecord{
		{StudentName: "A", Phone: "0712345678"},
	}

	_, ok := MatchPhone(contacts, "345678")
	assert.False(t, ok)

	_, ok = MatchPhone(contacts, "")
	assert.False(t, ok)
}

func TestMatchPhoneSuffixTieFirstWins(t *testing.T) {
	contacts := []models.ContactRecord{
		{StudentName: "A", Phone: "0712345678"},
		{StudentName: "B", Phone: "254712345678"},
	}

	match, ok := MatchPhone(contacts, "712345678")
	require.True(t, ok)
	assert.Equal(t, "A", match.StudentName)
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "254712345678", DigitsOnly("+254 (712) 345-678"))
	assert.Equal(t, "", DigitsOnly("none"))
}
